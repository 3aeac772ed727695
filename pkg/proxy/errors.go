package proxy

import (
	"errors"
	"net/http"

	"edgarviewer/edgarproxy/pkg/discovery"
	"edgarviewer/edgarproxy/pkg/upstream"
)

// Generic messages sent when an upstream call answers with a non-2xx status.
// The upstream body is never relayed.
const (
	MsgTickersFailed     = "Error fetching tickers"
	MsgSubmissionsFailed = "Error fetching submissions"
	MsgConceptFailed     = "Error fetching concept data"
	MsgIndexFailed       = "Error fetching filing index"
	MsgDocumentFailed    = "Error fetching XBRL"
)

// stageMessages maps discovery stages to their upstream failure message.
var stageMessages = map[string]string{
	discovery.StageTickerLookup: MsgTickersFailed,
	discovery.StageSubmissions:  MsgSubmissionsFailed,
	discovery.StageFilingIndex:  MsgIndexFailed,
	discovery.StageDocument:     MsgDocumentFailed,
}

// HandleError maps an error to the status code and plain-text body returned
// to the caller.
//
//   - *discovery.NotFoundError: 404 with the fixed not-found message
//   - *upstream.StatusError: the upstream status with upstreamMsg, or the
//     failing discovery stage's message when err carries a *discovery.StageError
//   - anything else: 500 with the failure message
//
// Example usage:
//
//	if err != nil {
//	    status, msg := HandleError(err, MsgTickersFailed)
//	    WriteErrorResponse(w, status, msg)
//	    return
//	}
func HandleError(err error, upstreamMsg string) (int, string) {
	var nf *discovery.NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound, nf.Error()
	}

	var se *upstream.StatusError
	if errors.As(err, &se) {
		var stageErr *discovery.StageError
		if errors.As(err, &stageErr) {
			if msg, ok := stageMessages[stageErr.Stage]; ok {
				upstreamMsg = msg
			}
		}
		return se.StatusCode, upstreamMsg
	}

	// Report the innermost upstream failure without the stage prefix.
	var te *upstream.TransportError
	if errors.As(err, &te) {
		return http.StatusInternalServerError, te.Error()
	}
	var de *upstream.DecodeError
	if errors.As(err, &de) {
		return http.StatusInternalServerError, de.Error()
	}

	return http.StatusInternalServerError, err.Error()
}
