// Package upstream implements the single outbound primitive used by every
// proxy route: an HTTP GET against an SEC EDGAR endpoint carrying the
// configured identification header.
//
// # Contract
//
// Fetch performs exactly one request. It never retries, never follows a
// redirect policy other than the net/http default, and applies no timeout
// unless one is configured. The outcome is one of:
//
//   - a *http.Response with a 2xx status, which the caller must close
//   - *StatusError when the upstream answered with any other status; the
//     body is drained and discarded without inspection
//   - *TransportError when no response was received
//
// FetchJSON and FetchRaw build on Fetch and add *DecodeError for bodies that
// are not valid JSON.
//
// # Identification
//
// SEC requires every automated client to send a User-Agent naming the
// application and a contact address. The value is supplied once through
// Config.UserAgent and attached to every request; callers cannot override it.
//
// # Observability
//
// Each request is wrapped in a span named "upstream.<endpoint>" and reported
// to an optional Recorder with its status and latency.
package upstream
