package proxy

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// WriteRawJSON writes an already-encoded JSON body with a 200 status.
// The body is written byte for byte.
func WriteRawJSON(w http.ResponseWriter, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

// WriteErrorResponse writes a plain-text error body.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	_, _ = io.WriteString(w, message)
}

// WriteAttachment streams body as a file download named filename.
// The content type is always application/xml. It returns the number of
// bytes copied.
func WriteAttachment(w http.ResponseWriter, filename string, contentLength int64, body io.Reader) (int64, error) {
	w.Header().Set("Content-Disposition", ContentDisposition(filename))
	w.Header().Set("Content-Type", "application/xml")
	if contentLength >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(contentLength, 10))
	}
	w.WriteHeader(http.StatusOK)
	return io.Copy(w, body)
}

// ContentDisposition returns an attachment header value for filename.
// Quotes and backslashes are escaped so the header stays well formed.
func ContentDisposition(filename string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(filename)
	return fmt.Sprintf(`attachment; filename="%s"`, escaped)
}
