// Package proxy provides the response shaping shared by the EDGAR proxy
// handlers.
//
// Every route answers in one of three ways:
//
//   - success: the upstream payload unchanged (JSON) or streamed (documents)
//   - upstream non-success: the upstream status code with a fixed,
//     route-specific plain-text message; the upstream body is discarded
//   - anything else: 404 for discovery not-found cases, otherwise 500 with
//     the failure message
//
// HandleError implements that mapping over the typed errors of the upstream
// and discovery packages. The write helpers set content types and headers.
//
// # Subpackages
//
//   - handlers: the /api route handlers
//   - middleware: request id, logging, recovery, CORS, metrics and tracing
package proxy
