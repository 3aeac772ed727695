// Package handlers provides the /api route handlers of the EDGAR proxy.
//
// # Handler Types
//
// Resource pass-through handlers, one upstream call each:
//   - TickersHandler:     GET /api/tickers
//   - SubmissionsHandler: GET /api/submissions/{cik}
//   - ConceptHandler:     GET /api/concept/{cik}/{tag}
//
// Discovery handler, four sequential upstream calls:
//   - DownloadLatestHandler: GET /api/download-latest/{ticker}
//
// # Request Flow
//
// Each handler follows the same pattern:
//
//  1. Read path parameters (presence only, no format checks)
//  2. Build the upstream URL(s)
//  3. Call upstream with the request context
//  4. Relay the body on success, or map the error with proxy.HandleError
package handlers
