// Package edgar defines the SEC EDGAR payload types consumed by the proxy and
// the helpers that turn identifiers into upstream URLs.
//
// # Payloads
//
// Only the fields the discovery workflow reads are modeled. The proxy handlers
// forward every other payload verbatim, so nothing here needs to describe the
// full upstream schema:
//
//   - TickerDirectory: company_tickers.json, keyed "0", "1", ...
//   - Submissions: submissions/CIK##########.json, filings.recent arrays
//   - FilingIndex: Archives/edgar/data/{cik}/{accession}/index.json
//
// # Identifiers
//
// CIKs are zero-padded to 10 digits in the submissions and concept URLs
// (PadCIK) and used unpadded in archive paths. Accession numbers arrive as
// "0000320193-23-000106" and are used without hyphens in archive paths
// (NormalizeAccession).
//
// # Endpoints
//
// Endpoints builds every upstream URL from two configurable bases, one for
// www.sec.gov and one for data.sec.gov:
//
//	ep := edgar.NewEndpoints("https://www.sec.gov", "https://data.sec.gov")
//	ep.Submissions(edgar.PadCIK(320193))
//	// https://data.sec.gov/submissions/CIK0000320193.json
package edgar
