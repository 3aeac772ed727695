// Package discovery resolves a ticker symbol to the latest filing document
// on EDGAR and streams it back.
//
// The workflow is a fixed pipeline of four stages, each a single upstream
// call whose typed result feeds the next:
//
//  1. ticker_lookup  company_tickers.json -> edgar.TickerEntry
//  2. submissions    CIK##########.json   -> latest accession number
//  3. filing_index   index.json           -> first .xml or .htm item
//  4. document       archive file         -> streamed body
//
// Stages run strictly in sequence. The first failure stops the pipeline and
// is returned wrapped in a *StageError naming the stage. Missing data is
// reported as *NotFoundError; upstream failures keep their upstream error
// types (*upstream.StatusError, *upstream.TransportError,
// *upstream.DecodeError) inside the StageError.
//
// Nothing is cached: every call fetches the ticker directory again.
package discovery
