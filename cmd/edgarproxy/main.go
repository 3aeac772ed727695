// edgarproxy is an HTTP proxy for the SEC EDGAR public data API.
//
// It forwards browser requests to EDGAR with the identification header SEC
// requires, serves the frontend assets, and can discover and download the
// latest filing document for a ticker.
//
// Usage:
//
//	# Start the proxy with defaults (http://127.0.0.1:3000)
//	edgarproxy run
//
//	# Start with a configuration file
//	edgarproxy run --config edgarproxy.yaml
//
//	# Check configuration
//	edgarproxy validate --format json
//
//	# Download the latest filing document for a ticker
//	edgarproxy latest AAPL --output ./filings
//
//	# Show version information
//	edgarproxy version
package main

func main() {
	Execute()
}
