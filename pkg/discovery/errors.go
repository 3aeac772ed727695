package discovery

import "fmt"

// Resources reported by NotFoundError.
const (
	ResourceTicker   = "ticker"
	ResourceFiling   = "filing"
	ResourceDocument = "xbrl-file"
)

// NotFoundError reports that a stage completed but the data it looked for
// was absent.
type NotFoundError struct {
	// Resource is one of the Resource* constants
	Resource string
}

// Error returns the caller-facing message for the missing resource.
func (e *NotFoundError) Error() string {
	switch e.Resource {
	case ResourceTicker:
		return "Ticker not found"
	case ResourceFiling:
		return "No filings found"
	case ResourceDocument:
		return "No XBRL file found"
	default:
		return fmt.Sprintf("%s not found", e.Resource)
	}
}

// StageError wraps the failure of one pipeline stage.
type StageError struct {
	// Stage is the name of the failed stage
	Stage string

	// Err is the stage failure
	Err error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("discovery stage %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error for error chain support.
func (e *StageError) Unwrap() error {
	return e.Err
}
