package edgar

import (
	"fmt"
	"strconv"
	"strings"
)

// PadCIK formats a CIK as the 10-digit zero-padded string used in
// submissions and concept URLs.
func PadCIK(cik int64) string {
	return fmt.Sprintf("%010d", cik)
}

// FormatCIK formats a CIK without padding, as used in archive paths.
func FormatCIK(cik int64) string {
	return strconv.FormatInt(cik, 10)
}

// NormalizeAccession strips every hyphen from an accession number.
//
//	NormalizeAccession("0000320193-23-000106") == "000032019323000106"
func NormalizeAccession(accession string) string {
	return strings.ReplaceAll(accession, "-", "")
}
