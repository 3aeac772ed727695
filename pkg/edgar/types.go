package edgar

import (
	"sort"
	"strconv"
	"strings"
)

// TickerEntry is one company record from the ticker directory.
type TickerEntry struct {
	// CIK is the company's Central Index Key, unpadded.
	CIK int64 `json:"cik_str"`

	// Ticker is the exchange symbol in upper case.
	Ticker string `json:"ticker"`

	// Title is the registrant name.
	Title string `json:"title"`
}

// TickerDirectory maps an opaque key to a company record.
// The upstream document keys entries "0", "1", ... in its own order.
type TickerDirectory map[string]TickerEntry

// Lookup returns the first entry whose ticker equals symbol, compared after
// upper-casing symbol. Entries are scanned in key order; numeric keys sort
// numerically so the scan matches the upstream document order.
func (d TickerDirectory) Lookup(symbol string) (TickerEntry, bool) {
	want := strings.ToUpper(symbol)
	for _, key := range d.keys() {
		if entry := d[key]; entry.Ticker == want {
			return entry, true
		}
	}
	return TickerEntry{}, false
}

func (d TickerDirectory) keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.ParseInt(keys[i], 10, 64)
		b, errB := strconv.ParseInt(keys[j], 10, 64)
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

// Submissions is the subset of a company's submission metadata the proxy reads.
type Submissions struct {
	CIK     string `json:"cik"`
	Name    string `json:"name"`
	Filings struct {
		Recent RecentFilings `json:"recent"`
	} `json:"filings"`
}

// RecentFilings holds parallel arrays describing recent filings, most recent first.
type RecentFilings struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
}

// Latest returns the most recent filing, or false when no filings are listed.
func (r RecentFilings) Latest() (FilingRef, bool) {
	if len(r.AccessionNumber) == 0 {
		return FilingRef{}, false
	}
	return FilingRef{
		AccessionNumber: r.AccessionNumber[0],
		FilingDate:      at(r.FilingDate, 0),
		Form:            at(r.Form, 0),
		PrimaryDocument: at(r.PrimaryDocument, 0),
	}, true
}

// FilingRef identifies one filing taken from RecentFilings.
type FilingRef struct {
	AccessionNumber string `json:"accession_number"`
	FilingDate      string `json:"filing_date,omitempty"`
	Form            string `json:"form,omitempty"`
	PrimaryDocument string `json:"primary_document,omitempty"`
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

// FilingIndex is the directory listing of one accession.
type FilingIndex struct {
	Directory struct {
		Name string      `json:"name"`
		Item []IndexItem `json:"item"`
	} `json:"directory"`
}

// IndexItem describes one file in a filing directory.
type IndexItem struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Size         string `json:"size"`
	LastModified string `json:"last-modified"`
}

// SelectDocument returns the first item whose name ends in .xml or .htm.
// Scan order decides; neither extension is preferred over the other.
func (idx FilingIndex) SelectDocument() (IndexItem, bool) {
	for _, item := range idx.Directory.Item {
		if strings.HasSuffix(item.Name, ".xml") || strings.HasSuffix(item.Name, ".htm") {
			return item, true
		}
	}
	return IndexItem{}, false
}
