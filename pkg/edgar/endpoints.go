package edgar

import (
	"net/url"
	"strings"
)

// Default upstream bases.
const (
	DefaultWWWBaseURL  = "https://www.sec.gov"
	DefaultDataBaseURL = "https://data.sec.gov"
)

// Endpoints builds upstream URLs. Path parameters are escaped as single path
// segments but otherwise passed through unvalidated.
type Endpoints struct {
	www  string
	data string
}

// NewEndpoints creates Endpoints for the given bases. Empty bases fall back
// to the public SEC hosts; trailing slashes are trimmed.
func NewEndpoints(wwwBase, dataBase string) Endpoints {
	if wwwBase == "" {
		wwwBase = DefaultWWWBaseURL
	}
	if dataBase == "" {
		dataBase = DefaultDataBaseURL
	}
	return Endpoints{
		www:  strings.TrimRight(wwwBase, "/"),
		data: strings.TrimRight(dataBase, "/"),
	}
}

// Tickers returns the ticker directory URL.
func (e Endpoints) Tickers() string {
	return e.www + "/files/company_tickers.json"
}

// Submissions returns the submission metadata URL for cik, used as given.
func (e Endpoints) Submissions(cik string) string {
	return e.data + "/submissions/CIK" + url.PathEscape(cik) + ".json"
}

// Concept returns the us-gaap company concept URL for cik and tag.
func (e Endpoints) Concept(cik, tag string) string {
	return e.data + "/api/xbrl/companyconcept/CIK" + url.PathEscape(cik) +
		"/us-gaap/" + url.PathEscape(tag) + ".json"
}

// FilingIndex returns the index.json URL of one accession.
func (e Endpoints) FilingIndex(cik, accession string) string {
	return e.data + "/Archives/edgar/data/" + url.PathEscape(cik) + "/" +
		url.PathEscape(accession) + "/index.json"
}

// ArchiveFile returns the URL of one file inside an accession.
func (e Endpoints) ArchiveFile(cik, accession, name string) string {
	return e.www + "/Archives/edgar/data/" + url.PathEscape(cik) + "/" +
		url.PathEscape(accession) + "/" + url.PathEscape(name)
}
