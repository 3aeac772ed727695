package edgar

import "testing"

func TestPadCIK(t *testing.T) {
	tests := []struct {
		cik  int64
		want string
	}{
		{320193, "0000320193"},
		{1, "0000000001"},
		{1652044, "0001652044"},
		{12345678901, "12345678901"},
	}

	for _, tt := range tests {
		if got := PadCIK(tt.cik); got != tt.want {
			t.Errorf("PadCIK(%d) = %q, want %q", tt.cik, got, tt.want)
		}
	}
}

func TestNormalizeAccession(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0000320193-23-000106", "000032019323000106"},
		{"000032019323000106", "000032019323000106"},
		{"--a-b--", "ab"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeAccession(tt.in); got != tt.want {
			t.Errorf("NormalizeAccession(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEndpoints(t *testing.T) {
	ep := NewEndpoints("", "")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "tickers",
			got:  ep.Tickers(),
			want: "https://www.sec.gov/files/company_tickers.json",
		},
		{
			name: "submissions",
			got:  ep.Submissions("0000320193"),
			want: "https://data.sec.gov/submissions/CIK0000320193.json",
		},
		{
			name: "concept",
			got:  ep.Concept("0000320193", "AccountsPayableCurrent"),
			want: "https://data.sec.gov/api/xbrl/companyconcept/CIK0000320193/us-gaap/AccountsPayableCurrent.json",
		},
		{
			name: "filing index",
			got:  ep.FilingIndex("320193", "000032019323000106"),
			want: "https://data.sec.gov/Archives/edgar/data/320193/000032019323000106/index.json",
		},
		{
			name: "archive file",
			got:  ep.ArchiveFile("320193", "000032019323000106", "r1.htm"),
			want: "https://www.sec.gov/Archives/edgar/data/320193/000032019323000106/r1.htm",
		},
		{
			name: "raw parameter is escaped as one segment",
			got:  ep.Submissions("../x"),
			want: "https://data.sec.gov/submissions/CIK..%2Fx.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestNewEndpoints_CustomBases(t *testing.T) {
	ep := NewEndpoints("http://127.0.0.1:9000/", "http://127.0.0.1:9001")

	if got, want := ep.Tickers(), "http://127.0.0.1:9000/files/company_tickers.json"; got != want {
		t.Errorf("Tickers() = %q, want %q", got, want)
	}
	if got, want := ep.Submissions("1"), "http://127.0.0.1:9001/submissions/CIK1.json"; got != want {
		t.Errorf("Submissions() = %q, want %q", got, want)
	}
}
