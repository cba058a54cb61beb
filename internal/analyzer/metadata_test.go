package analyzer

import "testing"

func TestExtractMetadata(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantTitle string
		wantYear  string
		wantDOI   string
	}{
		{
			name:      "full metadata",
			text:      "A Study of Things\n\nPublished in 2019.\ndoi: 10.1145/3292500.3330701\n",
			wantTitle: "A Study of Things",
			wantYear:  "2019",
			wantDOI:   "10.1145/3292500.3330701",
		},
		{
			name:      "doi uppercase prefix",
			text:      "Title Line\nDOI: 10.1007/S11276-020-02423-Y\n",
			wantTitle: "Title Line",
			wantDOI:   "10.1007/S11276-020-02423-Y",
		},
		{
			name:      "trailing punctuation stripped from doi",
			text:      "Title\nSee 10.1234/abc.def.\n",
			wantTitle: "Title",
			wantDOI:   "10.1234/abc.def",
		},
		{
			name:      "year must be plausible",
			text:      "Title\nsample 12345 and 1850 then 2024\n",
			wantTitle: "Title",
			wantYear:  "2024",
		},
		{
			name:     "overlong first line is not a title",
			text:     longLine(250) + "\n2020\n",
			wantYear: "2020",
		},
		{
			name:      "leading blank lines skipped",
			text:      "\n\n  Real Title  \nbody\n",
			wantTitle: "Real Title",
		},
		{
			name: "empty text",
			text: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractMetadata(tt.text)
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Year != tt.wantYear {
				t.Errorf("Year = %q, want %q", got.Year, tt.wantYear)
			}
			if got.DOI != tt.wantDOI {
				t.Errorf("DOI = %q, want %q", got.DOI, tt.wantDOI)
			}
		})
	}
}

func longLine(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}
