package retrieval

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSemanticScholarSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "deep learning" {
			t.Errorf("unexpected query param %q", got)
		}
		if got := r.URL.Query().Get("fields"); got != "title,abstract,url" {
			t.Errorf("unexpected fields param %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"total": 2,
			"data": [
				{"paperId": "abc123", "title": "Deep Learning", "abstract": "A survey of deep learning.", "url": "https://example.org/dl"},
				{"paperId": "def456", "title": "Neural Networks", "abstract": ""}
			]
		}`))
	}))
	defer srv.Close()

	orig := semanticScholarBase
	semanticScholarBase = srv.URL
	defer func() { semanticScholarBase = orig }()

	src := &SemanticScholarSource{Client: srv.Client()}
	got, err := src.Search(context.Background(), "deep learning", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Title != "Deep Learning" || got[0].URL != "https://example.org/dl" {
		t.Errorf("unexpected first candidate %+v", got[0])
	}
	if got[0].Source != "semantic_scholar" {
		t.Errorf("unexpected source %q", got[0].Source)
	}
	// Missing url falls back to the paper page.
	if got[1].URL != "https://www.semanticscholar.org/paper/def456" {
		t.Errorf("expected paper page fallback, got %q", got[1].URL)
	}
}

func TestSemanticScholarRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	orig := semanticScholarBase
	semanticScholarBase = srv.URL
	defer func() { semanticScholarBase = orig }()

	src := &SemanticScholarSource{Client: srv.Client()}
	got, err := src.Search(context.Background(), "anything", 10)
	if err != nil {
		t.Fatalf("429 should not be an error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("429 should yield no candidates, got %d", len(got))
	}
}

func TestSemanticScholarServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	orig := semanticScholarBase
	semanticScholarBase = srv.URL
	defer func() { semanticScholarBase = orig }()

	src := &SemanticScholarSource{Client: srv.Client()}
	if _, err := src.Search(context.Background(), "anything", 10); err == nil {
		t.Error("expected error on HTTP 500")
	}
}

func TestSemanticScholarAPIKeyHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "secret" {
			t.Errorf("expected api key header, got %q", got)
		}
		w.Write([]byte(`{"total": 0, "data": []}`))
	}))
	defer srv.Close()

	orig := semanticScholarBase
	semanticScholarBase = srv.URL
	defer func() { semanticScholarBase = orig }()

	src := &SemanticScholarSource{Client: srv.Client(), APIKey: "secret"}
	if _, err := src.Search(context.Background(), "q", 10); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
}

func TestOpenAlexSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "climate modeling" {
			t.Errorf("unexpected search param %q", got)
		}
		if got := r.URL.Query().Get("mailto"); got != "dev@example.org" {
			t.Errorf("unexpected mailto param %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": [
				{
					"id": "https://openalex.org/W1",
					"title": "Climate Modeling Advances",
					"abstract_inverted_index": {"climate": [0, 3], "models": [1], "improve": [2]}
				},
				{
					"id": "https://openalex.org/W2",
					"title": "",
					"display_name": "Fallback Display Name"
				}
			]
		}`))
	}))
	defer srv.Close()

	orig := openAlexBase
	openAlexBase = srv.URL
	defer func() { openAlexBase = orig }()

	src := &OpenAlexSource{Client: srv.Client(), Mailto: "dev@example.org"}
	got, err := src.Search(context.Background(), "climate modeling", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Abstract != "climate models improve climate" {
		t.Errorf("inverted index reconstruction wrong: %q", got[0].Abstract)
	}
	if got[0].URL != "https://openalex.org/W1" {
		t.Errorf("unexpected URL %q", got[0].URL)
	}
	if got[1].Title != "Fallback Display Name" {
		t.Errorf("expected display_name fallback, got %q", got[1].Title)
	}
}

func TestReconstructAbstract(t *testing.T) {
	tests := []struct {
		name string
		in   map[string][]int
		want string
	}{
		{"empty", nil, ""},
		{"single word", map[string][]int{"hello": {0}}, "hello"},
		{"ordered", map[string][]int{"world": {1}, "hello": {0}}, "hello world"},
		{"repeated word", map[string][]int{"the": {0, 2}, "cat": {1}, "sat": {3}}, "the cat the sat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reconstructAbstract(tt.in); got != tt.want {
				t.Errorf("reconstructAbstract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIEEESearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("apikey"); got != "k" {
			t.Errorf("unexpected apikey %q", got)
		}
		if got := r.URL.Query().Get("querytext"); got != "signal processing" {
			t.Errorf("unexpected querytext %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"total_records": 2,
			"articles": [
				{"title": "Adaptive Filters", "abstract": "On adaptive filtering.", "abstract_url": "https://ieeexplore.ieee.org/abs/1"},
				{"title": "Wavelets", "abstract": "", "article_number": "99"}
			]
		}`))
	}))
	defer srv.Close()

	orig := ieeeBase
	ieeeBase = srv.URL
	defer func() { ieeeBase = orig }()

	src := &IEEESource{Client: srv.Client(), APIKey: "k"}
	got, err := src.Search(context.Background(), "signal processing", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].URL != "https://ieeexplore.ieee.org/abs/1" {
		t.Errorf("unexpected URL %q", got[0].URL)
	}
	if got[1].URL != "https://ieeexplore.ieee.org/document/99" {
		t.Errorf("expected document fallback URL, got %q", got[1].URL)
	}
}

func TestIEEERequiresAPIKey(t *testing.T) {
	src := &IEEESource{Client: http.DefaultClient}
	if _, err := src.Search(context.Background(), "q", 10); err == nil {
		t.Error("expected error without api key")
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Attention Is All You Need", "attention is all you need"},
		{"  Attention   Is All You Need!  ", "attention is all you need"},
		{"Deep Learning: A Survey (2020)", "deep learning a survey 2020"},
		{"", ""},
		{"?!.,", ""},
	}
	for _, tt := range tests {
		if got := normalizeTitle(tt.in); got != tt.want {
			t.Errorf("normalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
