package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/paperlens/paperlens/internal/models"
)

// openAlexBase is the OpenAlex Works search endpoint. Declared as a var so
// tests can substitute an httptest server.
var openAlexBase = "https://api.openalex.org/works"

// OpenAlexSource queries the OpenAlex API. Setting Mailto joins the polite
// pool for better rate limits.
type OpenAlexSource struct {
	Client *http.Client
	Mailto string
}

// Name returns the source identifier.
func (s *OpenAlexSource) Name() string { return "openalex" }

// Search queries OpenAlex and reconstructs abstracts from the inverted index
// the API returns in place of plain text.
func (s *OpenAlexSource) Search(ctx context.Context, query string, limit int) ([]models.Candidate, error) {
	params := url.Values{
		"search":   {query},
		"per_page": {strconv.Itoa(limit)},
	}
	if s.Mailto != "" {
		params.Set("mailto", s.Mailto)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openAlexBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openalex request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openalex returned HTTP %d", resp.StatusCode)
	}

	var oar openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&oar); err != nil {
		return nil, fmt.Errorf("parsing openalex response: %w", err)
	}

	candidates := make([]models.Candidate, 0, len(oar.Results))
	for _, work := range oar.Results {
		title := work.Title
		if title == "" {
			title = work.DisplayName
		}
		candidates = append(candidates, models.Candidate{
			Title:    title,
			URL:      work.ID,
			Abstract: reconstructAbstract(work.AbstractInvertedIndex),
			Source:   s.Name(),
		})
	}
	return candidates, nil
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The index maps each word to the positions where it appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}
	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].pos < pairs[j].pos })

	var b []byte
	for i, p := range pairs {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, p.word...)
	}
	return string(b)
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	ID                    string           `json:"id"`
	Title                 string           `json:"title"`
	DisplayName           string           `json:"display_name"`
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
}
