package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/paperlens/paperlens/internal/models"
)

// semanticScholarBase is the paper search endpoint. Declared as a var so
// tests can substitute an httptest server.
var semanticScholarBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticScholarFields = "title,abstract,url"

// SemanticScholarSource queries the Semantic Scholar Graph API.
type SemanticScholarSource struct {
	Client *http.Client
	APIKey string
}

// Name returns the source identifier.
func (s *SemanticScholarSource) Name() string { return "semantic_scholar" }

// Search queries Semantic Scholar. Rate limiting (429) yields an empty
// result rather than an error: the free tier trips it routinely and the
// retrieval contract treats rejection as "no results from this source".
func (s *SemanticScholarSource) Search(ctx context.Context, query string, limit int) ([]models.Candidate, error) {
	params := url.Values{
		"query":  {query},
		"limit":  {strconv.Itoa(limit)},
		"fields": {semanticScholarFields},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, semanticScholarBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if s.APIKey != "" {
		req.Header.Set("x-api-key", s.APIKey)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("semantic scholar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("semantic scholar returned HTTP %d", resp.StatusCode)
	}

	var sr semanticScholarResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing semantic scholar response: %w", err)
	}

	candidates := make([]models.Candidate, 0, len(sr.Data))
	for _, p := range sr.Data {
		u := p.URL
		if u == "" {
			u = "https://www.semanticscholar.org/paper/" + p.PaperID
		}
		candidates = append(candidates, models.Candidate{
			Title:    p.Title,
			URL:      u,
			Abstract: p.Abstract,
			Source:   s.Name(),
		})
	}
	return candidates, nil
}

// Semantic Scholar API JSON structures.
type semanticScholarResponse struct {
	Total int                    `json:"total"`
	Data  []semanticScholarPaper `json:"data"`
}

type semanticScholarPaper struct {
	PaperID  string `json:"paperId"`
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	URL      string `json:"url"`
}
