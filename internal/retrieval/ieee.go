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

// ieeeBase is the IEEE Xplore metadata API endpoint. Declared as a var so
// tests can substitute an httptest server.
var ieeeBase = "https://ieeexploreapi.ieee.org/api/v1/search/articles"

// ieeeMaxRecords caps per-call record count; the API allows more but small
// pages keep latency predictable.
const ieeeMaxRecords = 25

// IEEESource queries the IEEE Xplore metadata API. Requires an API key.
type IEEESource struct {
	Client *http.Client
	APIKey string
}

// Name returns the source identifier.
func (s *IEEESource) Name() string { return "ieee" }

// Search queries IEEE Xplore with a free-text querytext search.
func (s *IEEESource) Search(ctx context.Context, query string, limit int) ([]models.Candidate, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("ieee api key not configured")
	}
	if limit > ieeeMaxRecords {
		limit = ieeeMaxRecords
	}
	params := url.Values{
		"apikey":       {s.APIKey},
		"format":       {"json"},
		"max_records":  {strconv.Itoa(limit)},
		"start_record": {"1"},
		"querytext":    {query},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ieeeBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ieee request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ieee returned HTTP %d", resp.StatusCode)
	}

	var ir ieeeResponse
	if err := json.NewDecoder(resp.Body).Decode(&ir); err != nil {
		return nil, fmt.Errorf("parsing ieee response: %w", err)
	}

	candidates := make([]models.Candidate, 0, len(ir.Articles))
	for _, a := range ir.Articles {
		u := a.AbstractURL
		if u == "" {
			u = a.HTMLURL
		}
		if u == "" {
			u = a.PDFURL
		}
		if u == "" {
			u = "https://ieeexplore.ieee.org/document/" + a.ArticleNumber
		}
		candidates = append(candidates, models.Candidate{
			Title:    a.Title,
			URL:      u,
			Abstract: a.Abstract,
			Source:   s.Name(),
		})
	}
	return candidates, nil
}

// IEEE Xplore API JSON structures.
type ieeeResponse struct {
	TotalRecords int           `json:"total_records"`
	Articles     []ieeeArticle `json:"articles"`
}

type ieeeArticle struct {
	Title         string `json:"title"`
	Abstract      string `json:"abstract"`
	AbstractURL   string `json:"abstract_url"`
	HTMLURL       string `json:"html_url"`
	PDFURL        string `json:"pdf_url"`
	ArticleNumber string `json:"article_number"`
}
