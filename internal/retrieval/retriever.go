package retrieval

import (
	"context"
	"time"

	"github.com/paperlens/paperlens/internal/models"
	"go.uber.org/zap"
)

const userAgent = "paperlens/1.0"

// Retriever fans a query out to all configured sources and merges results.
type Retriever struct {
	sources    []Source
	cache      Cache // nil disables caching
	maxResults int
	timeout    time.Duration
	logger     *zap.Logger
}

// NewRetriever creates a Retriever. maxResults is the per-source result
// limit; timeout bounds each individual source call. cache may be nil.
func NewRetriever(sources []Source, cache Cache, maxResults int, timeout time.Duration, logger *zap.Logger) *Retriever {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retriever{
		sources:    sources,
		cache:      cache,
		maxResults: maxResults,
		timeout:    timeout,
		logger:     logger,
	}
}

// Search queries every source concurrently and returns the merged,
// title-deduplicated candidate list. Source failures are logged and
// swallowed; with every source down the result is simply empty. Search
// itself never fails.
func (r *Retriever) Search(ctx context.Context, query string) []models.Candidate {
	if query == "" || len(r.sources) == 0 {
		return nil
	}

	if r.cache != nil {
		if cached, ok, err := r.cache.Get(ctx, query); err == nil && ok {
			r.logger.Debug("retrieval cache hit", zap.String("query", query), zap.Int("candidates", len(cached)))
			return cached
		}
	}

	type sourceResult struct {
		name       string
		candidates []models.Candidate
		err        error
	}
	ch := make(chan sourceResult, len(r.sources))
	for _, src := range r.sources {
		go func(src Source) {
			sctx, cancel := context.WithTimeout(ctx, r.timeout)
			defer cancel()
			candidates, err := src.Search(sctx, query, r.maxResults)
			ch <- sourceResult{name: src.Name(), candidates: candidates, err: err}
		}(src)
	}

	// Collect in completion order; dedup below makes the merge order
	// irrelevant to correctness.
	var all []models.Candidate
	for range r.sources {
		res := <-ch
		if res.err != nil {
			r.logger.Warn("search source failed",
				zap.String("source", res.name),
				zap.Error(res.err))
			continue
		}
		r.logger.Debug("search source returned",
			zap.String("source", res.name),
			zap.Int("candidates", len(res.candidates)))
		all = append(all, res.candidates...)
	}

	merged := dedupeByTitle(all)

	if r.cache != nil && len(merged) > 0 {
		if err := r.cache.Put(ctx, query, merged); err != nil {
			r.logger.Warn("retrieval cache write failed", zap.Error(err))
		}
	}
	return merged
}

// dedupeByTitle drops candidates whose normalized title was already seen,
// keeping the first occurrence. Untitled candidates are dropped outright:
// they cannot be displayed or deduplicated.
func dedupeByTitle(candidates []models.Candidate) []models.Candidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		key := normalizeTitle(c.Title)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
