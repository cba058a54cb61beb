package retrieval

import (
	"context"

	"github.com/paperlens/paperlens/internal/corpus"
	"github.com/paperlens/paperlens/internal/models"
)

// CorpusSource exposes the local reference corpus as a retrieval source so
// offline papers compete with remote API results on equal footing.
type CorpusSource struct {
	Index *corpus.Index
}

// Name returns the source identifier.
func (s *CorpusSource) Name() string { return "local_corpus" }

// Search queries the local Bleve index.
func (s *CorpusSource) Search(ctx context.Context, query string, limit int) ([]models.Candidate, error) {
	return s.Index.Search(ctx, query, limit)
}
