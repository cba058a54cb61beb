// Package retrieval queries scholarly search sources and merges their
// results. Every source is independently fault-isolated: a timeout, auth
// failure, or empty response from one source never hides results from the
// others.
package retrieval

import (
	"context"
	"strings"
	"unicode"

	"github.com/paperlens/paperlens/internal/models"
)

// Source searches a single scholarly database.
type Source interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]models.Candidate, error)
}

// Cache stores retrieval results keyed by query. Implementations decide TTL.
type Cache interface {
	Get(ctx context.Context, query string) ([]models.Candidate, bool, error)
	Put(ctx context.Context, query string, candidates []models.Candidate) error
}

// normalizeTitle returns a lowercased, punctuation-stripped title for
// dedup across sources.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
