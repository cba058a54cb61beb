// Package corpus maintains a local Bleve index of reference papers that
// serves as an offline retrieval source alongside the remote scholarly APIs.
package corpus

import (
	"context"
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/paperlens/paperlens/internal/models"
	"github.com/paperlens/paperlens/pkg/utils"
)

// abstractChars bounds how much indexed text is exposed as a candidate
// abstract for similarity scoring.
const abstractChars = 1500

// Entry is one reference paper in the corpus.
type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
	Path  string `json:"path"`
}

// Index wraps a Bleve index of corpus entries.
type Index struct {
	index bleve.Index
}

// NewIndex creates or opens a Bleve index at path. An existing index is
// reused so previously indexed reference papers survive restarts.
func NewIndex(path string) (*Index, error) {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming): queries are
	// keyword lists built from the paper under analysis, so exact word
	// matching is what we want.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("text", textFieldMapping)
	docMapping.AddFieldMappingsAt("title", textFieldMapping)
	docMapping.AddFieldMappingsAt("path", bleve.NewKeywordFieldMapping())
	im.AddDocumentMapping("entry", docMapping)
	im.DefaultType = "entry"
	im.DefaultMapping = docMapping

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open corpus index: %w", openErr)
		}
		return &Index{index: index}, nil
	}

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create corpus index: %w", err)
	}
	return &Index{index: index}, nil
}

// Add indexes an entry, replacing any previous entry with the same ID.
func (i *Index) Add(e Entry) error {
	if e.ID == "" {
		return fmt.Errorf("corpus entry requires an id")
	}
	return i.index.Index(e.ID, e)
}

// Remove deletes an entry by ID.
func (i *Index) Remove(id string) error {
	return i.index.Delete(id)
}

// Count returns the number of indexed entries.
func (i *Index) Count() (uint64, error) {
	return i.index.DocCount()
}

// Search runs a match query over titles and text and returns candidates in
// the same shape the remote sources produce.
func (i *Index) Search(ctx context.Context, query string, limit int) ([]models.Candidate, error) {
	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	req.Fields = []string{"title", "text", "path"}

	res, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("corpus search failed: %w", err)
	}

	candidates := make([]models.Candidate, 0, len(res.Hits))
	for _, hit := range res.Hits {
		title, _ := hit.Fields["title"].(string)
		text, _ := hit.Fields["text"].(string)
		path, _ := hit.Fields["path"].(string)
		candidates = append(candidates, models.Candidate{
			Title:    title,
			URL:      "file://" + path,
			Abstract: utils.Truncate(text, abstractChars),
			Source:   "local_corpus",
		})
	}
	return candidates, nil
}

// Close releases the underlying index.
func (i *Index) Close() error {
	return i.index.Close()
}
