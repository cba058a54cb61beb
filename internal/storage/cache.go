// Package storage provides the SQLite-backed retrieval cache.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/paperlens/paperlens/internal/models"
)

// QueryCache stores retrieval results keyed by query string. Entries expire
// after a TTL; expired rows are dropped lazily on read.
type QueryCache struct {
	db  *sql.DB
	ttl time.Duration
}

// NewQueryCache opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist. A ttl of
// zero means entries never expire.
func NewQueryCache(dbPath string, ttl time.Duration) (*QueryCache, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &QueryCache{db: db, ttl: ttl}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS query_cache (
		query TEXT PRIMARY KEY,
		candidates TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_query_cache_created_at ON query_cache(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Get returns the cached candidates for query. The second return value is
// false on a miss or when the entry has expired.
func (c *QueryCache) Get(ctx context.Context, query string) ([]models.Candidate, bool, error) {
	var candidatesJSON string
	var createdAt time.Time

	err := c.db.QueryRowContext(ctx,
		`SELECT candidates, created_at FROM query_cache WHERE query = ?`, query,
	).Scan(&candidatesJSON, &createdAt)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if c.ttl > 0 && time.Since(createdAt) > c.ttl {
		_, _ = c.db.ExecContext(ctx, `DELETE FROM query_cache WHERE query = ?`, query)
		return nil, false, nil
	}

	var candidates []models.Candidate
	if err := json.Unmarshal([]byte(candidatesJSON), &candidates); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached candidates: %w", err)
	}
	return candidates, true, nil
}

// Put stores candidates for query, replacing any previous entry.
func (c *QueryCache) Put(ctx context.Context, query string, candidates []models.Candidate) error {
	candidatesJSON, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("failed to marshal candidates: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO query_cache (query, candidates, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(query) DO UPDATE SET candidates = excluded.candidates, created_at = excluded.created_at`,
		query, string(candidatesJSON), time.Now(),
	)
	return err
}

// Purge deletes all expired entries. Intended for periodic maintenance.
func (c *QueryCache) Purge(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM query_cache WHERE created_at < ?`, time.Now().Add(-c.ttl))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close closes the database connection.
func (c *QueryCache) Close() error {
	return c.db.Close()
}
