// Package config provides configuration loading and structs for the paperlens server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Extract   ExtractConfig   `yaml:"extract"`
	Sections  SectionsConfig  `yaml:"sections"`
	Query     QueryConfig     `yaml:"query"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Cache     CacheConfig     `yaml:"cache"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// RequestTimeoutSeconds bounds a whole analyze request, OCR and all
	// retrieval calls included.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
}

// ExtractConfig holds text extraction settings.
type ExtractConfig struct {
	// MinTextLength is the sufficiency threshold: a strategy's output below
	// this many characters (after trimming) escalates to the next strategy.
	MinTextLength int `yaml:"min_text_length"`
}

// SectionsConfig holds section segmentation settings. Patterns maps a section
// kind ("Abstract", "Methodology", "Conclusions") to heading phrases; when a
// kind is absent the built-in phrase set is used.
type SectionsConfig struct {
	MaxSectionChars int                 `yaml:"max_section_chars"`
	Patterns        map[string][]string `yaml:"patterns"`
}

// QueryConfig holds search query building settings.
type QueryConfig struct {
	MaxKeywords int `yaml:"max_keywords"`
	// MinSectionChars is the minimum section length worth analyzing; shorter
	// sections score 0.0 without any retrieval.
	MinSectionChars int `yaml:"min_section_chars"`
}

// RetrievalConfig holds settings for the external scholarly search sources.
type RetrievalConfig struct {
	MaxResults      int                   `yaml:"max_results"`
	TopMatches      int                   `yaml:"top_matches"`
	TimeoutSeconds  int                   `yaml:"timeout_seconds"`
	SemanticScholar SemanticScholarConfig `yaml:"semantic_scholar"`
	OpenAlex        OpenAlexConfig        `yaml:"openalex"`
	IEEE            IEEEConfig            `yaml:"ieee"`
}

// SemanticScholarConfig configures the Semantic Scholar source.
type SemanticScholarConfig struct {
	Enabled *bool  `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
}

// EnabledOrDefault reports whether the source is enabled; defaults to true when unset.
func (c *SemanticScholarConfig) EnabledOrDefault() bool {
	if c.Enabled != nil {
		return *c.Enabled
	}
	return true
}

// OpenAlexConfig configures the OpenAlex source. Mailto joins the polite pool.
type OpenAlexConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Mailto  string `yaml:"mailto"`
}

// EnabledOrDefault reports whether the source is enabled; defaults to true when unset.
func (c *OpenAlexConfig) EnabledOrDefault() bool {
	if c.Enabled != nil {
		return *c.Enabled
	}
	return true
}

// IEEEConfig configures the IEEE Xplore source. The source stays disabled
// without an API key regardless of Enabled.
type IEEEConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
}

// CorpusConfig configures the local reference corpus. The corpus is enabled
// when IndexPath is set.
type CorpusConfig struct {
	IndexPath        string   `yaml:"index_path"`
	WatchDirectories []string `yaml:"watch_directories"`
}

// CacheConfig configures the retrieval cache. The cache is enabled when Path is set.
type CacheConfig struct {
	Path     string `yaml:"path"`
	TTLHours int    `yaml:"ttl_hours"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	if cfg.Corpus.IndexPath != "" {
		cfg.Corpus.IndexPath = expandPath(cfg.Corpus.IndexPath, configDir)
	}
	if cfg.Cache.Path != "" {
		cfg.Cache.Path = expandPath(cfg.Cache.Path, configDir)
	}
	for i := range cfg.Corpus.WatchDirectories {
		cfg.Corpus.WatchDirectories[i] = expandPath(cfg.Corpus.WatchDirectories[i], configDir)
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
