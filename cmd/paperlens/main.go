// Package main is the Paperlens CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/paperlens/paperlens/internal/analyzer"
	"github.com/paperlens/paperlens/internal/config"
	"github.com/paperlens/paperlens/internal/corpus"
	"github.com/paperlens/paperlens/internal/extract"
	"github.com/paperlens/paperlens/internal/query"
	"github.com/paperlens/paperlens/internal/retrieval"
	"github.com/paperlens/paperlens/internal/segment"
	"github.com/paperlens/paperlens/internal/server"
	"github.com/paperlens/paperlens/internal/storage"
	"github.com/paperlens/paperlens/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/paperlens/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "paperlens server" from the project dir uses the
// project's config (including debug).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "analyze":
		runAnalyze()
	case "corpus":
		runCorpus()
	case "version", "--version", "-v":
		fmt.Printf("paperlens version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (extraction strategies, retrieval calls, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if components.Watcher != nil {
		if err := components.Watcher.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start corpus watcher", zap.Error(err))
		}
		components.Watcher.SyncExisting()
	}

	srv := server.NewServer(components.Analyzer, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runAnalyze() {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: paperlens analyze [flags] <file.pdf>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read file: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.RequestTimeoutSeconds)*time.Second)
	defer cancel()

	report, err := components.Analyzer.Analyze(ctx, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runCorpus() {
	flags := flag.NewFlagSet("corpus", flag.ExitOnError)
	configPath := flags.String("config", defaultConfigPath, "config file path")
	_ = flags.Parse(os.Args[2:])

	if flags.NArg() < 1 {
		fmt.Println("Usage: paperlens corpus [flags] <directory>")
		os.Exit(1)
	}
	dir := flags.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Corpus.IndexPath == "" {
		fmt.Println("corpus.index_path is not set in config")
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	idx, err := corpus.NewIndex(cfg.Corpus.IndexPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open corpus index: %v\n", err)
		os.Exit(1)
	}
	defer idx.Close()

	extractor := extract.NewExtractor(cfg.Extract.MinTextLength, logger)

	var indexed, skipped int
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}
		if indexErr := indexCorpusFile(idx, extractor, path); indexErr != nil {
			logger.Warn("skipping file", zap.String("path", path), zap.Error(indexErr))
			skipped++
			return nil
		}
		indexed++
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Walking directory failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Indexed %d file(s) from %s (%d skipped)\n", indexed, dir, skipped)
}

// indexCorpusFile extracts text from the PDF at path and stores it as a
// corpus entry keyed by the file path.
func indexCorpusFile(idx *corpus.Index, extractor *extract.Extractor, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	text := extractor.Extract(data)
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text extracted")
	}
	meta := analyzer.ExtractMetadata(text)
	title := meta.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return idx.Add(corpus.Entry{
		ID:    path,
		Title: title,
		Text:  text,
		Path:  path,
	})
}

// Components holds initialized services.
type Components struct {
	Analyzer    *analyzer.Analyzer
	CorpusIndex *corpus.Index
	Cache       *storage.QueryCache
	Watcher     *corpus.Watcher
}

func (c *Components) Close() {
	if c.Watcher != nil {
		c.Watcher.Stop()
	}
	if c.CorpusIndex != nil {
		_ = c.CorpusIndex.Close()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	extractor := extract.NewExtractor(cfg.Extract.MinTextLength, logger)
	segmenter := segment.NewSegmenter(cfg.Sections.Patterns, cfg.Sections.MaxSectionChars, logger)
	builder := query.NewBuilder(cfg.Query.MaxKeywords)

	httpClient := &http.Client{
		Timeout: time.Duration(cfg.Retrieval.TimeoutSeconds) * time.Second,
	}
	var sources []retrieval.Source
	if cfg.Retrieval.SemanticScholar.EnabledOrDefault() {
		sources = append(sources, &retrieval.SemanticScholarSource{
			Client: httpClient,
			APIKey: cfg.Retrieval.SemanticScholar.APIKey,
		})
	}
	if cfg.Retrieval.OpenAlex.EnabledOrDefault() {
		sources = append(sources, &retrieval.OpenAlexSource{
			Client: httpClient,
			Mailto: cfg.Retrieval.OpenAlex.Mailto,
		})
	}
	if cfg.Retrieval.IEEE.Enabled && cfg.Retrieval.IEEE.APIKey != "" {
		sources = append(sources, &retrieval.IEEESource{
			Client: httpClient,
			APIKey: cfg.Retrieval.IEEE.APIKey,
		})
	}

	components := &Components{}

	if cfg.Corpus.IndexPath != "" {
		idx, err := corpus.NewIndex(cfg.Corpus.IndexPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize corpus index: %w", err)
		}
		components.CorpusIndex = idx
		sources = append(sources, &retrieval.CorpusSource{Index: idx})

		if len(cfg.Corpus.WatchDirectories) > 0 {
			components.Watcher = corpus.NewWatcher(
				cfg.Corpus.WatchDirectories,
				func(path string) {
					if err := indexCorpusFile(idx, extractor, path); err != nil {
						logger.Warn("corpus index file failed", zap.String("path", path), zap.Error(err))
					}
				},
				func(path string) {
					if err := idx.Remove(path); err != nil {
						logger.Warn("corpus remove failed", zap.String("path", path), zap.Error(err))
					}
				},
				logger,
			)
		}
	}

	var cache retrieval.Cache
	if cfg.Cache.Path != "" {
		qc, err := storage.NewQueryCache(cfg.Cache.Path,
			time.Duration(cfg.Cache.TTLHours)*time.Hour)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize retrieval cache: %w", err)
		}
		components.Cache = qc
		cache = qc
	}

	retriever := retrieval.NewRetriever(
		sources,
		cache,
		cfg.Retrieval.MaxResults,
		time.Duration(cfg.Retrieval.TimeoutSeconds)*time.Second,
		logger,
	)

	components.Analyzer = analyzer.New(
		extractor,
		segmenter,
		builder,
		retriever,
		cfg.Query.MinSectionChars,
		cfg.Retrieval.TopMatches,
		logger,
	)
	return components, nil
}

func printUsage() {
	fmt.Println(`paperlens - Paper similarity analysis service

Usage:
  paperlens server [flags]            Start the HTTP server
  paperlens analyze [flags] <file>    Analyze a PDF and print the JSON report
  paperlens corpus [flags] <dir>      Index reference PDFs into the local corpus
  paperlens version                   Show version
  paperlens help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/paperlens/config.yaml)
  --debug            Enable debug logging (extraction strategies, retrieval calls, etc.)

Analyze Flags:
  --config string    Config file path

Corpus Flags:
  --config string    Config file path (corpus.index_path must be set)

Examples:
  paperlens server
  paperlens analyze paper.pdf
  paperlens analyze --config ./config.yaml paper.pdf
  paperlens corpus ~/reference-papers
  paperlens version`)
}
