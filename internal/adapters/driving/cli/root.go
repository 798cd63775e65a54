// Package cli implements the cobra command-line interface.
// It is a driving adapter: commands translate flags and arguments into
// calls on the core search service.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/s-hiraoku/blogsearch/internal/adapters/driven/config/file"
	"github.com/s-hiraoku/blogsearch/internal/adapters/driven/content/markdown"
	"github.com/s-hiraoku/blogsearch/internal/adapters/driven/storage/sqlite"
	"github.com/s-hiraoku/blogsearch/internal/core/ports/driven"
	"github.com/s-hiraoku/blogsearch/internal/core/ports/driving"
	"github.com/s-hiraoku/blogsearch/internal/core/services"
	"github.com/s-hiraoku/blogsearch/internal/logger"
)

var (
	verboseFlag bool
	contentDir  string
	dataDir     string
	configDir   string

	// Wired by setup; package-level so subcommands can reach them.
	searchService driving.SearchService
	contentSource driven.ContentSource
	historyStore  *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "blogsearch",
	Short: "Full-text search over a directory of blog posts",
	Long: `blogsearch indexes markdown blog posts and serves tokenized,
TF-IDF ranked full-text search with highlighted snippets, filters and
persisted search history with autocomplete suggestions.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&contentDir, "content", "content", "directory containing markdown posts")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.blogsearch/data)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.blogsearch)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup wires the adapters and core services before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	cfg := services.ConfigFromStore(configStore)

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	historyStore = store

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	history := services.NewHistoryStore(ctx, store, cfg)
	searchService = services.NewSearchService(history, cfg)
	contentSource = markdown.NewSource(contentDir)

	return nil
}

// teardown releases resources after the command finishes.
func teardown(*cobra.Command, []string) {
	if historyStore != nil {
		historyStore.Close()
	}
}

// indexContent loads the content directory into the search index.
// Commands that answer queries call it first; history-only commands
// do not need it. Each load replaces the whole corpus, so posts
// deleted between reloads disappear from the index.
func indexContent(ctx context.Context) error {
	docs, err := contentSource.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	if err := searchService.ReplaceDocuments(ctx, docs); err != nil {
		return fmt.Errorf("indexing content: %w", err)
	}
	return nil
}
