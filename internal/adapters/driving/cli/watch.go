package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/s-hiraoku/blogsearch/internal/adapters/driven/content"
	"github.com/s-hiraoku/blogsearch/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the content directory and re-index on change",
	Long: `Indexes the content directory, then keeps watching it and
rebuilds the index whenever a markdown post is added, edited or
removed. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := indexContent(ctx); err != nil {
		return err
	}
	cmd.Printf("Indexed %d posts. Watching %s...\n", searchService.IndexSize(), contentDir)

	watcher, err := content.NewWatcher(contentDir)
	if err != nil {
		return err
	}
	defer watcher.Close()

	err = watcher.Watch(ctx, func() {
		if err := indexContent(ctx); err != nil {
			logger.Warn("Re-index failed: %v", err)
			return
		}
		cmd.Printf("Re-indexed, %d posts.\n", searchService.IndexSize())
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
