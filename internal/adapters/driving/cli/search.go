package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/s-hiraoku/blogsearch/internal/core/domain"
)

var (
	searchLimit     int
	searchJSON      bool
	searchFields    []string
	searchCategory  string
	searchTags      []string
	searchAfter     string
	searchBefore    string
	searchExact     bool
	searchHighlight bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed blog posts",
	Long: `Indexes the content directory and runs a tokenized full-text
search across the requested fields, ranked by TF-IDF relevance.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringSliceVar(&searchFields, "fields", []string{"title", "content", "tags"}, "fields to search")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "filter by category")
	searchCmd.Flags().StringSliceVar(&searchTags, "tag", nil, "filter by tag (repeatable)")
	searchCmd.Flags().StringVar(&searchAfter, "after", "", "filter: published on or after (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchBefore, "before", "", "filter: published on or before (YYYY-MM-DD)")
	searchCmd.Flags().BoolVar(&searchExact, "exact", false, "require exact term matches")
	searchCmd.Flags().BoolVar(&searchHighlight, "highlight", false, "include highlighted snippets")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := indexContent(ctx); err != nil {
		return err
	}

	query, err := buildQuery(args[0])
	if err != nil {
		return err
	}

	results, err := searchService.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

// buildQuery translates command flags into a domain query.
func buildQuery(text string) (domain.SearchQuery, error) {
	fields := make([]domain.SearchField, 0, len(searchFields))
	for _, f := range searchFields {
		fields = append(fields, domain.SearchField(f))
	}

	query := domain.SearchQuery{
		Text:       text,
		Fields:     fields,
		Limit:      searchLimit,
		Highlight:  searchHighlight,
		ExactMatch: searchExact,
	}

	filters := domain.SearchFilters{
		Category: searchCategory,
		Tags:     searchTags,
	}
	if searchAfter != "" {
		t, err := time.Parse("2006-01-02", searchAfter)
		if err != nil {
			return query, fmt.Errorf("invalid --after date: %w", err)
		}
		filters.PublishedAfter = &t
	}
	if searchBefore != "" {
		t, err := time.Parse("2006-01-02", searchBefore)
		if err != nil {
			return query, fmt.Errorf("invalid --before date: %w", err)
		}
		filters.PublishedBefore = &t
	}
	if !filters.Empty() {
		query.Filters = &filters
	}
	return query, nil
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		doc := results[i].Document
		title := doc.Title
		if title == "" {
			title = doc.ID
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, results[i].Score)
		if doc.Category != "" {
			cmd.Printf("      Category: %s\n", doc.Category)
		}
		for _, h := range results[i].Highlights {
			cmd.Printf("      %s: %s\n", h.Field, h.Snippet)
		}
		cmd.Println()
	}
	return nil
}
