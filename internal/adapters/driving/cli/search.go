package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/docscribe/internal/connectors/filesystem"
	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/services"
)

// Output formats for search results.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatTool = "tool"
)

// snippetLength is the number of characters shown per result in text output.
const snippetLength = 160

type searchOptions struct {
	sources []string
	limit   int
	format  string
}

// searchResultView is the serialised form of a result.
type searchResultView struct {
	Rank    int     `json:"rank" yaml:"rank"`
	Source  string  `json:"source" yaml:"source"`
	ChunkID string  `json:"chunk_id" yaml:"chunk_id"`
	Score   float64 `json:"score" yaml:"score"`
	Content string  `json:"content" yaml:"content"`
}

func newSearchCmd(opts *globalOptions) *cobra.Command {
	so := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search documents",
		Long: `Indexes the given sources in memory and runs a hybrid search.
Keyword (BM25) and semantic (vector) hits are merged with reciprocal rank fusion.

Examples:
  docscribe search "how are chunks split" --source ./docs --source ./internal
  docscribe search retry -s notes.md -n 3 --format json
  docscribe search retry -s ./docs --format tool`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts, so, args[0])
		},
	}

	cmd.Flags().StringArrayVarP(&so.sources, "source", "s", nil, "file or directory to index (repeatable)")
	cmd.Flags().IntVarP(&so.limit, "limit", "n", 0, "hits per index (default search.top_k)")
	cmd.Flags().StringVarP(&so.format, "format", "f", formatText, "output format: text, json, yaml or tool")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func runSearch(cmd *cobra.Command, opts *globalOptions, so *searchOptions, query string) error {
	switch so.format {
	case formatText, formatJSON, formatYAML, formatTool:
	default:
		return fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, so.format)
	}

	settings, err := opts.loadSettings()
	if err != nil {
		return err
	}

	files, err := filesystem.ExpandPaths(so.sources)
	if err != nil {
		return err
	}

	svc, release, err := newSearchService(cmd.Context(), settings)
	if err != nil {
		return err
	}
	defer release()

	report, err := svc.Build(cmd.Context(), files)
	printSkipped(cmd, report)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	results, err := svc.Search(cmd.Context(), query, domain.SearchOptions{Limit: so.limit})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	switch so.format {
	case formatJSON:
		return outputSearchJSON(cmd, results)
	case formatYAML:
		return outputSearchYAML(cmd, results)
	case formatTool:
		fmt.Fprint(cmd.OutOrStdout(), services.FormatResults(query, results))
		return nil
	default:
		outputSearchText(cmd, results)
		return nil
	}
}

func resultViews(results []domain.RetrievalResult) []searchResultView {
	views := make([]searchResultView, len(results))
	for i, r := range results {
		views[i] = searchResultView{
			Rank:    i + 1,
			Source:  r.Source,
			ChunkID: r.ChunkID,
			Score:   r.Score,
			Content: r.Content,
		}
	}
	return views
}

func outputSearchJSON(cmd *cobra.Command, results []domain.RetrievalResult) error {
	data, err := json.MarshalIndent(resultViews(results), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func outputSearchYAML(cmd *cobra.Command, results []domain.RetrievalResult) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(resultViews(results)); err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	return enc.Close()
}

func outputSearchText(cmd *cobra.Command, results []domain.RetrievalResult) {
	out := cmd.OutOrStdout()

	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return
	}

	fmt.Fprintln(out, "Results:")
	fmt.Fprintln(out)
	for i, r := range results {
		// Format: [N] source (score)
		fmt.Fprintf(out, "  [%d] %s (%.4f)\n", i+1, r.Source, r.Score)
		fmt.Fprintf(out, "      %s\n", snippet(r.Content))
		fmt.Fprintln(out)
	}
}

// snippet collapses whitespace and truncates to snippetLength characters.
func snippet(content string) string {
	s := []rune(strings.Join(strings.Fields(content), " "))
	if len(s) <= snippetLength {
		return string(s)
	}
	return string(s[:snippetLength]) + "..."
}
