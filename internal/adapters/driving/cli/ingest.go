package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docscribe/internal/connectors/filesystem"
)

func newIngestCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <paths...>",
		Short: "Extract and chunk documents",
		Long: `Loads the given files and directories and splits them into chunks
without building any index. Use it to check which files docscribe can read.

Directories are walked recursively; hidden files and directories are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, opts, args)
		},
	}
}

func runIngest(cmd *cobra.Command, opts *globalOptions, args []string) error {
	settings, err := opts.loadSettings()
	if err != nil {
		return err
	}

	files, err := filesystem.ExpandPaths(args)
	if err != nil {
		return err
	}

	loader, err := newLoader(settings.Chunking)
	if err != nil {
		return err
	}

	chunks, report, err := loader.Load(cmd.Context(), files)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Loaded %d of %d files into %d chunks\n", len(report.Loaded), report.Files, len(chunks))
	for _, path := range report.Loaded {
		cmd.Printf("  %s\n", path)
	}
	printSkipped(cmd, report)

	return nil
}
