package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSettingsCmd(opts *globalOptions) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change settings",
		Long: `View and change docscribe settings.

Settings are resolved from defaults, then the config file, then DOCSCRIBE_*
environment variables.`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display the resolved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSettingsShow(cmd, opts)
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting in the config file",
		Long: `Store a setting in the config file.

Keys:
  embedding.backend     openai, ollama or hashing
  embedding.model       embedding model name
  embedding.base_url    API endpoint
  embedding.api_key     API key for the remote backend
  embedding.cache_dir   embedding cache directory (empty disables the cache)
  embedding.dimensions  vector size override
  chunking.size         maximum chunk length in characters
  chunking.overlap      characters shared by consecutive chunks
  search.top_k          hits per index
  search.rrf_k          reciprocal rank fusion constant`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsSet(cmd, opts, args[0], args[1])
		},
	}

	settingsCmd.AddCommand(showCmd, setCmd)
	return settingsCmd
}

func runSettingsShow(cmd *cobra.Command, opts *globalOptions) error {
	svc, err := opts.settingsService()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	// Embedding settings
	cmd.Println("[Embedding]")
	cmd.Printf("  Backend: %s\n", settings.Embedding.Backend.Description())
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	if settings.Embedding.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	}
	if settings.Embedding.Backend.RequiresAPIKey() {
		if settings.Embedding.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Embedding.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	if settings.Embedding.Dimensions > 0 {
		cmd.Printf("  Dimensions: %d\n", settings.Embedding.Dimensions)
	}
	if settings.Embedding.CacheDir != "" {
		cmd.Printf("  Cache: %s\n", settings.Embedding.CacheDir)
	} else {
		cmd.Printf("  Cache: disabled\n")
	}
	cmd.Println()

	// Chunking settings
	cmd.Println("[Chunking]")
	cmd.Printf("  Size: %d\n", settings.Chunking.Size)
	cmd.Printf("  Overlap: %d\n", settings.Chunking.Overlap)
	cmd.Println()

	// Search settings
	cmd.Println("[Search]")
	cmd.Printf("  Top K: %d\n", settings.Search.TopK)
	cmd.Printf("  RRF K: %d\n", settings.Search.RRFK)
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'docscribe settings set' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, opts *globalOptions, key, value string) error {
	svc, err := opts.settingsService()
	if err != nil {
		return err
	}

	if err := svc.Set(key, value); err != nil {
		return err
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
