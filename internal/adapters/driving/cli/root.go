// Package cli provides the docscribe command line.
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docscribe/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/services"
	"github.com/custodia-labs/docscribe/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=v1.2.3".
var version = "dev"

// globalOptions holds the persistent flag values shared by every command.
type globalOptions struct {
	verbose   bool
	configDir string
	envFile   string
}

// Execute runs the command line with the given context.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree. Every call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "docscribe",
		Short: "Search your documents and code while writing about them",
		Long: `docscribe indexes local documents and source code and answers
hybrid keyword and semantic queries over them.

Indexes live in memory and are rebuilt from the sources on every run.
The MCP server exposes the search to a writing assistant.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&opts.configDir, "config-dir", "", "configuration directory (default ~/.docscribe)")
	flags.StringVar(&opts.envFile, "env-file", "", "load environment variables from a .env file")

	root.AddCommand(
		newIngestCmd(opts),
		newSearchCmd(opts),
		newMCPCmd(opts),
		newSettingsCmd(opts),
		newVersionCmd(),
	)

	return root
}

func (o *globalOptions) setup() error {
	logger.SetVerbose(o.verbose)

	if o.envFile != "" {
		// Variables already set in the environment win over the file
		if err := godotenv.Load(o.envFile); err != nil {
			return fmt.Errorf("%w: loading %s: %v", domain.ErrConfiguration, o.envFile, err)
		}
		logger.Debug("Loaded environment from %s", o.envFile)
	}

	return nil
}

// settingsService opens the config file in the configured directory.
func (o *globalOptions) settingsService() (*services.SettingsService, error) {
	dir := o.configDir
	if dir == "" {
		var err error
		if dir, err = file.DefaultDir(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
		}
	}

	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}

	return services.NewSettingsService(store), nil
}

// loadSettings resolves and validates the settings.
func (o *globalOptions) loadSettings() (*domain.AppSettings, error) {
	svc, err := o.settingsService()
	if err != nil {
		return nil, err
	}

	settings, err := svc.Get()
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// promptStore opens the prompt templates next to the config file.
func (o *globalOptions) promptStore() (*file.PromptStore, error) {
	if o.configDir == "" {
		return file.NewPromptStore("")
	}
	return file.NewPromptStore(filepath.Join(o.configDir, "prompts"))
}
