package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/achview/internal/buildinfo"
	"github.com/cleared-dev/achview/internal/config"
	"github.com/cleared-dev/achview/internal/importer"
	"github.com/cleared-dev/achview/internal/logging"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
}

// env is what a subcommand needs once flags are parsed.
type env struct {
	cfg     *config.Config
	log     *zap.Logger
	parsers *importer.Registry
}

func (o *globalOptions) load(cmd *cobra.Command) (*env, error) {
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	log := logging.New(cfg.Logging, cmd.ErrOrStderr())
	log.Debug("config loaded", zap.String("path", o.configPath))
	return &env{cfg: cfg, log: log, parsers: importer.DefaultRegistry()}, nil
}

// parser returns the ACH parser from the registry.
func (e *env) parser() importer.Parser {
	return e.parsers.Get("nacha")
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "achview",
		Short:   "Inspect and validate NACHA ACH files",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "path to config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newInspectCommand(opts))
	rootCmd.AddCommand(newValidateCommand(opts))
	rootCmd.AddCommand(newEntriesCommand(opts))
	rootCmd.AddCommand(newScanCommand(opts))

	return rootCmd
}
