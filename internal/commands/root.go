package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendlens/spendlens/internal/buildinfo"
	"github.com/spendlens/spendlens/internal/config"
	"github.com/spendlens/spendlens/internal/logger"
)

// skipConfig marks commands that must run without reading the config file.
const skipConfig = "skip-config"

// globals holds values shared by every subcommand, filled in before any
// subcommand runs.
type globals struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "spendlens",
		Short:   "Bank statement spending analysis",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", config.FileName, "config file")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newAnalyzeCommand(g))
	rootCmd.AddCommand(newClassifyCommand(g))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newPresetsCommand())

	return rootCmd
}

// setup loads the config and installs a logger on the command context. An
// explicit --config must exist; the default file is optional.
func (g *globals) setup(cmd *cobra.Command) error {
	if _, ok := cmd.Annotations[skipConfig]; ok {
		return nil
	}

	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(g.configPath)
	} else {
		cfg, err = config.LoadOrDefault(g.configPath)
	}
	if err != nil {
		return err
	}
	g.cfg = cfg

	level := cfg.Logging.Level
	if g.logLevel != "" {
		level = g.logLevel
	}
	log, err := logger.New(cmd.ErrOrStderr(), level)
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	cmd.SetContext(logger.WithContext(cmd.Context(), log))
	return nil
}
