package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spendlens/spendlens/internal/config"
	"github.com/spendlens/spendlens/internal/importer"
)

func newInitCommand() *cobra.Command {
	var preset string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a starter spendlens.yaml",
		Args:  cobra.MaximumNArgs(1),
		// init rewrites the config, so a broken one must not block it
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			path, err := runInit(absDir, preset, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "statement column preset to start from")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func runInit(dir, preset string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("checking %s: %w", path, err)
	}

	cfg := config.Default()
	if preset != "" {
		if _, ok := importer.DefaultRegistry().Get(preset); !ok {
			return "", fmt.Errorf("unknown statement preset %q", preset)
		}
		cfg.Statement.Preset = preset
	}

	if err := config.Save(path, cfg); err != nil {
		return "", err
	}
	return path, nil
}
