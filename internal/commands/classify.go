package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spendlens/spendlens/internal/classify"
)

func newClassifyCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <description>...",
		Short: "Show the category a description would get",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := classify.Classify(strings.Join(args, " "), g.cfg.Rules)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), category)
			return err
		},
	}
}
