package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spendlens/spendlens/internal/importer"
)

func newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "presets",
		Short:       "List built-in statement column presets",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCOLUMNS\tINCOME/EXPENSE\tDESCRIPTION")
			for _, p := range importer.DefaultRegistry().All() {
				fmt.Fprintf(tw, "%s\t%s\t%s/%s\t%s\n",
					p.Name,
					strings.Join(p.Mapping.Columns(), ", "),
					p.Mapping.IncomeKeyword, p.Mapping.ExpenseKeyword,
					p.Description)
			}
			return tw.Flush()
		},
	}
}
