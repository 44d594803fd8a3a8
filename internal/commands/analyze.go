package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spendlens/spendlens/internal/analysis"
	"github.com/spendlens/spendlens/internal/config"
	"github.com/spendlens/spendlens/internal/importer"
	"github.com/spendlens/spendlens/internal/insight"
	"github.com/spendlens/spendlens/internal/rejects"
	"github.com/spendlens/spendlens/internal/report"
)

// Output formats for analyze.
const (
	formatText = "text"
	formatJSON = "json"
	formatCSV  = "csv"
)

type analyzeFlags struct {
	preset      string
	month       string
	format      string
	strict      bool
	advisor     string
	rejectsPath string
}

func newAnalyzeCommand(g *globals) *cobra.Command {
	var f analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze <statement.csv>",
		Short: "Analyze a bank statement export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, g.cfg, args[0], f)
		},
	}

	cmd.Flags().StringVar(&f.preset, "preset", "", "statement column preset (overrides config)")
	cmd.Flags().StringVar(&f.month, "month", "", "only report on this month (YYYY-MM)")
	cmd.Flags().StringVar(&f.format, "format", formatText, "output format: text, json or csv")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "abort on the first invalid row")
	cmd.Flags().StringVar(&f.advisor, "advisor", "", "advisor provider: none, rules or gemini (overrides config)")
	cmd.Flags().StringVar(&f.rejectsPath, "rejects", "", "write rows that failed validation to this CSV file")

	return cmd
}

func runAnalyze(cmd *cobra.Command, base *config.Config, path string, f analyzeFlags) error {
	switch f.format {
	case formatText, formatJSON, formatCSV:
	default:
		return fmt.Errorf("unknown format %q, want text, json or csv", f.format)
	}

	cfg := *base
	if f.preset != "" {
		cfg.Statement = config.StatementConfig{Preset: f.preset}
	}
	if f.advisor != "" {
		cfg.Advisor.Provider = f.advisor
	}

	ctx := cmd.Context()
	advisor, err := analysis.NewAdvisor(ctx, cfg.Advisor)
	if err != nil {
		return fmt.Errorf("creating advisor: %w", err)
	}
	p, err := analysis.New(&cfg, importer.DefaultRegistry(), advisor)
	if err != nil {
		return err
	}

	res, err := p.Run(ctx, path, analysis.Options{Month: f.month, Strict: f.strict})
	if err != nil {
		return err
	}

	if f.rejectsPath != "" {
		if err := rejects.WriteFile(f.rejectsPath, res.Rejected); err != nil {
			return err
		}
	}
	if n := len(res.Rejected); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: skipped %d invalid row(s)\n", n)
	}

	out := cmd.OutOrStdout()
	switch f.format {
	case formatJSON:
		return writeJSON(out, res)
	case formatCSV:
		return report.WriteCSV(out, res.Report)
	default:
		return writeText(out, res)
	}
}

type analyzeOutput struct {
	RunID    string                `json:"run_id"`
	Source   string                `json:"source"`
	Month    string                `json:"month,omitempty"`
	Report   *report.MonthlyReport `json:"report"`
	Insight  insight.Insight       `json:"insight"`
	Rejected []rejects.Entry       `json:"rejected"`
}

func writeJSON(w io.Writer, res *analysis.Result) error {
	out := analyzeOutput{
		RunID:    res.RunID,
		Source:   res.Source,
		Month:    res.Month,
		Report:   res.Report,
		Insight:  res.Insight,
		Rejected: res.Rejected,
	}
	if out.Rejected == nil {
		out.Rejected = []rejects.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeText(w io.Writer, res *analysis.Result) error {
	if err := report.RenderText(w, res.Report, res.Highlights); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n--- Advice ---\n%s\n\n--- Prediction ---\n%s\n", res.Insight.Advice, res.Insight.Prediction)
	return err
}
