// Package analysis runs a statement file through parsing, classification,
// aggregation and the advisory stage.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spendlens/spendlens/internal/classify"
	"github.com/spendlens/spendlens/internal/config"
	"github.com/spendlens/spendlens/internal/importer"
	"github.com/spendlens/spendlens/internal/insight"
	"github.com/spendlens/spendlens/internal/logger"
	"github.com/spendlens/spendlens/internal/model"
	"github.com/spendlens/spendlens/internal/rejects"
	"github.com/spendlens/spendlens/internal/report"
)

// Options tune a single run.
type Options struct {
	Month  string // "YYYY-MM"; empty reports on every transaction
	Strict bool   // abort on the first invalid row regardless of the configured policy
}

// Result is everything a run produced.
type Result struct {
	RunID        string
	Source       string
	Month        string
	Transactions []model.Transaction
	Report       *report.MonthlyReport
	Highlights   report.Summary
	Insight      insight.Insight
	Rejected     []rejects.Entry
}

// Pipeline is a configured, stateless analysis run. It is safe for
// concurrent use.
type Pipeline struct {
	mapping importer.ColumnMapping
	rules   classify.Rules
	policy  config.RowPolicy
	advisor insight.Advisor
}

// New builds a Pipeline from cfg. A nil advisor disables the advisory stage.
func New(cfg *config.Config, presets *importer.Registry, advisor insight.Advisor) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	mapping, err := cfg.Mapping(presets)
	if err != nil {
		return nil, fmt.Errorf("resolving statement layout: %w", err)
	}
	return &Pipeline{
		mapping: mapping,
		rules:   cfg.Rules,
		policy:  cfg.Pipeline.RowPolicy,
		advisor: advisor,
	}, nil
}

// Mapping returns the resolved column mapping.
func (p *Pipeline) Mapping() importer.ColumnMapping {
	return p.mapping
}

// Run analyzes the statement at path. Structural problems with the file are
// always fatal. Invalid rows are recorded in Result.Rejected under the skip
// policy and returned as the run's error under abort or opts.Strict.
func (p *Pipeline) Run(ctx context.Context, path string, opts Options) (*Result, error) {
	if opts.Month != "" {
		if _, err := time.Parse("2006-01", opts.Month); err != nil {
			return nil, fmt.Errorf("invalid month %q, want YYYY-MM", opts.Month)
		}
	}

	res := &Result{RunID: uuid.NewString(), Source: path, Month: opts.Month}
	log := logger.FromContext(ctx).With().Str("run_id", res.RunID).Str("source", path).Logger()

	rows, err := importer.ParseFile(path, p.mapping)
	if err != nil {
		return nil, fmt.Errorf("parsing statement: %w", err)
	}
	log.Info().Int("rows", len(rows)).Msg("parsed statement")

	strict := opts.Strict || p.policy == config.RowPolicyAbort
	txns := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		t, err := importer.Build(row, p.mapping)
		if err != nil {
			entry, ok := rejects.FromError(err)
			if strict || !ok {
				return nil, fmt.Errorf("building transactions: %w", err)
			}
			log.Warn().Int("row", entry.Row).Str("field", entry.Field).Str("value", entry.Value).Msg("skipping invalid row")
			res.Rejected = append(res.Rejected, entry)
			continue
		}
		txns = append(txns, t)
	}

	txns = classify.Apply(txns, p.rules)
	if log.GetLevel() <= zerolog.DebugLevel {
		for _, t := range txns {
			log.Debug().Str("description", t.Description).Str("category", t.Category).Msg("classified")
		}
	}

	if opts.Month != "" {
		txns = report.FilterMonth(txns, opts.Month)
	}
	res.Transactions = txns
	res.Report = report.GenerateMonthlyReport(txns)
	res.Highlights = report.Highlights(txns)
	log.Info().
		Int("transactions", len(txns)).
		Int("rejected", len(res.Rejected)).
		Str("total_expense", res.Report.TotalExpense.StringFixed(2)).
		Msg("report generated")

	res.Insight = p.advise(ctx, log, res.Report)
	return res, nil
}

func (p *Pipeline) advise(ctx context.Context, log zerolog.Logger, r *report.MonthlyReport) insight.Insight {
	if p.advisor == nil {
		return insight.Unavailable()
	}
	resp, err := p.advisor.Advise(ctx, insight.PrepareForExternal(r))
	if err != nil {
		log.Warn().Err(err).Msg("advisor failed")
		return insight.Unavailable()
	}
	return insight.InterpretExternalResponse(resp)
}

// NewAdvisor returns the advisor selected by cfg, or nil for provider "none".
func NewAdvisor(ctx context.Context, cfg config.AdvisorConfig) (insight.Advisor, error) {
	switch cfg.Provider {
	case config.ProviderNone, "":
		return nil, nil
	case config.ProviderRules:
		return &insight.RuleAdvisor{
			DiningCategory:      cfg.DiningCategory,
			HighDiningThreshold: cfg.HighDiningThreshold,
			LowSavingThreshold:  cfg.LowSavingThreshold,
		}, nil
	case config.ProviderGemini:
		a, err := insight.NewGeminiAdvisor(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown advisor provider %q", cfg.Provider)
	}
}
