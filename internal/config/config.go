package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/spendlens/spendlens/internal/classify"
	"github.com/spendlens/spendlens/internal/importer"
	"github.com/spendlens/spendlens/internal/insight"
)

// FileName is the default config file name.
const FileName = "spendlens.yaml"

// EnvPrefix prefixes environment overrides, e.g. SPENDLENS_ADVISOR_PROVIDER.
const EnvPrefix = "SPENDLENS"

// RowPolicy decides what happens to a row that fails validation.
type RowPolicy string

const (
	RowPolicySkip  RowPolicy = "skip"
	RowPolicyAbort RowPolicy = "abort"
)

// Advisor providers.
const (
	ProviderNone   = "none"
	ProviderRules  = "rules"
	ProviderGemini = "gemini"
)

// Config represents the top-level spendlens.yaml configuration.
type Config struct {
	Statement StatementConfig `mapstructure:"statement" yaml:"statement"`
	Rules     classify.Rules  `mapstructure:"rules" yaml:"rules"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline" yaml:"pipeline"`
	Advisor   AdvisorConfig   `mapstructure:"advisor" yaml:"advisor"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// StatementConfig selects the column layout of the input file. Columns set
// alongside a preset override the preset's values.
type StatementConfig struct {
	Preset  string                 `mapstructure:"preset" yaml:"preset,omitempty"`
	Columns importer.ColumnMapping `mapstructure:"columns" yaml:"columns,omitempty"`
}

// PipelineConfig controls row handling.
type PipelineConfig struct {
	RowPolicy RowPolicy `mapstructure:"row_policy" yaml:"row_policy"`
}

// AdvisorConfig selects and tunes the advisory stage.
type AdvisorConfig struct {
	Provider            string  `mapstructure:"provider" yaml:"provider"` // none, rules or gemini
	Model               string  `mapstructure:"model" yaml:"model,omitempty"`
	APIKey              string  `mapstructure:"api_key" yaml:"api_key,omitempty"`
	DiningCategory      string  `mapstructure:"dining_category" yaml:"dining_category"`
	HighDiningThreshold float64 `mapstructure:"high_dining_threshold" yaml:"high_dining_threshold"`
	LowSavingThreshold  float64 `mapstructure:"low_saving_threshold" yaml:"low_saving_threshold"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Load reads a spendlens.yaml file from disk, starting from Default and
// applying SPENDLENS_* environment overrides. GEMINI_API_KEY is used when no
// API key is configured.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return load(path)
}

// LoadOrDefault is Load, except that a missing file yields Default with
// environment overrides applied.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return load("")
	}
	return Load(path)
}

func load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{"advisor.provider", "advisor.model", "logging.level", "pipeline.row_policy"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}
	if err := v.BindEnv("advisor.api_key", EnvPrefix+"_ADVISOR_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding advisor.api_key: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg := Default()
	// a configured rule list replaces the defaults rather than merging into them
	if v.IsSet("rules") {
		cfg.Rules = nil
	}
	if v.IsSet("statement.preset") || v.IsSet("statement.columns") {
		cfg.Statement = StatementConfig{}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		if path == "" {
			return nil, fmt.Errorf("validating config: %w", err)
		}
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config for the cn-bank statement layout with a starter
// rule set.
func Default() *Config {
	return &Config{
		Statement: StatementConfig{Preset: importer.CNBankPreset().Name},
		Rules: classify.Rules{
			{Category: "餐饮", Keywords: []string{"午餐", "晚餐", "早餐", "外卖", "咖啡", "餐厅"}},
			{Category: "交通", Keywords: []string{"公交", "地铁", "打车", "加油"}},
			{Category: "购物", Keywords: []string{"超市", "网购", "商场"}},
			{Category: "娱乐", Keywords: []string{"电影", "娱乐", "游戏"}},
			{Category: "收入", Keywords: []string{"工资", "奖金"}},
		},
		Pipeline: PipelineConfig{RowPolicy: RowPolicySkip},
		Advisor: AdvisorConfig{
			Provider:            ProviderRules,
			Model:               insight.DefaultGeminiModel,
			DiningCategory:      insight.DefaultDiningCategory,
			HighDiningThreshold: insight.DefaultHighDiningThreshold,
			LowSavingThreshold:  insight.DefaultLowSavingThreshold,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Validate checks the parts of the config that do not depend on presets.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Rules.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("rules: %w", err))
	}
	switch c.Pipeline.RowPolicy {
	case RowPolicySkip, RowPolicyAbort:
	default:
		errs = append(errs, fmt.Errorf("pipeline.row_policy must be %q or %q, got %q", RowPolicySkip, RowPolicyAbort, c.Pipeline.RowPolicy))
	}
	switch c.Advisor.Provider {
	case ProviderNone, ProviderRules, ProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("advisor.provider must be one of none, rules, gemini, got %q", c.Advisor.Provider))
	}
	return errors.Join(errs...)
}

// Mapping resolves the statement layout against the preset registry and
// validates the result.
func (c *Config) Mapping(presets *importer.Registry) (importer.ColumnMapping, error) {
	m := c.Statement.Columns
	if c.Statement.Preset != "" {
		p, ok := presets.Get(c.Statement.Preset)
		if !ok {
			return importer.ColumnMapping{}, fmt.Errorf("unknown statement preset %q", c.Statement.Preset)
		}
		m = overlay(p.Mapping, c.Statement.Columns)
	}
	if err := m.Validate(); err != nil {
		return importer.ColumnMapping{}, err
	}
	return m, nil
}

// overlay returns base with every non-empty field of o applied on top.
func overlay(base, o importer.ColumnMapping) importer.ColumnMapping {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&base.DateColumn, o.DateColumn)
	set(&base.AmountColumn, o.AmountColumn)
	set(&base.DescriptionColumn, o.DescriptionColumn)
	set(&base.KindColumn, o.KindColumn)
	set(&base.IncomeKeyword, o.IncomeKeyword)
	set(&base.ExpenseKeyword, o.ExpenseKeyword)
	set(&base.Delimiter, o.Delimiter)
	if len(o.DateFormats) > 0 {
		base.DateFormats = o.DateFormats
	}
	return base
}
