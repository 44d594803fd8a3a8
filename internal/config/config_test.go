package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens/internal/classify"
	"github.com/spendlens/spendlens/internal/importer"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Rules = append(cfg.Rules, classify.Rule{Category: "Books", Keywords: []string{"kindle"}})
	cfg.Pipeline.RowPolicy = RowPolicyAbort
	cfg.Advisor.Provider = ProviderNone

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Statement, got.Statement)
	assert.Equal(t, cfg.Rules, got.Rules)
	assert.Equal(t, RowPolicyAbort, got.Pipeline.RowPolicy)
	assert.Equal(t, ProviderNone, got.Advisor.Provider)
	assert.Equal(t, cfg.Advisor.DiningCategory, got.Advisor.DiningCategory)
	assert.InDelta(t, cfg.Advisor.HighDiningThreshold, got.Advisor.HighDiningThreshold, 0.001)
	assert.InDelta(t, cfg.Advisor.LowSavingThreshold, got.Advisor.LowSavingThreshold, 0.001)
	assert.Equal(t, "info", got.Logging.Level)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "cn-bank", cfg.Statement.Preset)
	assert.Equal(t, []string{"餐饮", "交通", "购物", "娱乐", "收入"}, cfg.Rules.Categories())
	assert.Equal(t, RowPolicySkip, cfg.Pipeline.RowPolicy)
	assert.Equal(t, ProviderRules, cfg.Advisor.Provider)
	assert.InDelta(t, 0.20, cfg.Advisor.HighDiningThreshold, 0.001)
	assert.InDelta(t, 0.10, cfg.Advisor.LowSavingThreshold, 0.001)
	assert.NoError(t, cfg.Validate())

	m, err := cfg.Mapping(importer.DefaultRegistry())
	require.NoError(t, err)
	assert.Equal(t, importer.CNBankPreset().Mapping, m)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
advisor:
  provider: none
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ProviderNone, cfg.Advisor.Provider)
	assert.Equal(t, "餐饮", cfg.Advisor.DiningCategory)
	assert.Equal(t, Default().Rules, cfg.Rules)
	assert.Equal(t, "cn-bank", cfg.Statement.Preset)
}

func TestLoad_RulesReplaceDefaults(t *testing.T) {
	path := writeConfig(t, `
rules:
  - category: Groceries
    keywords: [whole foods, safeway]
  - category: Dining
    keywords: [cafe]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, classify.Rules{
		{Category: "Groceries", Keywords: []string{"whole foods", "safeway"}},
		{Category: "Dining", Keywords: []string{"cafe"}},
	}, cfg.Rules)
}

func TestLoad_CustomColumns(t *testing.T) {
	path := writeConfig(t, `
statement:
  columns:
    date_column: Date
    amount_column: Value
    description_column: Memo
    kind_column: Type
    income_keyword: in
    expense_keyword: out
    delimiter: ";"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Statement.Preset)

	m, err := cfg.Mapping(importer.DefaultRegistry())
	require.NoError(t, err)
	assert.Equal(t, "Memo", m.DescriptionColumn)
	assert.Equal(t, ";", m.Delimiter)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: info\n")
	t.Setenv("SPENDLENS_ADVISOR_PROVIDER", "gemini")
	t.Setenv("SPENDLENS_LOGGING_LEVEL", "debug")
	t.Setenv("GEMINI_API_KEY", "from-gemini-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.Advisor.Provider)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "from-gemini-env", cfg.Advisor.APIKey)

	t.Setenv("SPENDLENS_ADVISOR_API_KEY", "from-spendlens-env")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-spendlens-env", cfg.Advisor.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"bad policy", "pipeline:\n  row_policy: retry\n", "row_policy"},
		{"bad provider", "advisor:\n  provider: oracle\n", "advisor.provider"},
		{"empty category", "rules:\n  - category: \"\"\n    keywords: [x]\n", "category is required"},
		{"bad yaml", "rules: [\n", "parsing config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMapping(t *testing.T) {
	reg := importer.DefaultRegistry()

	cfg := Default()
	cfg.Statement = StatementConfig{Preset: "CHASE", Columns: importer.ColumnMapping{Delimiter: "\t"}}
	m, err := cfg.Mapping(reg)
	require.NoError(t, err)
	assert.Equal(t, "Posting Date", m.DateColumn)
	assert.Equal(t, "\t", m.Delimiter)

	cfg.Statement = StatementConfig{Preset: "nope"}
	_, err = cfg.Mapping(reg)
	assert.ErrorContains(t, err, `unknown statement preset "nope"`)

	cfg.Statement = StatementConfig{Columns: importer.ColumnMapping{DateColumn: "Date"}}
	_, err = cfg.Mapping(reg)
	assert.ErrorContains(t, err, "invalid column mapping")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "preset: cn-bank")
	assert.Contains(t, contents, "category: 餐饮")
	assert.Contains(t, contents, "row_policy: skip")
	assert.Contains(t, contents, "provider: rules")
	assert.NotContains(t, contents, "columns:")
	assert.NotContains(t, contents, "api_key")
}

func TestLoadOrDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), FileName)

	cfg, err := LoadOrDefault(missing)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	t.Setenv("SPENDLENS_ADVISOR_PROVIDER", "none")
	cfg, err = LoadOrDefault(missing)
	require.NoError(t, err)
	assert.Equal(t, ProviderNone, cfg.Advisor.Provider)

	cfg, err = LoadOrDefault(writeConfig(t, "pipeline:\n  row_policy: abort\n"))
	require.NoError(t, err)
	assert.Equal(t, RowPolicyAbort, cfg.Pipeline.RowPolicy)
	assert.Equal(t, ProviderNone, cfg.Advisor.Provider)
}
