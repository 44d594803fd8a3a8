package importer

import (
	"sort"
	"strings"
)

// Preset is a named ColumnMapping for a known statement export format.
type Preset struct {
	Name        string
	Description string
	Mapping     ColumnMapping
}

// Registry holds named presets.
type Registry struct {
	presets map[string]Preset
}

// NewRegistry creates an empty preset registry.
func NewRegistry() *Registry {
	return &Registry{presets: make(map[string]Preset)}
}

// Register adds a preset. Panics on duplicate name.
func (r *Registry) Register(p Preset) {
	key := strings.ToLower(p.Name)
	if _, ok := r.presets[key]; ok {
		panic("duplicate preset: " + key)
	}
	r.presets[key] = p
}

// Get returns the preset registered under name, ignoring case.
func (r *Registry) Get(name string) (Preset, bool) {
	p, ok := r.presets[strings.ToLower(name)]
	return p, ok
}

// All returns every preset sorted by name.
func (r *Registry) All() []Preset {
	out := make([]Preset, 0, len(r.presets))
	for _, p := range r.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DefaultRegistry returns a registry with all built-in presets.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(CNBankPreset())
	r.Register(ChasePreset())
	return r
}

// CNBankPreset maps the common mainland-China bank export, where the kind
// column reads 收入 or 支出 and expenses carry a negative amount.
func CNBankPreset() Preset {
	return Preset{
		Name:        "cn-bank",
		Description: "Chinese bank export (日期, 交易金额, 交易描述, 交易类型)",
		Mapping: ColumnMapping{
			DateColumn:        "日期",
			AmountColumn:      "交易金额",
			DescriptionColumn: "交易描述",
			KindColumn:        "交易类型",
			IncomeKeyword:     "收入",
			ExpenseKeyword:    "支出",
		},
	}
}
