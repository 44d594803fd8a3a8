// Package classify assigns spending categories to transactions by ordered
// keyword rules. Rules are checked in order and the first rule with a
// keyword contained in the description wins; the position of the keyword
// inside the description plays no part.
package classify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spendlens/spendlens/internal/model"
)

// Rule maps a category label to the keywords that select it.
type Rule struct {
	Category string   `mapstructure:"category" yaml:"category"`
	Keywords []string `mapstructure:"keywords" yaml:"keywords"`
}

// Rules is an ordered rule list. Order is the tie-break.
type Rules []Rule

// Validate rejects rules without a category label.
func (rs Rules) Validate() error {
	var errs []error
	for i, r := range rs {
		if strings.TrimSpace(r.Category) == "" {
			errs = append(errs, fmt.Errorf("rule %d: category is required", i+1))
		}
	}
	return errors.Join(errs...)
}

// Categories returns the rule labels in order.
func (rs Rules) Categories() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Category
	}
	return out
}

// Classify returns the category of the first rule with a keyword occurring
// in description, compared case-insensitively. Blank keywords never match.
func Classify(description string, rules Rules) string {
	if description == "" {
		return model.Uncategorized
	}
	desc := strings.ToLower(description)
	for _, r := range rules {
		if r.Category == "" {
			continue
		}
		for _, kw := range r.Keywords {
			if strings.TrimSpace(kw) == "" {
				continue
			}
			if strings.Contains(desc, strings.ToLower(kw)) {
				return r.Category
			}
		}
	}
	return model.Uncategorized
}

// Apply returns copies of txns labelled by Classify.
func Apply(txns []model.Transaction, rules Rules) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	for i, t := range txns {
		out[i] = t.WithCategory(Classify(t.Description, rules))
	}
	return out
}
