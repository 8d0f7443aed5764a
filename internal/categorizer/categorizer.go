// Package categorizer assigns a spending category to each transaction by
// keyword matching against an ordered category table.
package categorizer

import (
	"strings"

	"github.com/kolade082/ksavers/internal/logging"
	"github.com/kolade082/ksavers/internal/models"
)

// CategoryOther is the bucket for descriptions matching no keyword.
const CategoryOther = "Other"

// Rule pairs a category name with the lowercase keyword substrings that
// select it. Rules are evaluated in declared order and the first match wins,
// so the order of a rule set is part of its contract.
type Rule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Categorizer matches transaction descriptions against an ordered rule set.
// It is stateless after construction and safe for concurrent use.
type Categorizer struct {
	rules  []Rule
	logger logging.Logger
}

// New creates a Categorizer for the given rules. A nil or empty rule set
// falls back to DefaultRules.
func New(rules []Rule, logger logging.Logger) *Categorizer {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Categorizer{
		rules:  rules,
		logger: logger,
	}
}

// Categorize returns the category for a transaction description. The first
// rule in declared order with a keyword contained in the lowercased
// description wins; descriptions matching nothing get CategoryOther.
func (c *Categorizer) Categorize(description string) string {
	lowered := strings.ToLower(description)

	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, keyword) {
				c.logger.WithFields(
					logging.Field{Key: "description", Value: description},
					logging.Field{Key: "keyword", Value: keyword},
					logging.Field{Key: "category", Value: rule.Name},
				).Debug("Transaction categorized by keyword")
				return rule.Name
			}
		}
	}

	return CategoryOther
}

// Apply returns a new slice with every transaction's Category assigned.
// The input slice is not modified and order is preserved.
func (c *Categorizer) Apply(transactions []models.Transaction) []models.Transaction {
	categorized := make([]models.Transaction, len(transactions))
	for i, tx := range transactions {
		tx.Category = c.Categorize(tx.Description)
		categorized[i] = tx
	}
	return categorized
}
