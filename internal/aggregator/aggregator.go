// Package aggregator groups categorized transactions and computes
// per-category summary statistics.
package aggregator

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kolade082/ksavers/internal/logging"
	"github.com/kolade082/ksavers/internal/models"
)

// Summary holds the aggregate view of one categorized transaction list.
type Summary struct {
	Categories    []models.Category
	TotalSpending decimal.Decimal
	TotalIncome   decimal.Decimal
}

// Aggregator computes category summaries. It is stateless; every call
// operates on its own inputs, so concurrent analyses need no locking.
type Aggregator struct {
	logger logging.Logger
}

// New creates an Aggregator.
func New(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Aggregator{logger: logger}
}

// Aggregate partitions transactions by category, preserving first-appearance
// order, and computes per-category spending totals and percentages.
//
// TotalSpending is the absolute sum of all debit amounts across the whole
// list. Category.Amount is the absolute debit sum of the group; credits stay
// in the group's transaction list but carry no spending weight. Percentages
// are relative to TotalSpending and defined as 0 when there is no spending.
func (a *Aggregator) Aggregate(transactions []models.Transaction) Summary {
	totalSpending := decimal.Zero
	totalIncome := decimal.Zero
	for _, tx := range transactions {
		if tx.IsDebit() {
			totalSpending = totalSpending.Add(tx.Amount.Abs())
		} else {
			totalIncome = totalIncome.Add(tx.Amount.Abs())
		}
	}

	order := make([]string, 0)
	groups := make(map[string][]models.Transaction)
	for _, tx := range transactions {
		name := tx.Category
		if name == "" {
			name = "Other"
		}
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], tx)
	}

	categories := make([]models.Category, 0, len(order))
	for _, name := range order {
		group := groups[name]

		amount := decimal.Zero
		for _, tx := range group {
			if tx.IsDebit() {
				amount = amount.Add(tx.Amount.Abs())
			}
		}

		percentage := 0.0
		if totalSpending.IsPositive() {
			percentage, _ = amount.Div(totalSpending).Mul(decimal.NewFromInt(100)).Float64()
		}

		categories = append(categories, models.Category{
			Name:         name,
			Amount:       amount,
			Percentage:   percentage,
			Transactions: group,
		})
	}

	a.logger.WithFields(
		logging.Field{Key: "transactions", Value: len(transactions)},
		logging.Field{Key: "categories", Value: len(categories)},
		logging.Field{Key: "total_spending", Value: totalSpending.StringFixed(2)},
	).Debug("Aggregated transactions")

	return Summary{
		Categories:    categories,
		TotalSpending: totalSpending,
		TotalIncome:   totalIncome,
	}
}

// PeriodOf returns the statement date range as ISO dates. An empty list
// yields the empty-string sentinel on both ends.
func PeriodOf(transactions []models.Transaction) models.Period {
	if len(transactions) == 0 {
		return models.Period{Start: "", End: ""}
	}

	start, end := transactions[0].Date, transactions[0].Date
	for _, tx := range transactions[1:] {
		if tx.Date.Before(start) {
			start = tx.Date
		}
		if tx.Date.After(end) {
			end = tx.Date
		}
	}

	return models.Period{
		Start: start.Format(time.RFC3339),
		End:   end.Format(time.RFC3339),
	}
}

// PeriodEnd returns the latest transaction date, used to anchor
// time-windowed comparisons. Zero time when the list is empty.
func PeriodEnd(transactions []models.Transaction) time.Time {
	var end time.Time
	for _, tx := range transactions {
		if tx.Date.After(end) {
			end = tx.Date
		}
	}
	return end
}
