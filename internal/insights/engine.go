// Package insights derives qualitative observations from aggregated
// spending data using a fixed battery of threshold rules.
package insights

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kolade082/ksavers/internal/logging"
	"github.com/kolade082/ksavers/internal/models"
)

// Rule thresholds. Percentages are whole numbers, rates are fractions,
// amounts are dollars.
const (
	highFoodSpendingPct      = 25.0
	lowSavingsRate           = 0.20
	highEntertainmentPct     = 15.0
	largePurchaseAmount      = 500
	frequentSmallPurchases   = 15
	smallPurchaseAmount      = 5
	unusualSpendingChangePct = 20.0
	excellentSavingsRate     = 0.30
	trendWindowDays          = 14
)

// Input carries everything the rule battery reads. All fields are
// read-only to the engine.
type Input struct {
	Transactions  []models.Transaction
	Categories    []models.Category
	TotalSpending decimal.Decimal
	TotalIncome   decimal.Decimal
}

// rule evaluates one threshold check, returning nil when it does not fire.
type rule func(in Input) *models.Insight

// Engine applies the rule battery in declared order and concatenates the
// results. Rules are independent: several may fire on the same data and
// nothing is deduplicated or suppressed. The engine is pure, so repeated
// runs over the same input produce identical output.
type Engine struct {
	rules  []rule
	logger logging.Logger
}

// New creates an Engine with the standard rule battery.
func New(logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Engine{
		rules: []rule{
			highFoodSpending,
			lowSavings,
			highEntertainment,
			largePurchases,
			smallPurchases,
			spendingSwing,
			excellentSavings,
		},
		logger: logger,
	}
}

// Generate runs every rule against the input. An empty transaction list
// yields an empty insight list; no rule fires on zero data.
func (e *Engine) Generate(in Input) []models.Insight {
	insights := make([]models.Insight, 0, len(e.rules))

	if len(in.Transactions) == 0 {
		return insights
	}

	for _, r := range e.rules {
		if insight := r(in); insight != nil {
			insights = append(insights, *insight)
		}
	}

	e.logger.WithField("count", len(insights)).Debug("Generated insights")
	return insights
}

func findCategory(categories []models.Category, name string) *models.Category {
	for i := range categories {
		if categories[i].Name == name {
			return &categories[i]
		}
	}
	return nil
}

func roundPct(pct float64) int {
	return int(math.Round(pct))
}

func roundAmount(amount decimal.Decimal) int {
	f, _ := amount.Float64()
	return int(math.Round(f))
}

// savingsRate returns the fraction of income kept, and false when income is
// zero: a rate over no income is meaningless, so both savings rules skip.
func savingsRate(in Input) (float64, bool) {
	if !in.TotalIncome.IsPositive() {
		return 0, false
	}
	rate, _ := in.TotalIncome.Sub(in.TotalSpending).Div(in.TotalIncome).Float64()
	return rate, true
}

func highFoodSpending(in Input) *models.Insight {
	food := findCategory(in.Categories, "Food & Dining")
	if food == nil || food.Percentage <= highFoodSpendingPct {
		return nil
	}
	return &models.Insight{
		Title: "High Food Spending",
		Description: fmt.Sprintf(
			"Your food spending is %d%% of your total spending. Consider meal planning or reducing takeout orders.",
			roundPct(food.Percentage)),
		Icon:  "restaurant-menu",
		Color: "#FF6B6B",
		Type:  models.InsightAlert,
	}
}

func lowSavings(in Input) *models.Insight {
	rate, ok := savingsRate(in)
	if !ok || rate >= lowSavingsRate {
		return nil
	}
	return &models.Insight{
		Title: "Low Savings Rate",
		Description: fmt.Sprintf(
			"Your current savings rate is %d%%. Try to save at least 20%% of your income.",
			roundPct(rate*100)),
		Icon:  "account-balance",
		Color: "#4CAF50",
		Type:  models.InsightSavings,
	}
}

func highEntertainment(in Input) *models.Insight {
	entertainment := findCategory(in.Categories, "Entertainment")
	if entertainment == nil || entertainment.Percentage <= highEntertainmentPct {
		return nil
	}
	return &models.Insight{
		Title: "High Entertainment Spending",
		Description: fmt.Sprintf(
			"Your entertainment spending is %d%% of your total spending. Look for free or low-cost alternatives.",
			roundPct(entertainment.Percentage)),
		Icon:  "movie",
		Color: "#FF9800",
		Type:  models.InsightAlert,
	}
}

func largePurchases(in Input) *models.Insight {
	threshold := decimal.NewFromInt(largePurchaseAmount)
	count := 0
	total := decimal.Zero
	for _, tx := range in.Transactions {
		if tx.IsDebit() && tx.Amount.Abs().GreaterThan(threshold) {
			count++
			total = total.Add(tx.Amount.Abs())
		}
	}
	if count == 0 {
		return nil
	}
	return &models.Insight{
		Title: "Large Purchases Detected",
		Description: fmt.Sprintf(
			"You made %d purchases over $%d, totaling $%d.",
			count, largePurchaseAmount, roundAmount(total)),
		Icon:  "warning",
		Color: "#FFC107",
		Type:  models.InsightAlert,
	}
}

func smallPurchases(in Input) *models.Insight {
	threshold := decimal.NewFromInt(smallPurchaseAmount)
	count := 0
	total := decimal.Zero
	for _, tx := range in.Transactions {
		if tx.IsDebit() && tx.Amount.Abs().LessThan(threshold) {
			count++
			total = total.Add(tx.Amount.Abs())
		}
	}
	if count <= frequentSmallPurchases {
		return nil
	}
	return &models.Insight{
		Title: "Frequent Small Purchases",
		Description: fmt.Sprintf(
			"You made %d purchases under $%d, totaling $%d. These can add up quickly!",
			count, smallPurchaseAmount, roundAmount(total)),
		Icon:  "shopping-cart",
		Color: "#9C27B0",
		Type:  models.InsightSpending,
	}
}

// spendingSwing compares the most recent 14 days of debits against the 14
// days before that. Windows are anchored at the statement period end, not
// the wall clock, so a re-run over the same statement is deterministic.
// With no spending in the earlier window the rule is skipped.
func spendingSwing(in Input) *models.Insight {
	end := periodEnd(in.Transactions)
	if end.IsZero() {
		return nil
	}

	recentCutoff := end.AddDate(0, 0, -trendWindowDays)
	previousCutoff := end.AddDate(0, 0, -2*trendWindowDays)

	recent := decimal.Zero
	previous := decimal.Zero
	for _, tx := range in.Transactions {
		if !tx.IsDebit() {
			continue
		}
		switch {
		case tx.Date.After(recentCutoff):
			recent = recent.Add(tx.Amount.Abs())
		case tx.Date.After(previousCutoff):
			previous = previous.Add(tx.Amount.Abs())
		}
	}

	if !previous.IsPositive() {
		return nil
	}

	change, _ := recent.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
	if math.Abs(change) <= unusualSpendingChangePct {
		return nil
	}

	title := "Spending Decreased"
	direction := "decreased"
	icon := "trending-down"
	color := "#4CAF50"
	if change > 0 {
		title = "Spending Increased"
		direction = "increased"
		icon = "trending-up"
		color = "#F44336"
	}

	magnitude := roundPct(change)
	if magnitude < 0 {
		magnitude = -magnitude
	}

	return &models.Insight{
		Title: title,
		Description: fmt.Sprintf(
			"Your spending has %s by %d%% compared to the previous period.",
			direction, magnitude),
		Icon:  icon,
		Color: color,
		Type:  models.InsightTrend,
	}
}

func excellentSavings(in Input) *models.Insight {
	rate, ok := savingsRate(in)
	if !ok || rate < excellentSavingsRate {
		return nil
	}
	return &models.Insight{
		Title: "Excellent Savings Rate",
		Description: fmt.Sprintf(
			"You're saving %d%% of your income! Keep up the great work!",
			roundPct(rate*100)),
		Icon:  "star",
		Color: "#FFD700",
		Type:  models.InsightSavings,
	}
}

func periodEnd(transactions []models.Transaction) time.Time {
	var end time.Time
	for _, tx := range transactions {
		if tx.Date.After(end) {
			end = tx.Date
		}
	}
	return end
}
