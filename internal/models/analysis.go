package models

import (
	"github.com/shopspring/decimal"
)

// Category groups the transactions assigned to one spending bucket.
// Amount is the absolute sum of the group's debit amounts; credits stay in
// Transactions but contribute nothing to Amount or Percentage, so an
// all-debit statement's percentages sum to 100.
type Category struct {
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	Percentage   float64         `json:"percentage"`
	Transactions []Transaction   `json:"transactions"`
}

// InsightType classifies an insight for presentation.
type InsightType string

const (
	InsightSpending InsightType = "spending"
	InsightSavings  InsightType = "savings"
	InsightTrend    InsightType = "trend"
	InsightAlert    InsightType = "alert"
)

// Insight is a rule-triggered observation about spending behavior. Icon and
// Color are presentation hints, opaque to the analysis logic.
type Insight struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Color       string      `json:"color"`
	Type        InsightType `json:"type"`
}

// Period is the statement date range in ISO format. Both fields are empty
// strings when the transaction list is empty.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AnalysisResult is the root output of one analysis run.
type AnalysisResult struct {
	TotalSpending decimal.Decimal `json:"totalSpending"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	NetChange     decimal.Decimal `json:"netChange"`
	Categories    []Category      `json:"categories"`
	Insights      []Insight       `json:"insights"`
	Period        Period          `json:"period"`
	Transactions  []Transaction   `json:"transactions"`
}
