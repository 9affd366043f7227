package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseTotals aggregates expenses of a single currency.
type ExpenseTotals struct {
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	TotalRemaining decimal.Decimal `json:"totalRemaining"`
	Count          int             `json:"count"`
}

// IncomeTotals aggregates incomes of a single currency.
type IncomeTotals struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int             `json:"count"`
}

// BudgetTotals aggregates budgets of a single currency.
type BudgetTotals struct {
	TotalAllocated decimal.Decimal `json:"totalAllocated"`
	TotalSpent     decimal.Decimal `json:"totalSpent"`
	TotalRemaining decimal.Decimal `json:"totalRemaining"`
	Count          int             `json:"count"`
}

// HealthTier is the qualitative band of a composite health score.
type HealthTier string

const (
	TierExcellent HealthTier = "Excellent"
	TierGood      HealthTier = "Good"
	TierFair      HealthTier = "Fair"
	TierPoor      HealthTier = "Poor"
	TierCritical  HealthTier = "Critical"
)

// HealthScores holds the five sub-scores, each in [0,100].
type HealthScores struct {
	SavingsRate       int `json:"savingsRate"`
	BudgetControl     int `json:"budgetControl"`
	PaymentDiscipline int `json:"paymentDiscipline"`
	EmergencyFund     int `json:"emergencyFund"`
	CashFlow          int `json:"cashFlow"`
}

// HealthMetrics are the raw ratios the sub-scores are read from.
type HealthMetrics struct {
	SavingsRate     decimal.Decimal `json:"savingsRate"`
	BudgetAdherence decimal.Decimal `json:"budgetAdherence"`
	PaymentRate     decimal.Decimal `json:"paymentRate"`
	// EmergencyFundMonths is nil when there are no expenses and a positive net,
	// i.e. the fund covers an unbounded number of months.
	EmergencyFundMonths *decimal.Decimal `json:"emergencyFundMonths"`
	CashFlowRatio       decimal.Decimal  `json:"cashFlowRatio"`
}

// PeriodTotals is the single-currency input to the health scorer.
type PeriodTotals struct {
	Income          decimal.Decimal `json:"income"`
	Expenses        decimal.Decimal `json:"expenses"`
	Paid            decimal.Decimal `json:"paid"`
	BudgetAllocated decimal.Decimal `json:"budgetAllocated"`
	BudgetSpent     decimal.Decimal `json:"budgetSpent"`
	WindowMonths    int             `json:"windowMonths"`
}

func (t PeriodTotals) NetBalance() decimal.Decimal {
	return t.Income.Sub(t.Expenses)
}

// HealthReport is the scorer output for one currency.
type HealthReport struct {
	Currency        Currency      `json:"currency"`
	TotalScore      int           `json:"totalScore"`
	Scores          HealthScores  `json:"scores"`
	Metrics         HealthMetrics `json:"metrics"`
	HealthLevel     HealthTier    `json:"healthLevel"`
	Recommendations []string      `json:"recommendations"`
	Totals          PeriodTotals  `json:"totals"`
}

// FinancialOverview is the per-user result of aggregation and scoring over a window.
type FinancialOverview struct {
	From             time.Time                  `json:"from"`
	To               time.Time                  `json:"to"`
	WindowMonths     int                        `json:"windowMonths"`
	PrimaryCurrency  Currency                   `json:"primaryCurrency"`
	Health           HealthReport               `json:"health"`
	HealthByCurrency map[Currency]HealthReport  `json:"healthByCurrency"`
	Expenses         map[Currency]ExpenseTotals `json:"expenses"`
	Incomes          map[Currency]IncomeTotals  `json:"incomes"`
	Budgets          map[Currency]BudgetTotals  `json:"budgets"`
	Degraded         []string                   `json:"degraded,omitempty"`
}
