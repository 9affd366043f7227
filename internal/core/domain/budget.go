package domain

import (
	"time"

	"github.com/SscSPs/life_management_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// BudgetPeriod is the span a budget allocation covers.
type BudgetPeriod string

const (
	PeriodWeekly    BudgetPeriod = "weekly"
	PeriodMonthly   BudgetPeriod = "monthly"
	PeriodQuarterly BudgetPeriod = "quarterly"
	PeriodYearly    BudgetPeriod = "yearly"
)

func (p BudgetPeriod) IsValid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	default:
		return false
	}
}

// Budget is a spending target for a period, optionally tied to one expense category.
type Budget struct {
	BudgetID     string          `json:"budgetID"`
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	Category     ExpenseCategory `json:"category,omitempty"`
	Amount       decimal.Decimal `json:"amount"` // Allocated
	CurrentSpent decimal.Decimal `json:"currentSpent"`
	Currency     Currency        `json:"currency"`
	Period       BudgetPeriod    `json:"period"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      *time.Time      `json:"endDate,omitempty"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

func (b Budget) Validate() error {
	if b.Name == "" {
		return apperrors.NewValidationError("name is required")
	}
	if !b.Amount.IsPositive() {
		return apperrors.NewValidationError("budget amount must be greater than zero")
	}
	if b.CurrentSpent.IsNegative() {
		return apperrors.NewValidationError("current spent must not be negative")
	}
	if !b.Currency.IsValid() {
		return apperrors.NewValidationError("unsupported currency %q", b.Currency)
	}
	if !b.Period.IsValid() {
		return apperrors.NewValidationError("unknown budget period %q", b.Period)
	}
	if b.Category != "" && !b.Category.IsValid() {
		return apperrors.NewValidationError("unknown expense category %q", b.Category)
	}
	if b.StartDate.IsZero() {
		return apperrors.NewValidationError("start date is required")
	}
	if b.EndDate != nil && b.EndDate.Before(b.StartDate) {
		return apperrors.NewValidationError("end date must not be before start date")
	}
	return nil
}

// Remaining may be negative when the budget is overspent.
func (b Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.CurrentSpent)
}

// UsagePercentage is spent/allocated as a whole percentage. It can exceed 100.
func (b Budget) UsagePercentage() int {
	if !b.Amount.IsPositive() {
		return 0
	}
	return int(b.CurrentSpent.Div(b.Amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

func (b Budget) IsOverBudget() bool {
	return b.CurrentSpent.GreaterThan(b.Amount)
}

// AddSpending adjusts CurrentSpent by delta. A negative delta refunds spend but
// may not take it below zero.
func (b *Budget) AddSpending(delta decimal.Decimal) error {
	next := b.CurrentSpent.Add(delta)
	if next.IsNegative() {
		return apperrors.NewValidationError("spending adjustment of %s would make spent negative", delta.StringFixed(2))
	}
	b.CurrentSpent = next
	return nil
}
