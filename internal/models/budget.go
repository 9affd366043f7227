package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a row of the budgets table.
type Budget struct {
	BudgetID     string          `db:"budget_id"`
	UserID       string          `db:"user_id"`
	Name         string          `db:"name"`
	Category     *string         `db:"category"` // NULL means all categories
	Amount       decimal.Decimal `db:"amount"`
	CurrentSpent decimal.Decimal `db:"current_spent"`
	Currency     string          `db:"currency"`
	Period       string          `db:"period"`
	StartDate    time.Time       `db:"start_date"`
	EndDate      *time.Time      `db:"end_date"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}
