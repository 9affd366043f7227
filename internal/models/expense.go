package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a row of the expenses table.
type Expense struct {
	ExpenseID   string          `db:"expense_id"`
	UserID      string          `db:"user_id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Category    string          `db:"category"`
	Amount      decimal.Decimal `db:"amount"`
	Currency    string          `db:"currency"`
	Date        time.Time       `db:"expense_date"`
	IsRecurring bool            `db:"is_recurring"`
	Frequency   *string         `db:"frequency"`
	NextDueDate *time.Time      `db:"next_due_date"`
	PaidAmount  decimal.Decimal `db:"paid_amount"`
	IsPaid      bool            `db:"is_paid"`
	PaidDate    *time.Time      `db:"paid_date"`
	IsOverdue   bool            `db:"is_overdue"`
	DueDate     *time.Time      `db:"due_date"`
	BudgetID    *string         `db:"budget_id"`
	AuditFields
}
