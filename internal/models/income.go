package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income is a row of the incomes table.
type Income struct {
	IncomeID    string          `db:"income_id"`
	UserID      string          `db:"user_id"`
	Source      string          `db:"source"`
	Description string          `db:"description"`
	Category    string          `db:"category"`
	Amount      decimal.Decimal `db:"amount"`
	Currency    string          `db:"currency"`
	Date        time.Time       `db:"income_date"`
	IsRecurring bool            `db:"is_recurring"`
	Frequency   *string         `db:"frequency"`
	NextDueDate *time.Time      `db:"next_due_date"`
	Taxable     bool            `db:"taxable"`
	AuditFields
}
