package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEventType names a change to an expense's payment ledger.
type LedgerEventType string

const (
	EventPaymentApplied LedgerEventType = "expense.payment_applied"
	EventExpensePaid    LedgerEventType = "expense.paid"
	EventExpenseUnpaid  LedgerEventType = "expense.unpaid"
	EventExpenseOverdue LedgerEventType = "expense.overdue"
)

// LedgerEvent is emitted after a ledger change has been persisted.
type LedgerEvent struct {
	EventID    string          `json:"eventID"`
	Type       LedgerEventType `json:"type"`
	ExpenseID  string          `json:"expenseID"`
	UserID     string          `json:"userID"`
	Currency   Currency        `json:"currency"`
	Amount     decimal.Decimal `json:"amount"` // Payment amount for payment_applied, otherwise the expense total
	PaidAmount decimal.Decimal `json:"paidAmount"`
	Status     PaymentStatus   `json:"status"`
	OccurredAt time.Time       `json:"occurredAt"`
}
