package domain

import (
	"time"

	"github.com/SscSPs/life_management_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies an expense.
type ExpenseCategory string

const (
	ExpenseHousing        ExpenseCategory = "housing"
	ExpenseUtilities      ExpenseCategory = "utilities"
	ExpenseFood           ExpenseCategory = "food"
	ExpenseTransportation ExpenseCategory = "transportation"
	ExpenseHealthcare     ExpenseCategory = "healthcare"
	ExpenseInsurance      ExpenseCategory = "insurance"
	ExpenseEntertainment  ExpenseCategory = "entertainment"
	ExpenseShopping       ExpenseCategory = "shopping"
	ExpenseEducation      ExpenseCategory = "education"
	ExpenseDebt           ExpenseCategory = "debt"
	ExpenseSavings        ExpenseCategory = "savings"
	ExpenseOther          ExpenseCategory = "other"
)

func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseHousing, ExpenseUtilities, ExpenseFood, ExpenseTransportation,
		ExpenseHealthcare, ExpenseInsurance, ExpenseEntertainment, ExpenseShopping,
		ExpenseEducation, ExpenseDebt, ExpenseSavings, ExpenseOther:
		return true
	default:
		return false
	}
}

// PaymentStatus is derived from the paid percentage and the overdue flag.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "paid"
	StatusPartial PaymentStatus = "partial"
	StatusOverdue PaymentStatus = "overdue"
	StatusUnpaid  PaymentStatus = "unpaid"
)

// Expense is an outgoing money record with a payment ledger.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	UserID      string          `json:"userID"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    ExpenseCategory `json:"category"`
	MoneyRecord
	PaidAmount decimal.Decimal `json:"paidAmount"`
	IsPaid     bool            `json:"isPaid"`
	PaidDate   *time.Time      `json:"paidDate,omitempty"`
	IsOverdue  bool            `json:"isOverdue"`
	DueDate    *time.Time      `json:"dueDate,omitempty"`
	BudgetID   *string         `json:"budgetID,omitempty"`
	AuditFields
}

// Validate checks the record and ledger invariants.
func (e Expense) Validate() error {
	if e.Title == "" {
		return apperrors.NewValidationError("title is required")
	}
	if !e.Category.IsValid() {
		return apperrors.NewValidationError("unknown expense category %q", e.Category)
	}
	if err := e.MoneyRecord.Validate(); err != nil {
		return err
	}
	if e.PaidAmount.IsNegative() {
		return apperrors.NewValidationError("paid amount must not be negative")
	}
	if e.PaidAmount.GreaterThan(e.Amount) {
		return apperrors.NewValidationError("paid amount %s exceeds total %s", e.PaidAmount, e.Amount)
	}
	return nil
}

// RemainingBalance is the unpaid part of the expense.
func (e Expense) RemainingBalance() decimal.Decimal {
	return e.Amount.Sub(e.PaidAmount)
}

// PaymentPercentage is paid/amount as a whole percentage, rounded half away from zero.
func (e Expense) PaymentPercentage() int {
	if !e.Amount.IsPositive() {
		return 0
	}
	return int(e.PaidAmount.Div(e.Amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// PaymentStatus reports the current status of the expense.
func (e Expense) PaymentStatus() PaymentStatus {
	return DerivePaymentStatus(e.PaymentPercentage(), e.IsOverdue)
}

// DerivePaymentStatus applies the precedence paid > partial > overdue > unpaid.
// A partially paid overdue expense reports partial.
func DerivePaymentStatus(percentage int, overdue bool) PaymentStatus {
	switch {
	case percentage >= 100:
		return StatusPaid
	case percentage > 0:
		return StatusPartial
	case overdue:
		return StatusOverdue
	default:
		return StatusUnpaid
	}
}

// ApplyPayment records a payment of amount. A negative amount or one that
// would push the paid total past the expense amount is rejected and the
// expense is left unchanged.
func (e *Expense) ApplyPayment(amount decimal.Decimal, now time.Time) error {
	if amount.IsNegative() {
		return apperrors.NewValidationError("payment amount must not be negative")
	}
	newPaid := e.PaidAmount.Add(amount)
	if newPaid.GreaterThan(e.Amount) {
		return apperrors.NewValidationError("payment of %s exceeds remaining balance %s",
			amount.StringFixed(2), e.RemainingBalance().StringFixed(2))
	}
	e.PaidAmount = newPaid
	e.RecomputeDerived(now)
	return nil
}

// MarkFullyPaid settles the remaining balance.
func (e *Expense) MarkFullyPaid(now time.Time) {
	e.PaidAmount = e.Amount
	e.RecomputeDerived(now)
}

// MarkUnpaid resets the ledger. The overdue flag is kept.
func (e *Expense) MarkUnpaid() {
	e.PaidAmount = decimal.Zero
	e.IsPaid = false
	e.PaidDate = nil
}

func (e *Expense) MarkOverdue() {
	e.IsOverdue = true
}

// RecomputeDerived re-derives IsPaid and PaidDate from PaidAmount and flags
// the expense overdue when it is unpaid past its due date. It never clears an
// overdue flag on an unpaid expense.
func (e *Expense) RecomputeDerived(now time.Time) {
	if e.PaidAmount.GreaterThanOrEqual(e.Amount) && e.Amount.IsPositive() {
		e.IsPaid = true
		e.IsOverdue = false
		if e.PaidDate == nil {
			paidAt := now
			e.PaidDate = &paidAt
		}
		return
	}

	e.IsPaid = false
	e.PaidDate = nil
	if e.DueDate != nil && e.DueDate.Before(now) {
		e.IsOverdue = true
	}
}
