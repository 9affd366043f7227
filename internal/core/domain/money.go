package domain

import (
	"strings"
	"time"

	"github.com/SscSPs/life_management_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Currency is one of the supported ISO currency codes. Amounts in different
// currencies are never converted into each other.
type Currency string

const (
	USD Currency = "USD"
	GBP Currency = "GBP"
	EUR Currency = "EUR"
)

// SupportedCurrencies lists every Currency accepted by the application.
var SupportedCurrencies = []Currency{USD, GBP, EUR}

// IsValid reports whether c is a supported currency.
func (c Currency) IsValid() bool {
	switch c {
	case USD, GBP, EUR:
		return true
	default:
		return false
	}
}

// ParseCurrency normalises a currency code and checks it is supported.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !c.IsValid() {
		return "", apperrors.NewValidationError("unsupported currency %q", code)
	}
	return c, nil
}

// Frequency is the repeat interval of a recurring record.
type Frequency string

const (
	Weekly    Frequency = "weekly"
	BiWeekly  Frequency = "bi-weekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

// IsValid reports whether f is a known frequency.
func (f Frequency) IsValid() bool {
	switch f {
	case Weekly, BiWeekly, Monthly, Quarterly, Yearly:
		return true
	default:
		return false
	}
}

// MoneyRecord holds the fields shared by incomes and expenses.
type MoneyRecord struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    Currency        `json:"currency"`
	Date        time.Time       `json:"date"` // Effective / occurrence date
	IsRecurring bool            `json:"isRecurring"`
	Frequency   *Frequency      `json:"frequency,omitempty"`   // Required iff IsRecurring
	NextDueDate *time.Time      `json:"nextDueDate,omitempty"` // Maintained by UpdateNextDueDate
}

// Validate checks the amount, currency and recurrence invariants.
func (m MoneyRecord) Validate() error {
	if !m.Amount.IsPositive() {
		return apperrors.NewValidationError("amount must be greater than zero")
	}
	if !m.Currency.IsValid() {
		return apperrors.NewValidationError("unsupported currency %q", m.Currency)
	}
	if m.Date.IsZero() {
		return apperrors.NewValidationError("date is required")
	}
	if m.IsRecurring {
		if m.Frequency == nil {
			return apperrors.NewValidationError("frequency is required for recurring records")
		}
		if !m.Frequency.IsValid() {
			return apperrors.NewValidationError("unknown frequency %q", *m.Frequency)
		}
	} else if m.Frequency != nil {
		return apperrors.NewValidationError("frequency must not be set on a non-recurring record")
	}
	return nil
}

// ClearRecurrence turns the record into a one-off.
func (m *MoneyRecord) ClearRecurrence() {
	m.IsRecurring = false
	m.Frequency = nil
	m.NextDueDate = nil
}
