package finance

import (
	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Symbol returns the display symbol for c. Unknown codes get "£".
func Symbol(c domain.Currency) string {
	switch c {
	case domain.USD:
		return "$"
	case domain.GBP:
		return "£"
	case domain.EUR:
		return "€"
	default:
		return "£"
	}
}

// FormatAmount renders amount with its currency symbol and exactly two decimals.
func FormatAmount(amount decimal.Decimal, c domain.Currency) string {
	return Symbol(c) + amount.StringFixed(2)
}
