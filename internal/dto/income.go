package dto

import (
	"time"

	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/core/finance"
	"github.com/shopspring/decimal"
)

// CreateIncomeRequest defines the data needed to record an income.
type CreateIncomeRequest struct {
	Source      string                `json:"source" binding:"required,max=200"`
	Description string                `json:"description" binding:"max=2000"`
	Category    domain.IncomeCategory `json:"category" binding:"required,income_category"`
	Amount      decimal.Decimal       `json:"amount"`
	Currency    domain.Currency       `json:"currency" binding:"required,currency"`
	Date        time.Time             `json:"date"`
	IsRecurring bool                  `json:"isRecurring"`
	Frequency   *domain.Frequency     `json:"frequency" binding:"omitempty,frequency"`
	Taxable     bool                  `json:"taxable"`
}

// UpdateIncomeRequest defines the data allowed for updating an income.
type UpdateIncomeRequest struct {
	Source      *string                `json:"source" binding:"omitempty,max=200"`
	Description *string                `json:"description" binding:"omitempty,max=2000"`
	Category    *domain.IncomeCategory `json:"category" binding:"omitempty,income_category"`
	Amount      *decimal.Decimal       `json:"amount"`
	Currency    *domain.Currency       `json:"currency" binding:"omitempty,currency"`
	Date        *time.Time             `json:"date"`
	IsRecurring *bool                  `json:"isRecurring"`
	Frequency   *domain.Frequency      `json:"frequency" binding:"omitempty,frequency"`
	Taxable     *bool                  `json:"taxable"`
}

// IncomeResponse defines the data returned for an income.
type IncomeResponse struct {
	IncomeID        string                `json:"incomeID"`
	Source          string                `json:"source"`
	Description     string                `json:"description,omitempty"`
	Category        domain.IncomeCategory `json:"category"`
	Amount          decimal.Decimal       `json:"amount"`
	FormattedAmount string                `json:"formattedAmount"`
	Currency        domain.Currency       `json:"currency"`
	Date            time.Time             `json:"date"`
	IsRecurring     bool                  `json:"isRecurring"`
	Frequency       *domain.Frequency     `json:"frequency,omitempty"`
	NextDueDate     *time.Time            `json:"nextDueDate,omitempty"`
	Taxable         bool                  `json:"taxable"`
	CreatedAt       time.Time             `json:"createdAt"`
	LastUpdatedAt   time.Time             `json:"lastUpdatedAt"`
}

func ToIncomeResponse(i *domain.Income) IncomeResponse {
	return IncomeResponse{
		IncomeID:        i.IncomeID,
		Source:          i.Source,
		Description:     i.Description,
		Category:        i.Category,
		Amount:          i.Amount,
		FormattedAmount: finance.FormatAmount(i.Amount, i.Currency),
		Currency:        i.Currency,
		Date:            i.Date,
		IsRecurring:     i.IsRecurring,
		Frequency:       i.Frequency,
		NextDueDate:     i.NextDueDate,
		Taxable:         i.Taxable,
		CreatedAt:       i.CreatedAt,
		LastUpdatedAt:   i.LastUpdatedAt,
	}
}

func ToListIncomeResponse(incomes []domain.Income) []IncomeResponse {
	res := make([]IncomeResponse, len(incomes))
	for i := range incomes {
		res[i] = ToIncomeResponse(&incomes[i])
	}
	return res
}

// ListIncomesResponse wraps one page of incomes.
type ListIncomesResponse struct {
	Incomes   []IncomeResponse `json:"incomes"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// IncomeTotalsResponse is one currency's income aggregate.
type IncomeTotalsResponse struct {
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	Count                int             `json:"count"`
	FormattedTotalAmount string          `json:"formattedTotalAmount"`
}

// IncomeSummaryResponse maps currency code to totals.
type IncomeSummaryResponse struct {
	Totals map[domain.Currency]IncomeTotalsResponse `json:"totals"`
}

func ToIncomeSummaryResponse(totals map[domain.Currency]domain.IncomeTotals) IncomeSummaryResponse {
	out := make(map[domain.Currency]IncomeTotalsResponse, len(totals))
	for c, t := range totals {
		out[c] = IncomeTotalsResponse{
			TotalAmount:          t.TotalAmount,
			Count:                t.Count,
			FormattedTotalAmount: finance.FormatAmount(t.TotalAmount, c),
		}
	}
	return IncomeSummaryResponse{Totals: out}
}
