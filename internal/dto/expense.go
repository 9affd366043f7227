package dto

import (
	"time"

	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/core/finance"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to create a new expense.
// Amount and date checks happen in the domain so the error reads the same everywhere.
type CreateExpenseRequest struct {
	Title       string                 `json:"title" binding:"required,max=200"`
	Description string                 `json:"description" binding:"max=2000"`
	Category    domain.ExpenseCategory `json:"category" binding:"required,expense_category"`
	Amount      decimal.Decimal        `json:"amount"`
	Currency    domain.Currency        `json:"currency" binding:"required,currency"`
	Date        time.Time              `json:"date"`
	IsRecurring bool                   `json:"isRecurring"`
	Frequency   *domain.Frequency      `json:"frequency" binding:"omitempty,frequency"`
	DueDate     *time.Time             `json:"dueDate"`
	BudgetID    *string                `json:"budgetID"`
	PaidAmount  *decimal.Decimal       `json:"paidAmount"` // Optional opening balance
}

// UpdateExpenseRequest defines the data allowed for updating an expense.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateExpenseRequest struct {
	Title       *string                 `json:"title" binding:"omitempty,max=200"`
	Description *string                 `json:"description" binding:"omitempty,max=2000"`
	Category    *domain.ExpenseCategory `json:"category" binding:"omitempty,expense_category"`
	Amount      *decimal.Decimal        `json:"amount"`
	Currency    *domain.Currency        `json:"currency" binding:"omitempty,currency"`
	Date        *time.Time              `json:"date"`
	IsRecurring *bool                   `json:"isRecurring"`
	Frequency   *domain.Frequency       `json:"frequency" binding:"omitempty,frequency"`
	DueDate     *time.Time              `json:"dueDate"`
	BudgetID    *string                 `json:"budgetID"`
}

// ApplyPaymentRequest records a (partial) payment against an expense.
type ApplyPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ExpenseResponse defines the data returned for an expense, including derived ledger state.
type ExpenseResponse struct {
	ExpenseID         string                 `json:"expenseID"`
	Title             string                 `json:"title"`
	Description       string                 `json:"description,omitempty"`
	Category          domain.ExpenseCategory `json:"category"`
	Amount            decimal.Decimal        `json:"amount"`
	FormattedAmount   string                 `json:"formattedAmount"`
	Currency          domain.Currency        `json:"currency"`
	Date              time.Time              `json:"date"`
	IsRecurring       bool                   `json:"isRecurring"`
	Frequency         *domain.Frequency      `json:"frequency,omitempty"`
	NextDueDate       *time.Time             `json:"nextDueDate,omitempty"`
	PaidAmount        decimal.Decimal        `json:"paidAmount"`
	RemainingBalance  decimal.Decimal        `json:"remainingBalance"`
	PaymentPercentage int                    `json:"paymentPercentage"`
	PaymentStatus     domain.PaymentStatus   `json:"paymentStatus"`
	IsPaid            bool                   `json:"isPaid"`
	PaidDate          *time.Time             `json:"paidDate,omitempty"`
	IsOverdue         bool                   `json:"isOverdue"`
	DueDate           *time.Time             `json:"dueDate,omitempty"`
	BudgetID          *string                `json:"budgetID,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	LastUpdatedAt     time.Time              `json:"lastUpdatedAt"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:         e.ExpenseID,
		Title:             e.Title,
		Description:       e.Description,
		Category:          e.Category,
		Amount:            e.Amount,
		FormattedAmount:   finance.FormatAmount(e.Amount, e.Currency),
		Currency:          e.Currency,
		Date:              e.Date,
		IsRecurring:       e.IsRecurring,
		Frequency:         e.Frequency,
		NextDueDate:       e.NextDueDate,
		PaidAmount:        e.PaidAmount,
		RemainingBalance:  e.RemainingBalance(),
		PaymentPercentage: e.PaymentPercentage(),
		PaymentStatus:     e.PaymentStatus(),
		IsPaid:            e.IsPaid,
		PaidDate:          e.PaidDate,
		IsOverdue:         e.IsOverdue,
		DueDate:           e.DueDate,
		BudgetID:          e.BudgetID,
		CreatedAt:         e.CreatedAt,
		LastUpdatedAt:     e.LastUpdatedAt,
	}
}

// ToListExpenseResponse converts a slice of domain.Expense to a slice of ExpenseResponse DTOs
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}

// ListParams defines query parameters for token-paginated listings.
type ListParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListExpensesResponse wraps one page of expenses.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// SummaryParams are the query parameters shared by the summary endpoints.
// Dates are inclusive and given as YYYY-MM-DD.
type SummaryParams struct {
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02" time_utc:"1"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02" time_utc:"1"`
	Currency  *string    `form:"currency"`
}

// ExpenseTotalsResponse is one currency's expense aggregate.
type ExpenseTotalsResponse struct {
	TotalAmount             decimal.Decimal `json:"totalAmount"`
	TotalPaid               decimal.Decimal `json:"totalPaid"`
	TotalRemaining          decimal.Decimal `json:"totalRemaining"`
	Count                   int             `json:"count"`
	FormattedTotalAmount    string          `json:"formattedTotalAmount"`
	FormattedTotalRemaining string          `json:"formattedTotalRemaining"`
}

// ExpenseSummaryResponse maps currency code to totals.
type ExpenseSummaryResponse struct {
	Totals map[domain.Currency]ExpenseTotalsResponse `json:"totals"`
}

// ToExpenseSummaryResponse converts aggregated expense totals to the response DTO
func ToExpenseSummaryResponse(totals map[domain.Currency]domain.ExpenseTotals) ExpenseSummaryResponse {
	out := make(map[domain.Currency]ExpenseTotalsResponse, len(totals))
	for c, t := range totals {
		out[c] = ExpenseTotalsResponse{
			TotalAmount:             t.TotalAmount,
			TotalPaid:               t.TotalPaid,
			TotalRemaining:          t.TotalRemaining,
			Count:                   t.Count,
			FormattedTotalAmount:    finance.FormatAmount(t.TotalAmount, c),
			FormattedTotalRemaining: finance.FormatAmount(t.TotalRemaining, c),
		}
	}
	return ExpenseSummaryResponse{Totals: out}
}

// RollForwardResponse reports how many recurring records had their next due date filled in.
type RollForwardResponse struct {
	Updated int `json:"updated"`
}

// FlagOverdueResponse reports how many expenses were newly flagged overdue.
type FlagOverdueResponse struct {
	Flagged int `json:"flagged"`
}
