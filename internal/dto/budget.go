package dto

import (
	"time"

	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/core/finance"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a budget.
type CreateBudgetRequest struct {
	Name      string                 `json:"name" binding:"required,max=200"`
	Category  domain.ExpenseCategory `json:"category" binding:"omitempty,expense_category"`
	Amount    decimal.Decimal        `json:"amount"`
	Currency  domain.Currency        `json:"currency" binding:"required,currency"`
	Period    domain.BudgetPeriod    `json:"period" binding:"required,budget_period"`
	StartDate time.Time              `json:"startDate"`
	EndDate   *time.Time             `json:"endDate"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
type UpdateBudgetRequest struct {
	Name      *string                 `json:"name" binding:"omitempty,max=200"`
	Category  *domain.ExpenseCategory `json:"category" binding:"omitempty,expense_category"`
	Amount    *decimal.Decimal        `json:"amount"`
	Period    *domain.BudgetPeriod    `json:"period" binding:"omitempty,budget_period"`
	StartDate *time.Time              `json:"startDate"`
	EndDate   *time.Time              `json:"endDate"`
	IsActive  *bool                   `json:"isActive"`
}

// RecordSpendRequest adjusts a budget's spent amount. Negative values refund.
type RecordSpendRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID        string                 `json:"budgetID"`
	Name            string                 `json:"name"`
	Category        domain.ExpenseCategory `json:"category,omitempty"`
	Amount          decimal.Decimal        `json:"amount"`
	CurrentSpent    decimal.Decimal        `json:"currentSpent"`
	Remaining       decimal.Decimal        `json:"remaining"`
	UsagePercentage int                    `json:"usagePercentage"`
	IsOverBudget    bool                   `json:"isOverBudget"`
	FormattedAmount string                 `json:"formattedAmount"`
	Currency        domain.Currency        `json:"currency"`
	Period          domain.BudgetPeriod    `json:"period"`
	StartDate       time.Time              `json:"startDate"`
	EndDate         *time.Time             `json:"endDate,omitempty"`
	IsActive        bool                   `json:"isActive"`
	CreatedAt       time.Time              `json:"createdAt"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
}

func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:        b.BudgetID,
		Name:            b.Name,
		Category:        b.Category,
		Amount:          b.Amount,
		CurrentSpent:    b.CurrentSpent,
		Remaining:       b.Remaining(),
		UsagePercentage: b.UsagePercentage(),
		IsOverBudget:    b.IsOverBudget(),
		FormattedAmount: finance.FormatAmount(b.Amount, b.Currency),
		Currency:        b.Currency,
		Period:          b.Period,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		IsActive:        b.IsActive,
		CreatedAt:       b.CreatedAt,
		LastUpdatedAt:   b.LastUpdatedAt,
	}
}

func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		res[i] = ToBudgetResponse(&budgets[i])
	}
	return res
}

// ListBudgetsParams defines query parameters for listing budgets.
type ListBudgetsParams struct {
	Currency   *string `form:"currency"`
	ActiveOnly bool    `form:"activeOnly,default=false"`
}

// ListBudgetsResponse wraps the list of budgets.
type ListBudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}
