package services

import (
	"context"

	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/dto"
	"github.com/shopspring/decimal"
)

// BudgetReaderSvc defines read operations for budgets
type BudgetReaderSvc interface {
	GetBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, userID string, params dto.ListBudgetsParams) ([]domain.Budget, error)
}

// BudgetWriterSvc defines write operations for budgets
type BudgetWriterSvc interface {
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error)
	UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, userID, budgetID string) error
	// RecordSpend adjusts the budget's spent amount by delta.
	RecordSpend(ctx context.Context, userID, budgetID string, delta decimal.Decimal) (*domain.Budget, error)
}

// BudgetSvcFacade combines all budget service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
