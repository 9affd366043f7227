package repositories

import (
	"context"

	"github.com/SscSPs/life_management_app/internal/core/domain"
)

// BudgetReader defines read operations for budgets
type BudgetReader interface {
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// FindBudgetsByUser returns a user's budgets, optionally narrowed to one
	// currency and to active budgets only.
	FindBudgetsByUser(ctx context.Context, userID string, currency *domain.Currency, activeOnly bool) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budgets
type BudgetWriter interface {
	SaveBudget(ctx context.Context, budget domain.Budget) error
	UpdateBudget(ctx context.Context, budget domain.Budget) error
	DeleteBudget(ctx context.Context, budgetID string) error
}

// BudgetRepositoryFacade combines all budget repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
