package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/life_management_app/internal/core/domain"
)

// IncomeReader defines read operations for incomes
type IncomeReader interface {
	FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error)
	FindIncomesByUserAndDateRange(ctx context.Context, userID string, start, end *time.Time, currency *domain.Currency) ([]domain.Income, error)
	ListIncomesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Income, *string, error)
	FindRecurringWithoutNextDue(ctx context.Context, userID string) ([]domain.Income, error)
}

// IncomeWriter defines write operations for incomes
type IncomeWriter interface {
	SaveIncome(ctx context.Context, income domain.Income) error
	UpdateIncome(ctx context.Context, income domain.Income) error
	DeleteIncome(ctx context.Context, incomeID string) error
}

// IncomeRepositoryFacade combines all income repository interfaces
type IncomeRepositoryFacade interface {
	IncomeReader
	IncomeWriter
}
