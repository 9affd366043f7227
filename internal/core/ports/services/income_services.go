package services

import (
	"context"

	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/dto"
)

// IncomeReaderSvc defines read operations for incomes
type IncomeReaderSvc interface {
	GetIncome(ctx context.Context, userID, incomeID string) (*domain.Income, error)
	ListIncomes(ctx context.Context, userID string, params dto.ListParams) (*dto.ListIncomesResponse, error)
	SummarizeIncomes(ctx context.Context, userID string, params dto.SummaryParams) (map[domain.Currency]domain.IncomeTotals, error)
}

// IncomeWriterSvc defines write operations for incomes
type IncomeWriterSvc interface {
	CreateIncome(ctx context.Context, userID string, req dto.CreateIncomeRequest) (*domain.Income, error)
	UpdateIncome(ctx context.Context, userID, incomeID string, req dto.UpdateIncomeRequest) (*domain.Income, error)
	DeleteIncome(ctx context.Context, userID, incomeID string) error
}

// IncomeRecurrenceSvc defines the recurring schedule operations
type IncomeRecurrenceSvc interface {
	AdvanceRecurrence(ctx context.Context, userID, incomeID string) (*domain.Income, error)
	RollRecurring(ctx context.Context, userID string) (int, error)
}

// IncomeSvcFacade combines all income service interfaces
type IncomeSvcFacade interface {
	IncomeReaderSvc
	IncomeWriterSvc
	IncomeRecurrenceSvc
}
