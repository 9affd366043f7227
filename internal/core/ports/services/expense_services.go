package services

import (
	"context"

	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ExpenseReaderSvc defines read operations for expenses
type ExpenseReaderSvc interface {
	GetExpense(ctx context.Context, userID, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, userID string, params dto.ListParams) (*dto.ListExpensesResponse, error)
	// SummarizeExpenses aggregates the user's expenses per currency.
	SummarizeExpenses(ctx context.Context, userID string, params dto.SummaryParams) (map[domain.Currency]domain.ExpenseTotals, error)
}

// ExpenseWriterSvc defines write operations for expenses
type ExpenseWriterSvc interface {
	CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, userID, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}

// ExpenseLedgerSvc defines the payment ledger operations. Each one persists
// the change and then emits a ledger event.
type ExpenseLedgerSvc interface {
	ApplyPayment(ctx context.Context, userID, expenseID string, amount decimal.Decimal) (*domain.Expense, error)
	MarkPaid(ctx context.Context, userID, expenseID string) (*domain.Expense, error)
	MarkUnpaid(ctx context.Context, userID, expenseID string) (*domain.Expense, error)
	MarkOverdue(ctx context.Context, userID, expenseID string) (*domain.Expense, error)
	// FlagOverdue marks every unpaid expense due before now as overdue and
	// returns how many changed.
	FlagOverdue(ctx context.Context, userID string) (int, error)
}

// ExpenseRecurrenceSvc defines the recurring schedule operations
type ExpenseRecurrenceSvc interface {
	// AdvanceRecurrence moves a recurring expense's next due date forward one period.
	AdvanceRecurrence(ctx context.Context, userID, expenseID string) (*domain.Expense, error)
	// RollRecurring fills in missing next due dates and returns how many were set.
	RollRecurring(ctx context.Context, userID string) (int, error)
}

// ExpenseSvcFacade combines all expense service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
	ExpenseLedgerSvc
	ExpenseRecurrenceSvc
}
