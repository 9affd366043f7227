package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/life_management_app/internal/core/domain"
)

// ExpenseReader defines read operations for expenses
type ExpenseReader interface {
	// FindExpenseByID retrieves a single expense. Returns apperrors.ErrNotFound when missing.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// FindExpensesByUserAndDateRange returns a user's expenses dated within the
	// inclusive [start, end] range. Nil bounds and a nil currency do not filter.
	FindExpensesByUserAndDateRange(ctx context.Context, userID string, start, end *time.Time, currency *domain.Currency) ([]domain.Expense, error)

	// ListExpensesByUser returns one page of a user's expenses, newest first,
	// and the token for the next page (nil on the last page).
	ListExpensesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Expense, *string, error)

	// FindOverdueCandidates returns unpaid, not yet overdue expenses due before asOf.
	FindOverdueCandidates(ctx context.Context, userID string, asOf time.Time) ([]domain.Expense, error)

	// FindRecurringWithoutNextDue returns recurring expenses whose next due date was never computed.
	FindRecurringWithoutNextDue(ctx context.Context, userID string) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expenses
type ExpenseWriter interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
