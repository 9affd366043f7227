package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/life_management_app/internal/apperrors"
	"github.com/SscSPs/life_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/life_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/life_management_app/internal/models"
	"github.com/SscSPs/life_management_app/internal/utils/mapping"
	"github.com/SscSPs/life_management_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expenseColumns = `expense_id, user_id, title, description, category, amount, currency, expense_date,
	is_recurring, frequency, next_due_date, paid_amount, is_paid, paid_date, is_overdue, due_date, budget_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) *PgxExpenseRepository {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.UserID,
		&m.Title,
		&m.Description,
		&m.Category,
		&m.Amount,
		&m.Currency,
		&m.Date,
		&m.IsRecurring,
		&m.Frequency,
		&m.NextDueDate,
		&m.PaidAmount,
		&m.IsPaid,
		&m.PaidDate,
		&m.IsOverdue,
		&m.DueDate,
		&m.BudgetID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxExpenseRepository) queryExpenses(ctx context.Context, query string, args ...any) ([]domain.Expense, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var out []models.Expense
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return mapping.ToDomainExpenses(out), nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := "SELECT " + expenseColumns + " FROM expenses WHERE expense_id = $1;"
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("expense", expenseID)
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	expense := mapping.ToDomainExpense(m)
	return &expense, nil
}

func (r *PgxExpenseRepository) FindExpensesByUserAndDateRange(ctx context.Context, userID string, start, end *time.Time, currency *domain.Currency) ([]domain.Expense, error) {
	filter, args := dateRangeClause([]any{userID}, "expense_date", start, end, currency)
	query := "SELECT " + expenseColumns + " FROM expenses WHERE user_id = $1" + filter +
		" ORDER BY expense_date DESC, created_at DESC;"
	return r.queryExpenses(ctx, query, args...)
}

// ListExpensesByUser pages newest first. One extra row is fetched to tell whether a next page exists.
func (r *PgxExpenseRepository) ListExpensesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	cursor, args, err := keysetClause([]any{userID}, nextToken, "expense_date", "expense_id")
	if err != nil {
		return nil, nil, err
	}
	limitSQL, args := limitClause(args, fetchLimit)
	query := "SELECT " + expenseColumns + " FROM expenses WHERE user_id = $1" + cursor +
		" ORDER BY expense_date DESC, created_at DESC, expense_id DESC" + limitSQL + ";"

	expenses, err := r.queryExpenses(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(expenses) > limit {
		expenses = expenses[:limit]
		last := expenses[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, ID: last.ExpenseID})
		next = &token
	}
	return expenses, next, nil
}

func (r *PgxExpenseRepository) FindOverdueCandidates(ctx context.Context, userID string, asOf time.Time) ([]domain.Expense, error) {
	query := "SELECT " + expenseColumns + ` FROM expenses
		WHERE user_id = $1 AND is_paid = FALSE AND is_overdue = FALSE AND due_date IS NOT NULL AND due_date < $2
		ORDER BY due_date;`
	return r.queryExpenses(ctx, query, userID, asOf)
}

func (r *PgxExpenseRepository) FindRecurringWithoutNextDue(ctx context.Context, userID string) ([]domain.Expense, error) {
	query := "SELECT " + expenseColumns + ` FROM expenses
		WHERE user_id = $1 AND is_recurring = TRUE AND frequency IS NOT NULL AND next_due_date IS NULL;`
	return r.queryExpenses(ctx, query, userID)
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := "INSERT INTO expenses (" + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID, m.UserID, m.Title, m.Description, m.Category, m.Amount, m.Currency, m.Date,
		m.IsRecurring, m.Frequency, m.NextDueDate, m.PaidAmount, m.IsPaid, m.PaidDate, m.IsOverdue, m.DueDate, m.BudgetID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: expense %s", apperrors.ErrDuplicate, expense.ExpenseID)
		}
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses SET
			title = $1, description = $2, category = $3, amount = $4, currency = $5, expense_date = $6,
			is_recurring = $7, frequency = $8, next_due_date = $9, paid_amount = $10, is_paid = $11,
			paid_date = $12, is_overdue = $13, due_date = $14, budget_id = $15,
			last_updated_at = $16, last_updated_by = $17
		WHERE expense_id = $18;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Title, m.Description, m.Category, m.Amount, m.Currency, m.Date,
		m.IsRecurring, m.Frequency, m.NextDueDate, m.PaidAmount, m.IsPaid,
		m.PaidDate, m.IsOverdue, m.DueDate, m.BudgetID,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.ExpenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", expense.ExpenseID, err)
	}
	return expectOneRow(tag, "expense", expense.ExpenseID)
}

func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	tag, err := r.Pool.Exec(ctx, "DELETE FROM expenses WHERE expense_id = $1;", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	return expectOneRow(tag, "expense", expenseID)
}
