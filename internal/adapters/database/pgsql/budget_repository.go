package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/life_management_app/internal/apperrors"
	"github.com/SscSPs/life_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/life_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/life_management_app/internal/models"
	"github.com/SscSPs/life_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetColumns = `budget_id, user_id, name, category, amount, current_spent, currency, period,
	start_date, end_date, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func scanBudget(row pgx.Row) (models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.UserID,
		&m.Name,
		&m.Category,
		&m.Amount,
		&m.CurrentSpent,
		&m.Currency,
		&m.Period,
		&m.StartDate,
		&m.EndDate,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := "SELECT " + budgetColumns + " FROM budgets WHERE budget_id = $1;"
	m, err := scanBudget(r.Pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("budget", budgetID)
		}
		return nil, fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}
	budget := mapping.ToDomainBudget(m)
	return &budget, nil
}

func (r *PgxBudgetRepository) FindBudgetsByUser(ctx context.Context, userID string, currency *domain.Currency, activeOnly bool) ([]domain.Budget, error) {
	query := "SELECT " + budgetColumns + " FROM budgets WHERE user_id = $1"
	args := []any{userID}
	if currency != nil {
		args = append(args, string(*currency))
		query += fmt.Sprintf(" AND currency = $%d", len(args))
	}
	if activeOnly {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY start_date DESC, name;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets for user %s: %w", userID, err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, mapping.ToDomainBudget(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", err)
	}
	return budgets, nil
}

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := "INSERT INTO budgets (" + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`
	_, err := r.Pool.Exec(ctx, query,
		m.BudgetID, m.UserID, m.Name, m.Category, m.Amount, m.CurrentSpent, m.Currency, m.Period,
		m.StartDate, m.EndDate, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: budget %s", apperrors.ErrDuplicate, budget.BudgetID)
		}
		return fmt.Errorf("failed to save budget: %w", err)
	}
	return nil
}

func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		UPDATE budgets SET
			name = $1, category = $2, amount = $3, current_spent = $4, currency = $5, period = $6,
			start_date = $7, end_date = $8, is_active = $9, last_updated_at = $10, last_updated_by = $11
		WHERE budget_id = $12;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name, m.Category, m.Amount, m.CurrentSpent, m.Currency, m.Period,
		m.StartDate, m.EndDate, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
		m.BudgetID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget %s: %w", budget.BudgetID, err)
	}
	return expectOneRow(tag, "budget", budget.BudgetID)
}

// DeleteBudget removes the budget; linked expenses are unlinked by the foreign key.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	tag, err := r.Pool.Exec(ctx, "DELETE FROM budgets WHERE budget_id = $1;", budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	return expectOneRow(tag, "budget", budgetID)
}
