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

const incomeColumns = `income_id, user_id, source, description, category, amount, currency, income_date,
	is_recurring, frequency, next_due_date, taxable, created_at, created_by, last_updated_at, last_updated_by`

type PgxIncomeRepository struct {
	BaseRepository
}

func newPgxIncomeRepository(pool *pgxpool.Pool) *PgxIncomeRepository {
	return &PgxIncomeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.IncomeRepositoryFacade = (*PgxIncomeRepository)(nil)

func scanIncome(row pgx.Row) (models.Income, error) {
	var m models.Income
	err := row.Scan(
		&m.IncomeID,
		&m.UserID,
		&m.Source,
		&m.Description,
		&m.Category,
		&m.Amount,
		&m.Currency,
		&m.Date,
		&m.IsRecurring,
		&m.Frequency,
		&m.NextDueDate,
		&m.Taxable,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxIncomeRepository) queryIncomes(ctx context.Context, query string, args ...any) ([]domain.Income, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incomes: %w", err)
	}
	defer rows.Close()

	var out []models.Income
	for rows.Next() {
		m, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating income rows: %w", err)
	}
	return mapping.ToDomainIncomes(out), nil
}

func (r *PgxIncomeRepository) FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	query := "SELECT " + incomeColumns + " FROM incomes WHERE income_id = $1;"
	m, err := scanIncome(r.Pool.QueryRow(ctx, query, incomeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("income", incomeID)
		}
		return nil, fmt.Errorf("failed to find income %s: %w", incomeID, err)
	}
	income := mapping.ToDomainIncome(m)
	return &income, nil
}

func (r *PgxIncomeRepository) FindIncomesByUserAndDateRange(ctx context.Context, userID string, start, end *time.Time, currency *domain.Currency) ([]domain.Income, error) {
	filter, args := dateRangeClause([]any{userID}, "income_date", start, end, currency)
	query := "SELECT " + incomeColumns + " FROM incomes WHERE user_id = $1" + filter +
		" ORDER BY income_date DESC, created_at DESC;"
	return r.queryIncomes(ctx, query, args...)
}

func (r *PgxIncomeRepository) ListIncomesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Income, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	cursor, args, err := keysetClause([]any{userID}, nextToken, "income_date", "income_id")
	if err != nil {
		return nil, nil, err
	}
	limitSQL, args := limitClause(args, fetchLimit)
	query := "SELECT " + incomeColumns + " FROM incomes WHERE user_id = $1" + cursor +
		" ORDER BY income_date DESC, created_at DESC, income_id DESC" + limitSQL + ";"

	incomes, err := r.queryIncomes(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(incomes) > limit {
		incomes = incomes[:limit]
		last := incomes[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, ID: last.IncomeID})
		next = &token
	}
	return incomes, next, nil
}

func (r *PgxIncomeRepository) FindRecurringWithoutNextDue(ctx context.Context, userID string) ([]domain.Income, error) {
	query := "SELECT " + incomeColumns + ` FROM incomes
		WHERE user_id = $1 AND is_recurring = TRUE AND frequency IS NOT NULL AND next_due_date IS NULL;`
	return r.queryIncomes(ctx, query, userID)
}

func (r *PgxIncomeRepository) SaveIncome(ctx context.Context, income domain.Income) error {
	m := mapping.ToModelIncome(income)
	query := "INSERT INTO incomes (" + incomeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`
	_, err := r.Pool.Exec(ctx, query,
		m.IncomeID, m.UserID, m.Source, m.Description, m.Category, m.Amount, m.Currency, m.Date,
		m.IsRecurring, m.Frequency, m.NextDueDate, m.Taxable,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: income %s", apperrors.ErrDuplicate, income.IncomeID)
		}
		return fmt.Errorf("failed to save income: %w", err)
	}
	return nil
}

func (r *PgxIncomeRepository) UpdateIncome(ctx context.Context, income domain.Income) error {
	m := mapping.ToModelIncome(income)
	query := `
		UPDATE incomes SET
			source = $1, description = $2, category = $3, amount = $4, currency = $5, income_date = $6,
			is_recurring = $7, frequency = $8, next_due_date = $9, taxable = $10,
			last_updated_at = $11, last_updated_by = $12
		WHERE income_id = $13;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Source, m.Description, m.Category, m.Amount, m.Currency, m.Date,
		m.IsRecurring, m.Frequency, m.NextDueDate, m.Taxable,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.IncomeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update income %s: %w", income.IncomeID, err)
	}
	return expectOneRow(tag, "income", income.IncomeID)
}

func (r *PgxIncomeRepository) DeleteIncome(ctx context.Context, incomeID string) error {
	tag, err := r.Pool.Exec(ctx, "DELETE FROM incomes WHERE income_id = $1;", incomeID)
	if err != nil {
		return fmt.Errorf("failed to delete income %s: %w", incomeID, err)
	}
	return expectOneRow(tag, "income", incomeID)
}
