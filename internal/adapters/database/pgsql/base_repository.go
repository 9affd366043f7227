package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/life_management_app/internal/apperrors"
	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	return tx, nil
}

// Rollback rolls back a transaction. Rolling back a committed transaction is a no-op.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// expectOneRow turns an UPDATE or DELETE that touched nothing into a NotFound.
func expectOneRow(tag pgconn.CommandTag, entity, id string) error {
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(entity, id)
	}
	return nil
}

// keysetClause appends the cursor condition for a page ordered by (dateCol, created_at, idCol) DESC.
// A nil or empty token selects the first page.
func keysetClause(args []any, nextToken *string, dateCol, idCol string) (string, []any, error) {
	if nextToken == nil || *nextToken == "" {
		return "", args, nil
	}
	cursor, err := pagination.DecodeToken(*nextToken)
	if err != nil {
		return "", args, err
	}
	n := len(args)
	clause := fmt.Sprintf(" AND (%s, created_at, %s) < ($%d, $%d, $%d)", dateCol, idCol, n+1, n+2, n+3)
	return clause, append(args, cursor.Date, cursor.CreatedAt, cursor.ID), nil
}

// dateRangeClause narrows dateCol to the inclusive [start, end] range and an optional currency.
func dateRangeClause(args []any, dateCol string, start, end *time.Time, currency *domain.Currency) (string, []any) {
	var clause strings.Builder
	if start != nil {
		args = append(args, *start)
		fmt.Fprintf(&clause, " AND %s >= $%d", dateCol, len(args))
	}
	if end != nil {
		args = append(args, *end)
		fmt.Fprintf(&clause, " AND %s <= $%d", dateCol, len(args))
	}
	if currency != nil {
		args = append(args, string(*currency))
		fmt.Fprintf(&clause, " AND currency = $%d", len(args))
	}
	return clause.String(), args
}

func limitClause(args []any, limit int) (string, []any) {
	args = append(args, limit)
	return " LIMIT $" + strconv.Itoa(len(args)), args
}
