package services

import (
	"context"

	"github.com/SscSPs/life_management_app/internal/core/domain"
)

// OverviewSvcFacade builds the per-user financial health overview.
type OverviewSvcFacade interface {
	// FinancialOverview aggregates the last months months of records and
	// scores them. Fetch failures degrade a category instead of failing.
	FinancialOverview(ctx context.Context, userID string, months int) (*domain.FinancialOverview, error)
}
