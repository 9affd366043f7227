package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/life_management_app/internal/apperrors"
	"github.com/SscSPs/life_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/life_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/life_management_app/internal/core/ports/services"
	"github.com/SscSPs/life_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type budgetService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
}

// BudgetServiceOption is a functional option for configuring the budget service
type BudgetServiceOption func(*budgetService)

func WithBudgetClock(now func() time.Time) BudgetServiceOption {
	return func(s *budgetService) {
		s.now = now
	}
}

func NewBudgetService(repo portsrepo.BudgetRepositoryFacade, options ...BudgetServiceOption) portssvc.BudgetSvcFacade {
	svc := &budgetService{budgetRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) GetBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get budget", slog.String("budget_id", budgetID))
		}
		return nil, err
	}
	if err := s.AuthorizeOwner(ctx, "budget", budgetID, budget.UserID, userID); err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *budgetService) ListBudgets(ctx context.Context, userID string, params dto.ListBudgetsParams) ([]domain.Budget, error) {
	currency, err := optionalCurrency(params.Currency)
	if err != nil {
		return nil, err
	}
	budgets, err := s.budgetRepo.FindBudgetsByUser(ctx, userID, currency, params.ActiveOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("user_id", userID))
		return nil, err
	}
	return budgets, nil
}

func (s *budgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	now := s.Now()
	budget := domain.Budget{
		BudgetID:     uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		Category:     req.Category,
		Amount:       req.Amount,
		CurrentSpent: decimal.Zero,
		Currency:     req.Currency,
		Period:       req.Period,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(userID, now),
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}
	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget", slog.String("budget_id", budget.BudgetID))
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}
	s.LogInfo(ctx, "Budget created", slog.String("budget_id", budget.BudgetID))
	return &budget, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	budget, err := s.GetBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		budget.Name = *req.Name
	}
	if req.Category != nil {
		budget.Category = *req.Category
	}
	if req.Amount != nil {
		budget.Amount = *req.Amount
	}
	if req.Period != nil {
		budget.Period = *req.Period
	}
	if req.StartDate != nil {
		budget.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		budget.EndDate = req.EndDate
	}
	if req.IsActive != nil {
		budget.IsActive = *req.IsActive
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}
	budget.Touch(userID, s.Now())

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget", slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	if _, err := s.GetBudget(ctx, userID, budgetID); err != nil {
		return err
	}
	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		s.LogError(ctx, err, "Failed to delete budget", slog.String("budget_id", budgetID))
		return err
	}
	s.LogInfo(ctx, "Budget deleted", slog.String("budget_id", budgetID))
	return nil
}

func (s *budgetService) RecordSpend(ctx context.Context, userID, budgetID string, delta decimal.Decimal) (*domain.Budget, error) {
	budget, err := s.GetBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	if err := budget.AddSpending(delta); err != nil {
		return nil, err
	}
	budget.Touch(userID, s.Now())
	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to record budget spend", slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to record budget spend: %w", err)
	}
	if budget.IsOverBudget() {
		s.LogInfo(ctx, "Budget overspent",
			slog.String("budget_id", budgetID),
			slog.Int("usage_percentage", budget.UsagePercentage()))
	}
	return budget, nil
}
