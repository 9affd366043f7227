package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/life_management_app/internal/apperrors"
	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/core/finance"
	portsrepo "github.com/SscSPs/life_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/life_management_app/internal/core/ports/services"
	"github.com/SscSPs/life_management_app/internal/dto"
	"github.com/google/uuid"
)

type incomeService struct {
	BaseService
	incomeRepo portsrepo.IncomeRepositoryFacade
}

// IncomeServiceOption is a functional option for configuring the income service
type IncomeServiceOption func(*incomeService)

func WithIncomeClock(now func() time.Time) IncomeServiceOption {
	return func(s *incomeService) {
		s.now = now
	}
}

func NewIncomeService(repo portsrepo.IncomeRepositoryFacade, options ...IncomeServiceOption) portssvc.IncomeSvcFacade {
	svc := &incomeService{incomeRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.IncomeSvcFacade = (*incomeService)(nil)

func (s *incomeService) GetIncome(ctx context.Context, userID, incomeID string) (*domain.Income, error) {
	income, err := s.incomeRepo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get income", slog.String("income_id", incomeID))
		}
		return nil, err
	}
	if err := s.AuthorizeOwner(ctx, "income", incomeID, income.UserID, userID); err != nil {
		return nil, err
	}
	return income, nil
}

func (s *incomeService) ListIncomes(ctx context.Context, userID string, params dto.ListParams) (*dto.ListIncomesResponse, error) {
	incomes, nextToken, err := s.incomeRepo.ListIncomesByUser(ctx, userID, normalizeLimit(params.Limit), params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list incomes", slog.String("user_id", userID))
		return nil, err
	}
	return &dto.ListIncomesResponse{
		Incomes:   dto.ToListIncomeResponse(incomes),
		NextToken: nextToken,
	}, nil
}

func (s *incomeService) SummarizeIncomes(ctx context.Context, userID string, params dto.SummaryParams) (map[domain.Currency]domain.IncomeTotals, error) {
	filter, err := summaryFilter(params)
	if err != nil {
		return nil, err
	}
	incomes, err := s.incomeRepo.FindIncomesByUserAndDateRange(ctx, userID, filter.Start, filter.End, filter.Currency)
	if err != nil {
		s.LogError(ctx, err, "Failed to load incomes for summary", slog.String("user_id", userID))
		return nil, err
	}
	return finance.AggregateIncomes(incomes, filter), nil
}

func (s *incomeService) CreateIncome(ctx context.Context, userID string, req dto.CreateIncomeRequest) (*domain.Income, error) {
	now := s.Now()
	income := domain.Income{
		IncomeID:    uuid.NewString(),
		UserID:      userID,
		Source:      req.Source,
		Description: req.Description,
		Category:    req.Category,
		MoneyRecord: domain.MoneyRecord{
			Amount:      req.Amount,
			Currency:    req.Currency,
			Date:        req.Date,
			IsRecurring: req.IsRecurring,
			Frequency:   req.Frequency,
		},
		Taxable:     req.Taxable,
		AuditFields: domain.NewAuditFields(userID, now),
	}
	if err := income.Validate(); err != nil {
		return nil, err
	}
	if _, err := income.UpdateNextDueDate(now); err != nil {
		return nil, err
	}

	if err := s.incomeRepo.SaveIncome(ctx, income); err != nil {
		s.LogError(ctx, err, "Failed to save income", slog.String("income_id", income.IncomeID))
		return nil, fmt.Errorf("failed to save income: %w", err)
	}
	s.LogInfo(ctx, "Income created", slog.String("income_id", income.IncomeID))
	return &income, nil
}

func (s *incomeService) UpdateIncome(ctx context.Context, userID, incomeID string, req dto.UpdateIncomeRequest) (*domain.Income, error) {
	income, err := s.GetIncome(ctx, userID, incomeID)
	if err != nil {
		return nil, err
	}
	now := s.Now()

	scheduleChanged := false
	if req.Source != nil {
		income.Source = *req.Source
	}
	if req.Description != nil {
		income.Description = *req.Description
	}
	if req.Category != nil {
		income.Category = *req.Category
	}
	if req.Amount != nil {
		income.Amount = *req.Amount
	}
	if req.Currency != nil {
		income.Currency = *req.Currency
	}
	if req.Date != nil {
		income.Date = *req.Date
		scheduleChanged = true
	}
	if req.Taxable != nil {
		income.Taxable = *req.Taxable
	}
	if req.IsRecurring != nil && !*req.IsRecurring {
		income.ClearRecurrence()
	} else {
		if req.IsRecurring != nil {
			income.IsRecurring = true
			scheduleChanged = true
		}
		if req.Frequency != nil {
			income.Frequency = req.Frequency
			scheduleChanged = true
		}
	}

	if err := income.Validate(); err != nil {
		return nil, err
	}
	if scheduleChanged && income.IsRecurring {
		income.NextDueDate = nil
		if _, err := income.UpdateNextDueDate(now); err != nil {
			return nil, err
		}
	}
	income.Touch(userID, now)

	if err := s.incomeRepo.UpdateIncome(ctx, *income); err != nil {
		s.LogError(ctx, err, "Failed to update income", slog.String("income_id", incomeID))
		return nil, fmt.Errorf("failed to update income: %w", err)
	}
	return income, nil
}

func (s *incomeService) DeleteIncome(ctx context.Context, userID, incomeID string) error {
	if _, err := s.GetIncome(ctx, userID, incomeID); err != nil {
		return err
	}
	if err := s.incomeRepo.DeleteIncome(ctx, incomeID); err != nil {
		s.LogError(ctx, err, "Failed to delete income", slog.String("income_id", incomeID))
		return err
	}
	s.LogInfo(ctx, "Income deleted", slog.String("income_id", incomeID))
	return nil
}

func (s *incomeService) AdvanceRecurrence(ctx context.Context, userID, incomeID string) (*domain.Income, error) {
	income, err := s.GetIncome(ctx, userID, incomeID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	advanced, err := income.UpdateNextDueDate(now)
	if err != nil {
		return nil, err
	}
	if !advanced {
		return nil, apperrors.NewValidationError("income %s is not recurring", incomeID)
	}
	income.Touch(userID, now)
	if err := s.incomeRepo.UpdateIncome(ctx, *income); err != nil {
		s.LogError(ctx, err, "Failed to advance income recurrence", slog.String("income_id", incomeID))
		return nil, fmt.Errorf("failed to advance income recurrence: %w", err)
	}
	return income, nil
}

func (s *incomeService) RollRecurring(ctx context.Context, userID string) (int, error) {
	incomes, err := s.incomeRepo.FindRecurringWithoutNextDue(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load recurring incomes", slog.String("user_id", userID))
		return 0, err
	}

	now := s.Now()
	updated := 0
	for i := range incomes {
		income := &incomes[i]
		if income.UserID != userID || income.NextDueDate != nil {
			continue
		}
		ok, err := income.UpdateNextDueDate(now)
		if err != nil {
			s.LogError(ctx, err, "Skipping income with bad schedule", slog.String("income_id", income.IncomeID))
			continue
		}
		if !ok {
			continue
		}
		income.Touch(userID, now)
		if err := s.incomeRepo.UpdateIncome(ctx, *income); err != nil {
			s.LogError(ctx, err, "Failed to roll income forward", slog.String("income_id", income.IncomeID))
			return updated, fmt.Errorf("failed to roll income %s forward: %w", income.IncomeID, err)
		}
		updated++
	}
	return updated, nil
}
