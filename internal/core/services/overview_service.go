package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/core/finance"
	portsrepo "github.com/SscSPs/life_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/life_management_app/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

// Degraded category names reported in the overview.
const (
	categoryExpenses = "expenses"
	categoryIncomes  = "incomes"
	categoryBudgets  = "budgets"
)

type overviewService struct {
	BaseService
	userRepo        portsrepo.UserReader
	expenseRepo     portsrepo.ExpenseReader
	incomeRepo      portsrepo.IncomeReader
	budgetRepo      portsrepo.BudgetReader
	defaultWindow   int
	defaultCurrency domain.Currency
}

// OverviewServiceOption is a functional option for configuring the overview service
type OverviewServiceOption func(*overviewService)

// WithOverviewDefaults sets the window used when the caller passes none and
// the currency used when a user has no data and no preference.
func WithOverviewDefaults(windowMonths int, currency domain.Currency) OverviewServiceOption {
	return func(s *overviewService) {
		if windowMonths > 0 {
			s.defaultWindow = windowMonths
		}
		if currency.IsValid() {
			s.defaultCurrency = currency
		}
	}
}

func WithOverviewClock(now func() time.Time) OverviewServiceOption {
	return func(s *overviewService) {
		s.now = now
	}
}

func NewOverviewService(repos portsrepo.RepositoryProvider, options ...OverviewServiceOption) portssvc.OverviewSvcFacade {
	svc := &overviewService{
		userRepo:        repos.UserRepo,
		expenseRepo:     repos.ExpenseRepo,
		incomeRepo:      repos.IncomeRepo,
		budgetRepo:      repos.BudgetRepo,
		defaultWindow:   finance.DefaultWindowMonths,
		defaultCurrency: domain.GBP,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.OverviewSvcFacade = (*overviewService)(nil)

// FinancialOverview loads the last months months of the user's records
// concurrently and scores them per currency. A failed fetch is logged and
// that category is reported as degraded and treated as empty.
func (s *overviewService) FinancialOverview(ctx context.Context, userID string, months int) (*domain.FinancialOverview, error) {
	if months <= 0 {
		months = s.defaultWindow
	}
	to := s.Now()
	from := to.AddDate(0, -months, 0)

	var (
		expenses  []domain.Expense
		incomes   []domain.Income
		budgets   []domain.Budget
		preferred *domain.Currency
		failed    [3]bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := s.expenseRepo.FindExpensesByUserAndDateRange(gctx, userID, &from, &to, nil)
		if err != nil {
			s.LogError(ctx, err, "Overview: expenses unavailable", slog.String("user_id", userID))
			failed[0] = true
			return nil
		}
		expenses = result
		return nil
	})
	g.Go(func() error {
		result, err := s.incomeRepo.FindIncomesByUserAndDateRange(gctx, userID, &from, &to, nil)
		if err != nil {
			s.LogError(ctx, err, "Overview: incomes unavailable", slog.String("user_id", userID))
			failed[1] = true
			return nil
		}
		incomes = result
		return nil
	})
	g.Go(func() error {
		result, err := s.budgetRepo.FindBudgetsByUser(gctx, userID, nil, true)
		if err != nil {
			s.LogError(ctx, err, "Overview: budgets unavailable", slog.String("user_id", userID))
			failed[2] = true
			return nil
		}
		budgets = result
		return nil
	})
	if s.userRepo != nil {
		g.Go(func() error {
			user, err := s.userRepo.FindUserByID(gctx, userID)
			if err != nil {
				s.LogDebug(ctx, "Overview: no default currency", slog.String("error", err.Error()))
				return nil
			}
			preferred = user.DefaultCurrency
			return nil
		})
	}
	// Every fetch swallows its own error.
	_ = g.Wait()

	var degraded []string
	for i, name := range []string{categoryExpenses, categoryIncomes, categoryBudgets} {
		if failed[i] {
			degraded = append(degraded, name)
		}
	}

	overview := finance.BuildOverview(finance.OverviewInput{
		From:         from,
		To:           to,
		WindowMonths: months,
		Preferred:    preferred,
		Fallback:     s.defaultCurrency,
		Expenses:     expenses,
		Incomes:      incomes,
		Budgets:      budgets,
		Degraded:     degraded,
	})

	s.LogInfo(ctx, "Financial overview built",
		slog.String("user_id", userID),
		slog.String("primary_currency", string(overview.PrimaryCurrency)),
		slog.Int("total_score", overview.Health.TotalScore),
		slog.Int("degraded", len(degraded)))
	return &overview, nil
}
