package services

import (
	"github.com/SscSPs/life_management_app/internal/core/ports/messaging"
	portsrepo "github.com/SscSPs/life_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/life_management_app/internal/core/ports/services"
	"github.com/SscSPs/life_management_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher messaging.LedgerEventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	expenseOpts := []ExpenseServiceOption{WithBudgetRepository(repos.BudgetRepo)}
	if publisher != nil {
		expenseOpts = append(expenseOpts, WithLedgerPublisher(publisher))
	}
	container.Expense = NewExpenseService(repos.ExpenseRepo, expenseOpts...)
	container.Income = NewIncomeService(repos.IncomeRepo)
	container.Budget = NewBudgetService(repos.BudgetRepo)
	container.Overview = NewOverviewService(repos,
		WithOverviewDefaults(cfg.OverviewWindowMonths, cfg.DefaultCurrency))

	return container
}
