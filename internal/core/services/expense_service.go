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
	"github.com/SscSPs/life_management_app/internal/core/ports/messaging"
	portsrepo "github.com/SscSPs/life_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/life_management_app/internal/core/ports/services"
	"github.com/SscSPs/life_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// expenseService implements the ExpenseSvcFacade interface
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	budgetRepo  portsrepo.BudgetRepositoryFacade
	publisher   messaging.LedgerEventPublisher
}

// ExpenseServiceOption is a functional option for configuring the expense service
type ExpenseServiceOption func(*expenseService)

// WithLedgerPublisher emits ledger events after successful ledger writes.
func WithLedgerPublisher(p messaging.LedgerEventPublisher) ExpenseServiceOption {
	return func(s *expenseService) {
		s.publisher = p
	}
}

// WithBudgetRepository links expenses to budgets: the budget ID is checked on
// write and ledger changes adjust the budget's spent amount.
func WithBudgetRepository(repo portsrepo.BudgetRepositoryFacade) ExpenseServiceOption {
	return func(s *expenseService) {
		s.budgetRepo = repo
	}
}

// WithExpenseClock overrides the clock, mostly for tests.
func WithExpenseClock(now func() time.Time) ExpenseServiceOption {
	return func(s *expenseService) {
		s.now = now
	}
}

// NewExpenseService creates a new expense service with the provided options
func NewExpenseService(repo portsrepo.ExpenseRepositoryFacade, options ...ExpenseServiceOption) portssvc.ExpenseSvcFacade {
	svc := &expenseService{expenseRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) GetExpense(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get expense", slog.String("expense_id", expenseID))
		}
		return nil, err
	}
	if err := s.AuthorizeOwner(ctx, "expense", expenseID, expense.UserID, userID); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, userID string, params dto.ListParams) (*dto.ListExpensesResponse, error) {
	expenses, nextToken, err := s.expenseRepo.ListExpensesByUser(ctx, userID, normalizeLimit(params.Limit), params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses", slog.String("user_id", userID))
		return nil, err
	}
	return &dto.ListExpensesResponse{
		Expenses:  dto.ToListExpenseResponse(expenses),
		NextToken: nextToken,
	}, nil
}

func (s *expenseService) SummarizeExpenses(ctx context.Context, userID string, params dto.SummaryParams) (map[domain.Currency]domain.ExpenseTotals, error) {
	filter, err := summaryFilter(params)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.FindExpensesByUserAndDateRange(ctx, userID, filter.Start, filter.End, filter.Currency)
	if err != nil {
		s.LogError(ctx, err, "Failed to load expenses for summary", slog.String("user_id", userID))
		return nil, err
	}
	return finance.AggregateExpenses(expenses, filter), nil
}

func (s *expenseService) CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	now := s.Now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		MoneyRecord: domain.MoneyRecord{
			Amount:      req.Amount,
			Currency:    req.Currency,
			Date:        req.Date,
			IsRecurring: req.IsRecurring,
			Frequency:   req.Frequency,
		},
		DueDate:     req.DueDate,
		BudgetID:    req.BudgetID,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}
	if req.PaidAmount != nil {
		if err := expense.ApplyPayment(*req.PaidAmount, now); err != nil {
			return nil, err
		}
	}
	if _, err := expense.UpdateNextDueDate(now); err != nil {
		return nil, err
	}
	expense.RecomputeDerived(now)

	if err := s.checkBudgetLink(ctx, userID, &expense); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("expense_id", expense.ExpenseID))
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}
	s.adjustBudget(ctx, userID, &expense, expense.PaidAmount)

	s.LogInfo(ctx, "Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("currency", string(expense.Currency)))
	return &expense, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, userID, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	expense, err := s.GetExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	previous := *expense

	scheduleChanged := false
	if req.Title != nil {
		expense.Title = *req.Title
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Currency != nil {
		expense.Currency = *req.Currency
	}
	if req.Date != nil {
		expense.Date = *req.Date
		scheduleChanged = true
	}
	if req.DueDate != nil {
		expense.DueDate = req.DueDate
	}
	if req.IsRecurring != nil && !*req.IsRecurring {
		expense.ClearRecurrence()
	} else {
		if req.IsRecurring != nil {
			expense.IsRecurring = true
			scheduleChanged = true
		}
		if req.Frequency != nil {
			expense.Frequency = req.Frequency
			scheduleChanged = true
		}
	}
	linkChanged := false
	if req.BudgetID != nil {
		if *req.BudgetID == "" {
			expense.BudgetID = nil
		} else {
			expense.BudgetID = req.BudgetID
		}
		linkChanged = true
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}
	if scheduleChanged && expense.IsRecurring {
		expense.NextDueDate = nil
		if _, err := expense.UpdateNextDueDate(now); err != nil {
			return nil, err
		}
	}
	if linkChanged || req.Currency != nil {
		if err := s.checkBudgetLink(ctx, userID, expense); err != nil {
			return nil, err
		}
	}
	expense.RecomputeDerived(now)
	expense.Touch(userID, now)

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	if budgetAssignmentChanged(&previous, expense) {
		s.adjustBudget(ctx, userID, &previous, previous.PaidAmount.Neg())
		s.adjustBudget(ctx, userID, expense, expense.PaidAmount)
	}
	s.LogInfo(ctx, "Expense updated", slog.String("expense_id", expenseID))
	return expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	expense, err := s.GetExpense(ctx, userID, expenseID)
	if err != nil {
		return err
	}
	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		s.LogError(ctx, err, "Failed to delete expense", slog.String("expense_id", expenseID))
		return err
	}
	s.adjustBudget(ctx, userID, expense, expense.PaidAmount.Neg())
	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

func (s *expenseService) ApplyPayment(ctx context.Context, userID, expenseID string, amount decimal.Decimal) (*domain.Expense, error) {
	expense, err := s.GetExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	wasPaid := expense.IsPaid
	if err := expense.ApplyPayment(amount, s.Now()); err != nil {
		s.LogDebug(ctx, "Payment rejected",
			slog.String("expense_id", expenseID),
			slog.String("amount", amount.String()))
		return nil, err
	}
	if err := s.saveLedger(ctx, userID, expense); err != nil {
		return nil, err
	}
	s.adjustBudget(ctx, userID, expense, amount)
	s.publish(ctx, domain.EventPaymentApplied, expense, amount)
	if expense.IsPaid && !wasPaid {
		s.publish(ctx, domain.EventExpensePaid, expense, expense.Amount)
	}
	return expense, nil
}

func (s *expenseService) MarkPaid(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	expense, err := s.GetExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	previous := expense.PaidAmount
	expense.MarkFullyPaid(s.Now())
	if err := s.saveLedger(ctx, userID, expense); err != nil {
		return nil, err
	}
	s.adjustBudget(ctx, userID, expense, expense.PaidAmount.Sub(previous))
	s.publish(ctx, domain.EventExpensePaid, expense, expense.Amount)
	return expense, nil
}

func (s *expenseService) MarkUnpaid(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	expense, err := s.GetExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	previous := expense.PaidAmount
	expense.MarkUnpaid()
	if err := s.saveLedger(ctx, userID, expense); err != nil {
		return nil, err
	}
	s.adjustBudget(ctx, userID, expense, previous.Neg())
	s.publish(ctx, domain.EventExpenseUnpaid, expense, expense.Amount)
	return expense, nil
}

func (s *expenseService) MarkOverdue(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	expense, err := s.GetExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	expense.MarkOverdue()
	if err := s.saveLedger(ctx, userID, expense); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.EventExpenseOverdue, expense, expense.Amount)
	return expense, nil
}

func (s *expenseService) FlagOverdue(ctx context.Context, userID string) (int, error) {
	now := s.Now()
	candidates, err := s.expenseRepo.FindOverdueCandidates(ctx, userID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to load overdue candidates", slog.String("user_id", userID))
		return 0, err
	}

	flagged := 0
	for i := range candidates {
		expense := &candidates[i]
		if expense.UserID != userID || expense.IsOverdue || expense.IsPaid {
			continue
		}
		expense.RecomputeDerived(now)
		if !expense.IsOverdue {
			continue
		}
		expense.Touch(userID, now)
		if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
			s.LogError(ctx, err, "Failed to flag expense overdue", slog.String("expense_id", expense.ExpenseID))
			return flagged, fmt.Errorf("failed to flag expense %s overdue: %w", expense.ExpenseID, err)
		}
		flagged++
		s.publish(ctx, domain.EventExpenseOverdue, expense, expense.Amount)
	}

	s.LogInfo(ctx, "Overdue sweep finished", slog.String("user_id", userID), slog.Int("flagged", flagged))
	return flagged, nil
}

func (s *expenseService) AdvanceRecurrence(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	expense, err := s.GetExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	advanced, err := expense.UpdateNextDueDate(now)
	if err != nil {
		return nil, err
	}
	if !advanced {
		return nil, apperrors.NewValidationError("expense %s is not recurring", expenseID)
	}
	expense.Touch(userID, now)
	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to advance expense recurrence", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to advance expense recurrence: %w", err)
	}
	return expense, nil
}

func (s *expenseService) RollRecurring(ctx context.Context, userID string) (int, error) {
	expenses, err := s.expenseRepo.FindRecurringWithoutNextDue(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load recurring expenses", slog.String("user_id", userID))
		return 0, err
	}

	now := s.Now()
	updated := 0
	for i := range expenses {
		expense := &expenses[i]
		if expense.UserID != userID || expense.NextDueDate != nil {
			continue
		}
		ok, err := expense.UpdateNextDueDate(now)
		if err != nil {
			s.LogError(ctx, err, "Skipping expense with bad schedule", slog.String("expense_id", expense.ExpenseID))
			continue
		}
		if !ok {
			continue
		}
		expense.Touch(userID, now)
		if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
			s.LogError(ctx, err, "Failed to roll expense forward", slog.String("expense_id", expense.ExpenseID))
			return updated, fmt.Errorf("failed to roll expense %s forward: %w", expense.ExpenseID, err)
		}
		updated++
	}
	return updated, nil
}

// saveLedger validates and persists a ledger mutation.
func (s *expenseService) saveLedger(ctx context.Context, userID string, expense *domain.Expense) error {
	if err := expense.Validate(); err != nil {
		return err
	}
	expense.Touch(userID, s.Now())
	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to persist ledger change", slog.String("expense_id", expense.ExpenseID))
		return fmt.Errorf("failed to persist ledger change: %w", err)
	}
	s.LogInfo(ctx, "Ledger updated",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("paid_amount", expense.PaidAmount.String()),
		slog.String("status", string(expense.PaymentStatus())))
	return nil
}

// checkBudgetLink requires a linked budget to exist, belong to the user and
// share the expense currency.
func (s *expenseService) checkBudgetLink(ctx context.Context, userID string, expense *domain.Expense) error {
	if expense.BudgetID == nil || s.budgetRepo == nil {
		return nil
	}
	budget, err := s.budgetRepo.FindBudgetByID(ctx, *expense.BudgetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError("budget %s does not exist", *expense.BudgetID)
		}
		return fmt.Errorf("failed to load linked budget: %w", err)
	}
	if budget.UserID != userID {
		return apperrors.NewValidationError("budget %s does not exist", *expense.BudgetID)
	}
	if budget.Currency != expense.Currency {
		return apperrors.NewValidationError("budget currency %s does not match expense currency %s", budget.Currency, expense.Currency)
	}
	return nil
}

// budgetAssignmentChanged reports whether the expense's paid amount now
// counts against a different budget or currency.
func budgetAssignmentChanged(before, after *domain.Expense) bool {
	if before.Currency != after.Currency {
		return before.BudgetID != nil || after.BudgetID != nil
	}
	switch {
	case before.BudgetID == nil && after.BudgetID == nil:
		return false
	case before.BudgetID == nil || after.BudgetID == nil:
		return true
	default:
		return *before.BudgetID != *after.BudgetID
	}
}

// adjustBudget moves the linked budget's spent amount by delta. Failures are
// logged only: the expense write has already succeeded.
func (s *expenseService) adjustBudget(ctx context.Context, userID string, expense *domain.Expense, delta decimal.Decimal) {
	if s.budgetRepo == nil || expense.BudgetID == nil || delta.IsZero() {
		return
	}
	budget, err := s.budgetRepo.FindBudgetByID(ctx, *expense.BudgetID)
	if err != nil {
		s.LogError(ctx, err, "Linked budget not loaded", slog.String("budget_id", *expense.BudgetID))
		return
	}
	if budget.UserID != userID || budget.Currency != expense.Currency {
		return
	}
	if err := budget.AddSpending(delta); err != nil {
		s.LogError(ctx, err, "Budget spend not adjusted", slog.String("budget_id", budget.BudgetID))
		return
	}
	budget.Touch(userID, s.Now())
	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to persist budget spend", slog.String("budget_id", budget.BudgetID))
	}
}

// publish emits a ledger event. Publish errors are logged and never returned.
func (s *expenseService) publish(ctx context.Context, t domain.LedgerEventType, expense *domain.Expense, amount decimal.Decimal) {
	if s.publisher == nil {
		return
	}
	event := domain.LedgerEvent{
		EventID:    uuid.NewString(),
		Type:       t,
		ExpenseID:  expense.ExpenseID,
		UserID:     expense.UserID,
		Currency:   expense.Currency,
		Amount:     amount,
		PaidAmount: expense.PaidAmount,
		Status:     expense.PaymentStatus(),
		OccurredAt: s.Now(),
	}
	if err := s.publisher.PublishLedgerEvent(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish ledger event",
			slog.String("event_type", string(t)),
			slog.String("expense_id", expense.ExpenseID))
	}
}
