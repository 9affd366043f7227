package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/life_management_app/internal/apperrors"
	"github.com/SscSPs/life_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/life_management_app/internal/core/ports/services"
	"github.com/SscSPs/life_management_app/internal/core/services"
	"github.com/SscSPs/life_management_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type ExpenseServiceTestSuite struct {
	suite.Suite
	expenseRepo *MockExpenseRepository
	budgetRepo  *MockBudgetRepository
	publisher   *MockLedgerPublisher
	service     portssvc.ExpenseSvcFacade
	ctx         context.Context
}

func (s *ExpenseServiceTestSuite) SetupTest() {
	s.expenseRepo = new(MockExpenseRepository)
	s.budgetRepo = new(MockBudgetRepository)
	s.publisher = new(MockLedgerPublisher)
	s.ctx = context.Background()
	s.service = services.NewExpenseService(s.expenseRepo,
		services.WithBudgetRepository(s.budgetRepo),
		services.WithLedgerPublisher(s.publisher),
		services.WithExpenseClock(clock),
	)
}

func (s *ExpenseServiceTestSuite) expense(amount, paid string) *domain.Expense {
	return &domain.Expense{
		ExpenseID: "exp-1",
		UserID:    "user-1",
		Title:     "Rent",
		Category:  domain.ExpenseHousing,
		MoneyRecord: domain.MoneyRecord{
			Amount:   dec(amount),
			Currency: domain.GBP,
			Date:     fixedNow.AddDate(0, 0, -10),
		},
		PaidAmount:  dec(paid),
		AuditFields: domain.NewAuditFields("user-1", fixedNow.AddDate(0, 0, -10)),
	}
}

func (s *ExpenseServiceTestSuite) TestApplyPayment_Overpayment_Rejected() {
	s.expenseRepo.On("FindExpenseByID", mock.Anything, "exp-1").Return(s.expense("100", "90"), nil).Once()

	updated, err := s.service.ApplyPayment(s.ctx, "user-1", "exp-1", dec("20"))

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(updated)
	s.expenseRepo.AssertNotCalled(s.T(), "UpdateExpense", mock.Anything, mock.Anything)
	s.publisher.AssertNotCalled(s.T(), "PublishLedgerEvent", mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestApplyPayment_SettlesExpense() {
	s.expenseRepo.On("FindExpenseByID", mock.Anything, "exp-1").Return(s.expense("100", "90"), nil).Once()
	s.expenseRepo.On("UpdateExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.PaidAmount.Equal(dec("100")) && e.IsPaid && e.PaidDate != nil
	})).Return(nil).Once()
	s.publisher.On("PublishLedgerEvent", mock.Anything, mock.MatchedBy(func(ev domain.LedgerEvent) bool {
		return ev.Type == domain.EventPaymentApplied && ev.Amount.Equal(dec("10"))
	})).Return(nil).Once()
	s.publisher.On("PublishLedgerEvent", mock.Anything, mock.MatchedBy(func(ev domain.LedgerEvent) bool {
		return ev.Type == domain.EventExpensePaid && ev.Status == domain.StatusPaid
	})).Return(nil).Once()

	updated, err := s.service.ApplyPayment(s.ctx, "user-1", "exp-1", dec("10"))

	s.Require().NoError(err)
	s.True(updated.IsPaid)
	s.Equal(fixedNow, *updated.PaidDate)
	s.Equal(domain.StatusPaid, updated.PaymentStatus())
	s.True(updated.RemainingBalance().IsZero())
	s.expenseRepo.AssertExpectations(s.T())
	s.publisher.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestApplyPayment_PublishFailureIsIgnored() {
	s.expenseRepo.On("FindExpenseByID", mock.Anything, "exp-1").Return(s.expense("100", "0"), nil).Once()
	s.expenseRepo.On("UpdateExpense", mock.Anything, mock.Anything).Return(nil).Once()
	s.publisher.On("PublishLedgerEvent", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	updated, err := s.service.ApplyPayment(s.ctx, "user-1", "exp-1", dec("40"))

	s.Require().NoError(err)
	s.Equal(40, updated.PaymentPercentage())
	s.Equal(domain.StatusPartial, updated.PaymentStatus())
}

func (s *ExpenseServiceTestSuite) TestApplyPayment_OtherUsersExpenseIsNotFound() {
	s.expenseRepo.On("FindExpenseByID", mock.Anything, "exp-1").Return(s.expense("100", "0"), nil).Once()

	_, err := s.service.ApplyPayment(s.ctx, "intruder", "exp-1", dec("10"))

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.expenseRepo.AssertNotCalled(s.T(), "UpdateExpense", mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestApplyPayment_AdjustsLinkedBudget() {
	exp := s.expense("100", "0")
	budgetID := "bud-1"
	exp.BudgetID = &budgetID
	budget := &domain.Budget{
		BudgetID: budgetID, UserID: "user-1", Name: "Home", Amount: dec("500"),
		CurrentSpent: dec("50"), Currency: domain.GBP, Period: domain.PeriodMonthly,
		StartDate: fixedNow.AddDate(0, -1, 0), IsActive: true,
	}
	s.expenseRepo.On("FindExpenseByID", mock.Anything, "exp-1").Return(exp, nil).Once()
	s.expenseRepo.On("UpdateExpense", mock.Anything, mock.Anything).Return(nil).Once()
	s.budgetRepo.On("FindBudgetByID", mock.Anything, budgetID).Return(budget, nil).Once()
	s.budgetRepo.On("UpdateBudget", mock.Anything, mock.MatchedBy(func(b domain.Budget) bool {
		return b.CurrentSpent.Equal(dec("75"))
	})).Return(nil).Once()
	s.publisher.On("PublishLedgerEvent", mock.Anything, mock.Anything).Return(nil)

	_, err := s.service.ApplyPayment(s.ctx, "user-1", "exp-1", dec("25"))

	s.Require().NoError(err)
	s.budgetRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestMarkUnpaid_KeepsOverdueAndPublishes() {
	exp := s.expense("100", "100")
	exp.IsPaid = true
	exp.IsOverdue = true
	s.expenseRepo.On("FindExpenseByID", mock.Anything, "exp-1").Return(exp, nil).Once()
	s.expenseRepo.On("UpdateExpense", mock.Anything, mock.Anything).Return(nil).Once()
	s.publisher.On("PublishLedgerEvent", mock.Anything, mock.MatchedBy(func(ev domain.LedgerEvent) bool {
		return ev.Type == domain.EventExpenseUnpaid && ev.Status == domain.StatusOverdue
	})).Return(nil).Once()

	updated, err := s.service.MarkUnpaid(s.ctx, "user-1", "exp-1")

	s.Require().NoError(err)
	s.True(updated.PaidAmount.IsZero())
	s.False(updated.IsPaid)
	s.Nil(updated.PaidDate)
	s.True(updated.IsOverdue)
	s.publisher.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestMarkPaid_Idempotent() {
	paidAt := fixedNow.AddDate(0, 0, -2)
	exp := s.expense("100", "100")
	exp.IsPaid = true
	exp.PaidDate = &paidAt
	s.expenseRepo.On("FindExpenseByID", mock.Anything, "exp-1").Return(exp, nil).Once()
	s.expenseRepo.On("UpdateExpense", mock.Anything, mock.Anything).Return(nil).Once()
	s.publisher.On("PublishLedgerEvent", mock.Anything, mock.Anything).Return(nil).Once()

	updated, err := s.service.MarkPaid(s.ctx, "user-1", "exp-1")

	s.Require().NoError(err)
	s.Equal(paidAt, *updated.PaidDate)
	s.True(updated.PaidAmount.Equal(dec("100")))
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_RecurringGetsNextDueDate() {
	monthly := domain.Monthly
	req := dto.CreateExpenseRequest{
		Title:       "Gym",
		Category:    domain.ExpenseEntertainment,
		Amount:      dec("30"),
		Currency:    domain.EUR,
		Date:        time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
		IsRecurring: true,
		Frequency:   &monthly,
	}
	s.expenseRepo.On("SaveExpense", mock.Anything, mock.AnythingOfType("domain.Expense")).Return(nil).Once()

	created, err := s.service.CreateExpense(s.ctx, "user-1", req)

	s.Require().NoError(err)
	s.Require().NotNil(created.NextDueDate)
	s.Equal(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), *created.NextDueDate)
	s.Equal("user-1", created.CreatedBy)
	s.NotEmpty(created.ExpenseID)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_InvalidRecordNeverReachesRepo() {
	req := dto.CreateExpenseRequest{
		Title:       "Broken",
		Category:    domain.ExpenseOther,
		Amount:      dec("10"),
		Currency:    domain.USD,
		Date:        fixedNow,
		IsRecurring: true,
	}

	_, err := s.service.CreateExpense(s.ctx, "user-1", req)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.expenseRepo.AssertNotCalled(s.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_BudgetCurrencyMismatch() {
	budgetID := "bud-usd"
	s.budgetRepo.On("FindBudgetByID", mock.Anything, budgetID).Return(&domain.Budget{
		BudgetID: budgetID, UserID: "user-1", Currency: domain.USD,
	}, nil).Once()
	req := dto.CreateExpenseRequest{
		Title:    "Groceries",
		Category: domain.ExpenseFood,
		Amount:   dec("55.20"),
		Currency: domain.GBP,
		Date:     fixedNow,
		BudgetID: &budgetID,
	}

	_, err := s.service.CreateExpense(s.ctx, "user-1", req)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.expenseRepo.AssertNotCalled(s.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestFlagOverdue() {
	due := fixedNow.AddDate(0, 0, -1)
	late := *s.expense("80", "0")
	late.DueDate = &due
	s.expenseRepo.On("FindOverdueCandidates", mock.Anything, "user-1", fixedNow).
		Return([]domain.Expense{late}, nil).Once()
	s.expenseRepo.On("UpdateExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.IsOverdue
	})).Return(nil).Once()
	s.publisher.On("PublishLedgerEvent", mock.Anything, mock.MatchedBy(func(ev domain.LedgerEvent) bool {
		return ev.Type == domain.EventExpenseOverdue
	})).Return(nil).Once()

	flagged, err := s.service.FlagOverdue(s.ctx, "user-1")

	s.Require().NoError(err)
	s.Equal(1, flagged)
	s.expenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestRollRecurring_SkipsNonRecurring() {
	weekly := domain.Weekly
	recurring := *s.expense("10", "0")
	recurring.IsRecurring = true
	recurring.Frequency = &weekly
	oneOff := *s.expense("10", "0")
	oneOff.ExpenseID = "exp-2"
	s.expenseRepo.On("FindRecurringWithoutNextDue", mock.Anything, "user-1").
		Return([]domain.Expense{recurring, oneOff}, nil).Once()
	s.expenseRepo.On("UpdateExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.ExpenseID == "exp-1" && e.NextDueDate != nil && e.NextDueDate.Equal(recurring.Date.AddDate(0, 0, 7))
	})).Return(nil).Once()

	updated, err := s.service.RollRecurring(s.ctx, "user-1")

	s.Require().NoError(err)
	s.Equal(1, updated)
	s.expenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestAdvanceRecurrence_NonRecurringRejected() {
	s.expenseRepo.On("FindExpenseByID", mock.Anything, "exp-1").Return(s.expense("10", "0"), nil).Once()

	_, err := s.service.AdvanceRecurrence(s.ctx, "user-1", "exp-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ExpenseServiceTestSuite) TestSummarizeExpenses_PerCurrency() {
	gbp := *s.expense("100", "40")
	usd := *s.expense("50", "50")
	usd.Currency = domain.USD
	s.expenseRepo.On("FindExpensesByUserAndDateRange", mock.Anything, "user-1",
		(*time.Time)(nil), (*time.Time)(nil), (*domain.Currency)(nil)).
		Return([]domain.Expense{gbp, usd}, nil).Once()

	totals, err := s.service.SummarizeExpenses(s.ctx, "user-1", dto.SummaryParams{})

	s.Require().NoError(err)
	s.Len(totals, 2)
	s.True(totals[domain.GBP].TotalRemaining.Equal(dec("60")))
	s.True(totals[domain.USD].TotalPaid.Equal(dec("50")))
}

func (s *ExpenseServiceTestSuite) TestSummarizeExpenses_BadCurrency() {
	code := "JPY"
	_, err := s.service.SummarizeExpenses(s.ctx, "user-1", dto.SummaryParams{Currency: &code})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ExpenseServiceTestSuite) TestApplyPayment_SettledExpenseDoesNotRepublishPaid() {
	paidAt := fixedNow.AddDate(0, 0, -2)
	exp := s.expense("100", "100")
	exp.IsPaid = true
	exp.PaidDate = &paidAt
	s.expenseRepo.On("FindExpenseByID", mock.Anything, "exp-1").Return(exp, nil).Once()
	s.expenseRepo.On("UpdateExpense", mock.Anything, mock.Anything).Return(nil).Once()
	s.publisher.On("PublishLedgerEvent", mock.Anything, mock.MatchedBy(func(ev domain.LedgerEvent) bool {
		return ev.Type == domain.EventPaymentApplied
	})).Return(nil).Once()

	updated, err := s.service.ApplyPayment(s.ctx, "user-1", "exp-1", decimal.Zero)

	s.Require().NoError(err)
	s.True(updated.IsPaid)
	s.publisher.AssertNumberOfCalls(s.T(), "PublishLedgerEvent", 1)
}

func (s *ExpenseServiceTestSuite) linkedBudget(id, spent string) *domain.Budget {
	return &domain.Budget{
		BudgetID: id, UserID: "user-1", Name: "Budget " + id, Amount: dec("500"),
		CurrentSpent: dec(spent), Currency: domain.GBP, Period: domain.PeriodMonthly,
		StartDate: fixedNow.AddDate(0, -1, 0), IsActive: true,
	}
}

func spentOn(budgetID, spent string) func(domain.Budget) bool {
	return func(b domain.Budget) bool {
		return b.BudgetID == budgetID && b.CurrentSpent.Equal(dec(spent))
	}
}

func (s *ExpenseServiceTestSuite) TestUpdateExpense_LinkMovesPaidAmountOntoBudget() {
	s.expenseRepo.On("FindExpenseByID", mock.Anything, "exp-1").Return(s.expense("100", "40"), nil).Once()
	s.expenseRepo.On("UpdateExpense", mock.Anything, mock.Anything).Return(nil).Once()
	s.budgetRepo.On("FindBudgetByID", mock.Anything, "bud-1").Return(s.linkedBudget("bud-1", "0"), nil)
	s.budgetRepo.On("UpdateBudget", mock.Anything, mock.MatchedBy(spentOn("bud-1", "40"))).Return(nil).Once()

	budgetID := "bud-1"
	updated, err := s.service.UpdateExpense(s.ctx, "user-1", "exp-1", dto.UpdateExpenseRequest{BudgetID: &budgetID})

	s.Require().NoError(err)
	s.Equal("bud-1", *updated.BudgetID)
	s.budgetRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestUpdateExpense_RelinkMovesPaidAmountBetweenBudgets() {
	exp := s.expense("100", "40")
	oldID := "bud-1"
	exp.BudgetID = &oldID
	s.expenseRepo.On("FindExpenseByID", mock.Anything, "exp-1").Return(exp, nil).Once()
	s.expenseRepo.On("UpdateExpense", mock.Anything, mock.Anything).Return(nil).Once()
	s.budgetRepo.On("FindBudgetByID", mock.Anything, "bud-1").Return(s.linkedBudget("bud-1", "100"), nil)
	s.budgetRepo.On("FindBudgetByID", mock.Anything, "bud-2").Return(s.linkedBudget("bud-2", "10"), nil)
	s.budgetRepo.On("UpdateBudget", mock.Anything, mock.MatchedBy(spentOn("bud-1", "60"))).Return(nil).Once()
	s.budgetRepo.On("UpdateBudget", mock.Anything, mock.MatchedBy(spentOn("bud-2", "50"))).Return(nil).Once()

	newID := "bud-2"
	_, err := s.service.UpdateExpense(s.ctx, "user-1", "exp-1", dto.UpdateExpenseRequest{BudgetID: &newID})

	s.Require().NoError(err)
	s.budgetRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestUpdateExpense_UnlinkReleasesPaidAmount() {
	exp := s.expense("100", "40")
	oldID := "bud-1"
	exp.BudgetID = &oldID
	s.expenseRepo.On("FindExpenseByID", mock.Anything, "exp-1").Return(exp, nil).Once()
	s.expenseRepo.On("UpdateExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.BudgetID == nil
	})).Return(nil).Once()
	s.budgetRepo.On("FindBudgetByID", mock.Anything, "bud-1").Return(s.linkedBudget("bud-1", "100"), nil).Once()
	s.budgetRepo.On("UpdateBudget", mock.Anything, mock.MatchedBy(spentOn("bud-1", "60"))).Return(nil).Once()

	unlink := ""
	_, err := s.service.UpdateExpense(s.ctx, "user-1", "exp-1", dto.UpdateExpenseRequest{BudgetID: &unlink})

	s.Require().NoError(err)
	s.budgetRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestUpdateExpense_SameLinkLeavesBudgetAlone() {
	exp := s.expense("100", "40")
	budgetID := "bud-1"
	exp.BudgetID = &budgetID
	s.expenseRepo.On("FindExpenseByID", mock.Anything, "exp-1").Return(exp, nil).Once()
	s.expenseRepo.On("UpdateExpense", mock.Anything, mock.Anything).Return(nil).Once()
	s.budgetRepo.On("FindBudgetByID", mock.Anything, "bud-1").Return(s.linkedBudget("bud-1", "100"), nil).Once()

	same := "bud-1"
	_, err := s.service.UpdateExpense(s.ctx, "user-1", "exp-1", dto.UpdateExpenseRequest{BudgetID: &same})

	s.Require().NoError(err)
	s.budgetRepo.AssertNotCalled(s.T(), "UpdateBudget", mock.Anything, mock.Anything)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
