package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/life_management_app/internal/apperrors"
	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/core/services"
	"github.com/SscSPs/life_management_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func budgetFixture() *domain.Budget {
	return &domain.Budget{
		BudgetID:     "bud-1",
		UserID:       "user-1",
		Name:         "Groceries",
		Category:     domain.ExpenseFood,
		Amount:       dec("400"),
		CurrentSpent: dec("100"),
		Currency:     domain.GBP,
		Period:       domain.PeriodMonthly,
		StartDate:    fixedNow.AddDate(0, 0, -14),
		IsActive:     true,
	}
}

func TestBudgetService_CreateBudget(t *testing.T) {
	repo := new(MockBudgetRepository)
	repo.On("SaveBudget", mock.Anything, mock.MatchedBy(func(b domain.Budget) bool {
		return b.IsActive && b.CurrentSpent.IsZero() && b.UserID == "user-1"
	})).Return(nil).Once()
	svc := services.NewBudgetService(repo, services.WithBudgetClock(clock))

	budget, err := svc.CreateBudget(context.Background(), "user-1", dto.CreateBudgetRequest{
		Name: "Travel", Amount: dec("1200"), Currency: domain.EUR, Period: domain.PeriodYearly, StartDate: fixedNow,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, budget.UsagePercentage())
	repo.AssertExpectations(t)
}

func TestBudgetService_CreateBudget_RejectsZeroAmount(t *testing.T) {
	repo := new(MockBudgetRepository)
	svc := services.NewBudgetService(repo, services.WithBudgetClock(clock))

	_, err := svc.CreateBudget(context.Background(), "user-1", dto.CreateBudgetRequest{
		Name: "Nothing", Currency: domain.EUR, Period: domain.PeriodYearly, StartDate: fixedNow,
	})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "SaveBudget", mock.Anything, mock.Anything)
}

func TestBudgetService_RecordSpend(t *testing.T) {
	repo := new(MockBudgetRepository)
	repo.On("FindBudgetByID", mock.Anything, "bud-1").Return(budgetFixture(), nil)
	repo.On("UpdateBudget", mock.Anything, mock.Anything).Return(nil)
	svc := services.NewBudgetService(repo, services.WithBudgetClock(clock))

	budget, err := svc.RecordSpend(context.Background(), "user-1", "bud-1", dec("350"))
	require.NoError(t, err)
	assert.True(t, budget.IsOverBudget())
	assert.True(t, budget.Remaining().Equal(dec("-50")))

	_, err = svc.RecordSpend(context.Background(), "user-1", "bud-1", dec("-150"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBudgetService_ListBudgets_ParsesCurrency(t *testing.T) {
	repo := new(MockBudgetRepository)
	gbp := domain.GBP
	repo.On("FindBudgetsByUser", mock.Anything, "user-1", &gbp, true).Return([]domain.Budget{*budgetFixture()}, nil).Once()
	svc := services.NewBudgetService(repo)

	code := "gbp"
	budgets, err := svc.ListBudgets(context.Background(), "user-1", dto.ListBudgetsParams{Currency: &code, ActiveOnly: true})

	require.NoError(t, err)
	assert.Len(t, budgets, 1)
	repo.AssertExpectations(t)
}

func TestBudgetService_UpdateBudget_Deactivate(t *testing.T) {
	repo := new(MockBudgetRepository)
	repo.On("FindBudgetByID", mock.Anything, "bud-1").Return(budgetFixture(), nil).Once()
	repo.On("UpdateBudget", mock.Anything, mock.MatchedBy(func(b domain.Budget) bool { return !b.IsActive })).Return(nil).Once()
	svc := services.NewBudgetService(repo, services.WithBudgetClock(clock))

	inactive := false
	budget, err := svc.UpdateBudget(context.Background(), "user-1", "bud-1", dto.UpdateBudgetRequest{IsActive: &inactive})

	require.NoError(t, err)
	assert.False(t, budget.IsActive)
}

func TestBudgetService_GetBudget_OtherUser(t *testing.T) {
	repo := new(MockBudgetRepository)
	repo.On("FindBudgetByID", mock.Anything, "bud-1").Return(budgetFixture(), nil).Once()
	svc := services.NewBudgetService(repo)

	_, err := svc.GetBudget(context.Background(), "someone-else", "bud-1")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
