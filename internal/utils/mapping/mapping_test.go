package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUserMapping_NullableColumns(t *testing.T) {
	m := ToModelUser(domain.User{UserID: "u1", AuthProvider: domain.ProviderGoogle, ProviderUserID: "sub"})

	assert.Nil(t, m.PasswordHash)
	assert.Nil(t, m.DefaultCurrency)
	if assert.NotNil(t, m.ProviderUserID) {
		assert.Equal(t, "sub", *m.ProviderUserID)
	}

	back := ToDomainUser(m)
	assert.Equal(t, "", back.PasswordHash)
	assert.Equal(t, domain.ProviderGoogle, back.AuthProvider)
}

func TestExpenseMapping_KeepsRecurrence(t *testing.T) {
	monthly := domain.Monthly
	next := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	budgetID := "b1"
	d := domain.Expense{
		ExpenseID: "e1",
		UserID:    "u1",
		Title:     "Rent",
		Category:  domain.ExpenseHousing,
		MoneyRecord: domain.MoneyRecord{
			Amount: decimal.RequireFromString("950"), Currency: domain.GBP,
			Date: next.AddDate(0, -1, 0), IsRecurring: true, Frequency: &monthly, NextDueDate: &next,
		},
		PaidAmount: decimal.RequireFromString("100"),
		BudgetID:   &budgetID,
	}

	m := ToModelExpense(d)
	if assert.NotNil(t, m.Frequency) {
		assert.Equal(t, "monthly", *m.Frequency)
	}
	assert.Equal(t, d, ToDomainExpense(m))
}

func TestBudgetMapping_AllCategories(t *testing.T) {
	m := ToModelBudget(domain.Budget{BudgetID: "b1", Period: domain.PeriodMonthly})

	assert.Nil(t, m.Category)
	assert.Equal(t, domain.ExpenseCategory(""), ToDomainBudget(m).Category)
}
