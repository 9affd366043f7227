package finance_test

import (
	"testing"
	"time"

	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/core/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func expense(amount, paid string, c domain.Currency, on time.Time) domain.Expense {
	return domain.Expense{
		Title:       "x",
		Category:    domain.ExpenseOther,
		MoneyRecord: domain.MoneyRecord{Amount: dec(amount), Currency: c, Date: on},
		PaidAmount:  dec(paid),
	}
}

func income(amount string, c domain.Currency, on time.Time) domain.Income {
	return domain.Income{
		Source:      "x",
		Category:    domain.IncomeSalary,
		MoneyRecord: domain.MoneyRecord{Amount: dec(amount), Currency: c, Date: on},
	}
}

func TestAggregateExpenses_NeverMixesCurrencies(t *testing.T) {
	records := []domain.Expense{
		expense("100", "40", domain.GBP, day(2024, 1, 5)),
		expense("50.25", "50.25", domain.GBP, day(2024, 1, 6)),
		expense("70", "0", domain.USD, day(2024, 1, 7)),
		expense("30", "10", domain.EUR, day(2024, 1, 8)),
	}

	got := finance.AggregateExpenses(records, finance.Filter{})
	require.Len(t, got, 3)

	gbp := got[domain.GBP]
	assert.True(t, gbp.TotalAmount.Equal(dec("150.25")))
	assert.True(t, gbp.TotalPaid.Equal(dec("90.25")))
	assert.True(t, gbp.TotalRemaining.Equal(dec("60")))
	assert.Equal(t, 2, gbp.Count)

	assert.True(t, got[domain.USD].TotalAmount.Equal(dec("70")))
	assert.True(t, got[domain.USD].TotalRemaining.Equal(dec("70")))
	assert.True(t, got[domain.EUR].TotalRemaining.Equal(dec("20")))
}

func TestAggregateExpenses_Filters(t *testing.T) {
	records := []domain.Expense{
		expense("10", "0", domain.GBP, day(2024, 1, 1)),
		expense("20", "0", domain.GBP, day(2024, 1, 31)),
		expense("40", "0", domain.GBP, day(2024, 2, 1)),
		expense("80", "0", domain.USD, day(2024, 1, 15)),
	}
	start, end := day(2024, 1, 1), day(2024, 1, 31)

	got := finance.AggregateExpenses(records, finance.Filter{Start: &start, End: &end})
	assert.True(t, got[domain.GBP].TotalAmount.Equal(dec("30")), "bounds are inclusive")
	assert.Equal(t, 2, got[domain.GBP].Count)
	assert.Contains(t, got, domain.USD)

	usd := domain.USD
	onlyUSD := finance.AggregateExpenses(records, finance.Filter{Currency: &usd})
	assert.Len(t, onlyUSD, 1)
	assert.True(t, onlyUSD[domain.USD].TotalAmount.Equal(dec("80")))
}

func TestAggregate_EmptyInput(t *testing.T) {
	assert.Empty(t, finance.AggregateExpenses(nil, finance.Filter{}))
	assert.Empty(t, finance.AggregateIncomes(nil, finance.Filter{}))
	assert.Empty(t, finance.AggregateBudgets(nil, finance.Filter{}))
}

func TestAggregateIncomes(t *testing.T) {
	records := []domain.Income{
		income("3000", domain.GBP, day(2024, 1, 25)),
		income("250", domain.GBP, day(2024, 1, 26)),
		income("1000", domain.EUR, day(2024, 1, 27)),
	}
	got := finance.AggregateIncomes(records, finance.Filter{})
	assert.True(t, got[domain.GBP].TotalAmount.Equal(dec("3250")))
	assert.Equal(t, 2, got[domain.GBP].Count)
	assert.Equal(t, 1, got[domain.EUR].Count)
}

func TestAggregateBudgets_IgnoresDates(t *testing.T) {
	budgets := []domain.Budget{
		{Amount: dec("500"), CurrentSpent: dec("200"), Currency: domain.GBP, StartDate: day(2020, 1, 1)},
		{Amount: dec("300"), CurrentSpent: dec("350"), Currency: domain.GBP, StartDate: day(2024, 1, 1)},
	}
	start := day(2024, 1, 1)
	got := finance.AggregateBudgets(budgets, finance.Filter{Start: &start})

	gbp := got[domain.GBP]
	assert.Equal(t, 2, gbp.Count)
	assert.True(t, gbp.TotalAllocated.Equal(dec("800")))
	assert.True(t, gbp.TotalSpent.Equal(dec("550")))
	assert.True(t, gbp.TotalRemaining.Equal(dec("250")))
}

func TestCurrenciesIn_Sorted(t *testing.T) {
	got := finance.CurrenciesIn(
		map[domain.Currency]domain.IncomeTotals{domain.USD: {}},
		map[domain.Currency]domain.ExpenseTotals{domain.GBP: {}, domain.USD: {}},
		map[domain.Currency]domain.BudgetTotals{domain.EUR: {}},
	)
	assert.Equal(t, []domain.Currency{domain.EUR, domain.GBP, domain.USD}, got)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "£1234.50", finance.FormatAmount(dec("1234.5"), domain.GBP))
	assert.Equal(t, "$0.00", finance.FormatAmount(dec("0"), domain.USD))
	assert.Equal(t, "€10.13", finance.FormatAmount(dec("10.125"), domain.EUR))
	assert.Equal(t, "£5.00", finance.FormatAmount(dec("5"), domain.Currency("JPY")))
}
