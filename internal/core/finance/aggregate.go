// Package finance holds the pure computations over money records: per-currency
// aggregation, financial health scoring and display formatting. Nothing here
// touches storage or the clock.
package finance

import (
	"sort"
	"time"

	"github.com/SscSPs/life_management_app/internal/core/domain"
)

// Filter narrows records before aggregation. Nil fields do not filter.
// Date bounds are inclusive.
type Filter struct {
	Start    *time.Time
	End      *time.Time
	Currency *domain.Currency
}

func (f Filter) matches(rec domain.MoneyRecord) bool {
	if f.Start != nil && rec.Date.Before(*f.Start) {
		return false
	}
	if f.End != nil && rec.Date.After(*f.End) {
		return false
	}
	if f.Currency != nil && rec.Currency != *f.Currency {
		return false
	}
	return true
}

// AggregateExpenses groups expenses by currency. An empty result means no
// expense matched.
func AggregateExpenses(expenses []domain.Expense, f Filter) map[domain.Currency]domain.ExpenseTotals {
	out := make(map[domain.Currency]domain.ExpenseTotals)
	for _, e := range expenses {
		if !f.matches(e.MoneyRecord) {
			continue
		}
		t := out[e.Currency]
		t.TotalAmount = t.TotalAmount.Add(e.Amount)
		t.TotalPaid = t.TotalPaid.Add(e.PaidAmount)
		t.TotalRemaining = t.TotalAmount.Sub(t.TotalPaid)
		t.Count++
		out[e.Currency] = t
	}
	return out
}

// AggregateIncomes groups incomes by currency.
func AggregateIncomes(incomes []domain.Income, f Filter) map[domain.Currency]domain.IncomeTotals {
	out := make(map[domain.Currency]domain.IncomeTotals)
	for _, i := range incomes {
		if !f.matches(i.MoneyRecord) {
			continue
		}
		t := out[i.Currency]
		t.TotalAmount = t.TotalAmount.Add(i.Amount)
		t.Count++
		out[i.Currency] = t
	}
	return out
}

// AggregateBudgets groups budgets by currency. Budgets are targets rather
// than dated occurrences, so only the currency part of f applies.
func AggregateBudgets(budgets []domain.Budget, f Filter) map[domain.Currency]domain.BudgetTotals {
	out := make(map[domain.Currency]domain.BudgetTotals)
	for _, b := range budgets {
		if f.Currency != nil && b.Currency != *f.Currency {
			continue
		}
		t := out[b.Currency]
		t.TotalAllocated = t.TotalAllocated.Add(b.Amount)
		t.TotalSpent = t.TotalSpent.Add(b.CurrentSpent)
		t.TotalRemaining = t.TotalAllocated.Sub(t.TotalSpent)
		t.Count++
		out[b.Currency] = t
	}
	return out
}

// PeriodTotalsFor assembles the scorer input for one currency. Missing
// entries count as zero.
func PeriodTotalsFor(
	c domain.Currency,
	incomes map[domain.Currency]domain.IncomeTotals,
	expenses map[domain.Currency]domain.ExpenseTotals,
	budgets map[domain.Currency]domain.BudgetTotals,
	windowMonths int,
) domain.PeriodTotals {
	inc := incomes[c]
	exp := expenses[c]
	bud := budgets[c]
	return domain.PeriodTotals{
		Income:          inc.TotalAmount,
		Expenses:        exp.TotalAmount,
		Paid:            exp.TotalPaid,
		BudgetAllocated: bud.TotalAllocated,
		BudgetSpent:     bud.TotalSpent,
		WindowMonths:    windowMonths,
	}
}

// CurrenciesIn returns every currency present in any of the maps, sorted.
func CurrenciesIn(
	incomes map[domain.Currency]domain.IncomeTotals,
	expenses map[domain.Currency]domain.ExpenseTotals,
	budgets map[domain.Currency]domain.BudgetTotals,
) []domain.Currency {
	seen := make(map[domain.Currency]struct{})
	for c := range incomes {
		seen[c] = struct{}{}
	}
	for c := range expenses {
		seen[c] = struct{}{}
	}
	for c := range budgets {
		seen[c] = struct{}{}
	}
	out := make([]domain.Currency, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
