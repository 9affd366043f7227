package finance

import (
	"time"

	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OverviewInput is everything BuildOverview needs. Records are expected to be
// already scoped to one user.
type OverviewInput struct {
	From, To     time.Time
	WindowMonths int
	// Preferred is the user's default currency, if any.
	Preferred *domain.Currency
	// Fallback is used as primary currency when no other signal exists.
	Fallback domain.Currency
	Expenses []domain.Expense
	Incomes  []domain.Income
	Budgets  []domain.Budget
	Degraded []string
}

// BuildOverview aggregates the records inside [From, To], scores every
// currency present separately and picks the primary currency for the headline
// report. Currencies are never converted or summed together.
func BuildOverview(in OverviewInput) domain.FinancialOverview {
	window := in.WindowMonths
	if window <= 0 {
		window = DefaultWindowMonths
	}

	from, to := in.From, in.To
	filter := Filter{Start: &from, End: &to}
	expenses := AggregateExpenses(in.Expenses, filter)
	incomes := AggregateIncomes(in.Incomes, filter)
	budgets := AggregateBudgets(activeBudgets(in.Budgets), Filter{})

	byCurrency := make(map[domain.Currency]domain.HealthReport)
	for _, c := range CurrenciesIn(incomes, expenses, budgets) {
		report := Score(PeriodTotalsFor(c, incomes, expenses, budgets, window))
		report.Currency = c
		byCurrency[c] = report
	}

	primary := PrimaryCurrency(in.Preferred, in.Fallback, incomes, expenses)
	headline, ok := byCurrency[primary]
	if !ok {
		headline = Score(domain.PeriodTotals{WindowMonths: window})
		headline.Currency = primary
	}

	return domain.FinancialOverview{
		From:             in.From,
		To:               in.To,
		WindowMonths:     window,
		PrimaryCurrency:  primary,
		Health:           headline,
		HealthByCurrency: byCurrency,
		Expenses:         expenses,
		Incomes:          incomes,
		Budgets:          budgets,
		Degraded:         in.Degraded,
	}
}

// PrimaryCurrency picks the headline currency: the preferred one when set,
// else the currency with the largest income, else the largest expense total,
// else fallback. Ties break on currency code.
func PrimaryCurrency(
	preferred *domain.Currency,
	fallback domain.Currency,
	incomes map[domain.Currency]domain.IncomeTotals,
	expenses map[domain.Currency]domain.ExpenseTotals,
) domain.Currency {
	if preferred != nil && preferred.IsValid() {
		return *preferred
	}

	incomeAmounts := make(map[domain.Currency]decimal.Decimal, len(incomes))
	for c, t := range incomes {
		incomeAmounts[c] = t.TotalAmount
	}
	if c, ok := largest(incomeAmounts); ok {
		return c
	}

	expenseAmounts := make(map[domain.Currency]decimal.Decimal, len(expenses))
	for c, t := range expenses {
		expenseAmounts[c] = t.TotalAmount
	}
	if c, ok := largest(expenseAmounts); ok {
		return c
	}
	return fallback
}

func largest(amounts map[domain.Currency]decimal.Decimal) (domain.Currency, bool) {
	var (
		best  domain.Currency
		found bool
	)
	for c, amt := range amounts {
		if !amt.IsPositive() {
			continue
		}
		if !found || amt.GreaterThan(amounts[best]) || (amt.Equal(amounts[best]) && c < best) {
			best, found = c, true
		}
	}
	return best, found
}

func activeBudgets(budgets []domain.Budget) []domain.Budget {
	out := make([]domain.Budget, 0, len(budgets))
	for _, b := range budgets {
		if b.IsActive {
			out = append(out, b)
		}
	}
	return out
}
