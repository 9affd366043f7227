package finance

import (
	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultWindowMonths is used when PeriodTotals.WindowMonths is not positive.
const DefaultWindowMonths = 6

var hundred = decimal.NewFromInt(100)

// band maps every value at or above min (strictly above when exclusive) to score.
type band struct {
	min       decimal.Decimal
	exclusive bool
	score     int
}

type bands struct {
	steps    []band
	fallback int
}

func (b bands) score(v decimal.Decimal) int {
	for _, s := range b.steps {
		if s.exclusive && v.GreaterThan(s.min) {
			return s.score
		}
		if !s.exclusive && v.GreaterThanOrEqual(s.min) {
			return s.score
		}
	}
	return b.fallback
}

func atLeast(threshold string, score int) band {
	return band{min: decimal.RequireFromString(threshold), score: score}
}

func above(threshold string, score int) band {
	return band{min: decimal.RequireFromString(threshold), exclusive: true, score: score}
}

var (
	savingsRateBands = bands{
		steps:    []band{atLeast("20", 100), atLeast("15", 85), atLeast("10", 70), atLeast("5", 50), above("0", 30)},
		fallback: 0,
	}
	budgetAdherenceBands = bands{
		steps:    []band{atLeast("90", 100), atLeast("80", 85), atLeast("70", 70), atLeast("60", 50), atLeast("50", 30)},
		fallback: 10,
	}
	paymentRateBands = bands{
		steps:    []band{atLeast("95", 100), atLeast("85", 85), atLeast("75", 70), atLeast("65", 50), atLeast("50", 30)},
		fallback: 10,
	}
	emergencyFundBands = bands{
		steps:    []band{atLeast("6", 100), atLeast("3", 80), atLeast("2", 60), atLeast("1", 40), above("0", 20)},
		fallback: 0,
	}
	cashFlowBands = bands{
		steps:    []band{atLeast("0.3", 100), atLeast("0.2", 85), atLeast("0.1", 70), atLeast("0.05", 50)},
		fallback: 30,
	}
)

// Composite weights. They sum to 1.
var (
	weightSavingsRate       = decimal.RequireFromString("0.25")
	weightBudgetControl     = decimal.RequireFromString("0.20")
	weightPaymentDiscipline = decimal.RequireFromString("0.20")
	weightEmergencyFund     = decimal.RequireFromString("0.20")
	weightCashFlow          = decimal.RequireFromString("0.15")
)

var recommendations = map[domain.HealthTier][]string{
	domain.TierExcellent: {
		"Keep your current saving habits and review budgets each quarter.",
		"Consider moving surplus cash into long-term investments.",
		"Revisit your emergency fund target as your expenses change.",
	},
	domain.TierGood: {
		"Aim to raise your savings rate towards 20% of income.",
		"Tighten the budget categories you regularly overspend in.",
		"Build your emergency fund up to six months of expenses.",
	},
	domain.TierFair: {
		"Review recurring expenses and cancel the ones you no longer use.",
		"Pay outstanding bills on time to avoid late fees.",
		"Set up an automatic transfer into savings on payday.",
	},
	domain.TierPoor: {
		"Create a monthly budget for each spending category.",
		"Prioritise overdue and partially paid expenses.",
		"Start an emergency fund, even with a small monthly amount.",
	},
	domain.TierCritical: {
		"Your expenses exceed your income: cut non-essential spending now.",
		"Contact creditors about overdue payments before they escalate.",
		"Seek free debt advice to build a recovery plan.",
	},
}

// Score computes the health report for a single currency's totals. It is a
// pure function of its input.
func Score(t domain.PeriodTotals) domain.HealthReport {
	window := t.WindowMonths
	if window <= 0 {
		window = DefaultWindowMonths
	}
	t.WindowMonths = window

	net := t.NetBalance()
	metrics := domain.HealthMetrics{
		SavingsRate:     savingsRate(t.Income, t.Expenses),
		BudgetAdherence: budgetAdherence(t.BudgetAllocated, t.BudgetSpent),
		PaymentRate:     paymentRate(t.Paid, t.Expenses),
	}

	scores := domain.HealthScores{
		SavingsRate:       savingsRateBands.score(metrics.SavingsRate),
		BudgetControl:     budgetAdherenceBands.score(metrics.BudgetAdherence),
		PaymentDiscipline: paymentRateBands.score(metrics.PaymentRate),
	}

	switch {
	case t.Expenses.IsPositive():
		monthlyBurn := t.Expenses.Div(decimal.NewFromInt(int64(window)))
		months := net.Div(monthlyBurn)
		metrics.EmergencyFundMonths = &months
		scores.EmergencyFund = emergencyFundBands.score(months)
	case net.IsPositive():
		// No spending at all: the fund never runs out.
		scores.EmergencyFund = 100
	default:
		zero := decimal.Zero
		metrics.EmergencyFundMonths = &zero
		scores.EmergencyFund = 0
	}

	if net.IsPositive() && t.Income.IsPositive() {
		metrics.CashFlowRatio = net.Div(t.Income)
		scores.CashFlow = cashFlowBands.score(metrics.CashFlowRatio)
	} else {
		metrics.CashFlowRatio = decimal.Zero
		scores.CashFlow = 0
	}

	total := composite(scores)
	tier := TierFor(total)
	recs := make([]string, len(recommendations[tier]))
	copy(recs, recommendations[tier])

	return domain.HealthReport{
		TotalScore:      total,
		Scores:          scores,
		Metrics:         metrics,
		HealthLevel:     tier,
		Recommendations: recs,
		Totals:          t,
	}
}

func savingsRate(income, expenses decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return income.Sub(expenses).Div(income).Mul(hundred)
}

func budgetAdherence(allocated, spent decimal.Decimal) decimal.Decimal {
	if !allocated.IsPositive() {
		return hundred
	}
	rate := hundred.Sub(spent.Div(allocated).Mul(hundred))
	if rate.IsNegative() {
		return decimal.Zero
	}
	return rate
}

func paymentRate(paid, expenses decimal.Decimal) decimal.Decimal {
	if !expenses.IsPositive() {
		return hundred
	}
	return paid.Div(expenses).Mul(hundred)
}

func composite(s domain.HealthScores) int {
	sum := decimal.NewFromInt(int64(s.SavingsRate)).Mul(weightSavingsRate).
		Add(decimal.NewFromInt(int64(s.BudgetControl)).Mul(weightBudgetControl)).
		Add(decimal.NewFromInt(int64(s.PaymentDiscipline)).Mul(weightPaymentDiscipline)).
		Add(decimal.NewFromInt(int64(s.EmergencyFund)).Mul(weightEmergencyFund)).
		Add(decimal.NewFromInt(int64(s.CashFlow)).Mul(weightCashFlow))
	return int(sum.Round(0).IntPart())
}

// TierFor maps a composite score to its tier.
func TierFor(score int) domain.HealthTier {
	switch {
	case score >= 85:
		return domain.TierExcellent
	case score >= 70:
		return domain.TierGood
	case score >= 55:
		return domain.TierFair
	case score >= 40:
		return domain.TierPoor
	default:
		return domain.TierCritical
	}
}
