package dto

import (
	"time"

	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/core/finance"
)

// OverviewParams are the query parameters of the financial health endpoint.
type OverviewParams struct {
	Months int `form:"months" binding:"omitempty,min=1,max=60"` // 0 uses the configured window
}

// HealthReportResponse is the scorer output for one currency.
type HealthReportResponse struct {
	Currency        domain.Currency      `json:"currency"`
	TotalScore      int                  `json:"totalScore"`
	Scores          domain.HealthScores  `json:"scores"`
	Metrics         domain.HealthMetrics `json:"metrics"`
	HealthLevel     domain.HealthTier    `json:"healthLevel"`
	Recommendations []string             `json:"recommendations"`
	Totals          HealthTotalsResponse `json:"totals"`
}

// HealthTotalsResponse is the scorer input, echoed back with display strings.
type HealthTotalsResponse struct {
	domain.PeriodTotals
	Net                 string `json:"netBalance"`
	FormattedIncome     string `json:"formattedIncome"`
	FormattedExpenses   string `json:"formattedExpenses"`
	FormattedNetBalance string `json:"formattedNetBalance"`
}

// FinancialOverviewResponse is returned by GET /overview/financial-health.
type FinancialOverviewResponse struct {
	From             time.Time                                `json:"from"`
	To               time.Time                                `json:"to"`
	WindowMonths     int                                      `json:"windowMonths"`
	PrimaryCurrency  domain.Currency                          `json:"primaryCurrency"`
	Health           HealthReportResponse                     `json:"health"`
	HealthByCurrency map[domain.Currency]HealthReportResponse `json:"healthByCurrency"`
	Expenses         ExpenseSummaryResponse                   `json:"expenses"`
	Incomes          IncomeSummaryResponse                    `json:"incomes"`
	Budgets          map[domain.Currency]domain.BudgetTotals  `json:"budgets"`
	Degraded         []string                                 `json:"degraded,omitempty"`
}

func ToHealthReportResponse(r domain.HealthReport) HealthReportResponse {
	net := r.Totals.NetBalance()
	return HealthReportResponse{
		Currency:        r.Currency,
		TotalScore:      r.TotalScore,
		Scores:          r.Scores,
		Metrics:         r.Metrics,
		HealthLevel:     r.HealthLevel,
		Recommendations: r.Recommendations,
		Totals: HealthTotalsResponse{
			PeriodTotals:        r.Totals,
			Net:                 net.StringFixed(2),
			FormattedIncome:     finance.FormatAmount(r.Totals.Income, r.Currency),
			FormattedExpenses:   finance.FormatAmount(r.Totals.Expenses, r.Currency),
			FormattedNetBalance: finance.FormatAmount(net, r.Currency),
		},
	}
}

func ToFinancialOverviewResponse(o *domain.FinancialOverview) FinancialOverviewResponse {
	byCurrency := make(map[domain.Currency]HealthReportResponse, len(o.HealthByCurrency))
	for c, r := range o.HealthByCurrency {
		byCurrency[c] = ToHealthReportResponse(r)
	}
	return FinancialOverviewResponse{
		From:             o.From,
		To:               o.To,
		WindowMonths:     o.WindowMonths,
		PrimaryCurrency:  o.PrimaryCurrency,
		Health:           ToHealthReportResponse(o.Health),
		HealthByCurrency: byCurrency,
		Expenses:         ToExpenseSummaryResponse(o.Expenses),
		Incomes:          ToIncomeSummaryResponse(o.Incomes),
		Budgets:          o.Budgets,
		Degraded:         o.Degraded,
	}
}
