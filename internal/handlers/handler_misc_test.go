package handlers_test

import (
	"errors"
	"net/http"
	"time"

	"github.com/SscSPs/life_management_app/internal/apperrors"
	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func assertError(msg string) error { return errors.New(msg) }

func (suite *HandlerTestSuite) TestCreateIncome_Created() {
	suite.incomes.On("CreateIncome", mock.Anything, testUserID, mock.MatchedBy(func(req dto.CreateIncomeRequest) bool {
		return req.Source == "Salary" && req.IsRecurring && req.Frequency != nil && *req.Frequency == domain.Monthly
	})).Return(&domain.Income{
		IncomeID: "inc-1",
		Source:   "Salary",
		Category: domain.IncomeSalary,
		MoneyRecord: domain.MoneyRecord{
			Amount: decimal.NewFromInt(3000), Currency: domain.EUR, Date: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		},
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/incomes", testUserID, map[string]any{
		"source":      "Salary",
		"category":    "salary",
		"amount":      3000,
		"currency":    "EUR",
		"date":        "2024-06-01T00:00:00Z",
		"isRecurring": true,
		"frequency":   "monthly",
	})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Equal("inc-1", suite.decode(w)["incomeID"])
}

func (suite *HandlerTestSuite) TestCreateIncome_UnknownFrequency() {
	w := suite.do(http.MethodPost, "/api/v1/incomes", testUserID, map[string]any{
		"source": "Salary", "category": "salary", "amount": 3000, "currency": "EUR",
		"date": "2024-06-01T00:00:00Z", "isRecurring": true, "frequency": "daily",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestRecordSpend_OverBudget() {
	suite.budgets.On("RecordSpend", mock.Anything, testUserID, "bud-1", decimal.RequireFromString("150")).
		Return(&domain.Budget{
			BudgetID:     "bud-1",
			Name:         "Groceries",
			Amount:       decimal.NewFromInt(400),
			CurrentSpent: decimal.NewFromInt(450),
			Currency:     domain.GBP,
			Period:       domain.PeriodMonthly,
			IsActive:     true,
		}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/budgets/bud-1/spend", testUserID, map[string]any{"amount": "150"})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Equal(true, body["isOverBudget"])
	suite.Equal("-50", body["remaining"])
}

func (suite *HandlerTestSuite) TestListBudgets_ActiveOnly() {
	suite.budgets.On("ListBudgets", mock.Anything, testUserID, mock.MatchedBy(func(p dto.ListBudgetsParams) bool {
		return p.ActiveOnly && p.Currency == nil
	})).Return([]domain.Budget{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/budgets?activeOnly=true", testUserID, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Empty(suite.decode(w)["budgets"])
}

func (suite *HandlerTestSuite) TestFinancialHealth_MonthsParam() {
	suite.overview.On("FinancialOverview", mock.Anything, testUserID, 3).Return(&domain.FinancialOverview{
		WindowMonths:    3,
		PrimaryCurrency: domain.GBP,
		Health:          domain.HealthReport{Currency: domain.GBP, TotalScore: 96, HealthLevel: domain.TierExcellent},
		Degraded:        []string{"budgets"},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/overview/financial-health?months=3", testUserID, nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.EqualValues(3, body["windowMonths"])
	suite.EqualValues(96, body["health"].(map[string]any)["totalScore"])
	suite.Equal([]any{"budgets"}, body["degraded"])
}

func (suite *HandlerTestSuite) TestFinancialHealth_DefaultWindow() {
	suite.overview.On("FinancialOverview", mock.Anything, testUserID, 0).Return(&domain.FinancialOverview{WindowMonths: 6}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/overview/financial-health", testUserID, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.overview.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestFinancialHealth_WindowOutOfRange() {
	w := suite.do(http.MethodGet, "/api/v1/overview/financial-health?months=99", testUserID, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.overview.AssertNotCalled(suite.T(), "FinancialOverview", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetMe() {
	gbp := domain.GBP
	suite.users.On("GetUserByID", mock.Anything, testUserID).
		Return(&domain.User{UserID: testUserID, Username: "alice", DefaultCurrency: &gbp}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/users/me", testUserID, nil)

	suite.Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Equal("alice", body["username"])
	suite.Equal("GBP", body["defaultCurrency"])
}

func (suite *HandlerTestSuite) TestUpdateMe_InvalidCurrency() {
	w := suite.do(http.MethodPut, "/api/v1/users/me", testUserID, map[string]any{"defaultCurrency": "XYZ"})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteMe() {
	suite.users.On("DeleteUser", mock.Anything, testUserID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/users/me", testUserID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteMe_AlreadyGone() {
	suite.users.On("DeleteUser", mock.Anything, testUserID).Return(apperrors.NewNotFoundError("user", testUserID)).Once()

	w := suite.do(http.MethodDelete, "/api/v1/users/me", testUserID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}
