package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/life_management_app/internal/apperrors"
	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func rentExpense() *domain.Expense {
	return &domain.Expense{
		ExpenseID: "exp-1",
		UserID:    testUserID,
		Title:     "Rent",
		Category:  domain.ExpenseHousing,
		MoneyRecord: domain.MoneyRecord{
			Amount:   decimal.NewFromInt(950),
			Currency: domain.GBP,
			Date:     time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func (suite *HandlerTestSuite) TestCreateExpense_Created() {
	suite.expenses.On("CreateExpense", mock.Anything, testUserID, mock.MatchedBy(func(req dto.CreateExpenseRequest) bool {
		return req.Title == "Rent" && req.Amount.Equal(decimal.NewFromInt(950)) && req.Currency == domain.GBP
	})).Return(rentExpense(), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/expenses", testUserID, map[string]any{
		"title":    "Rent",
		"category": "housing",
		"amount":   "950",
		"currency": "GBP",
		"date":     "2024-06-01T00:00:00Z",
	})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Equal("exp-1", body["expenseID"])
	suite.Equal("unpaid", body["paymentStatus"])
	suite.expenses.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateExpense_UnsupportedCurrency() {
	w := suite.do(http.MethodPost, "/api/v1/expenses", testUserID, map[string]any{
		"title": "Rent", "category": "housing", "amount": "950", "currency": "JPY", "date": "2024-06-01T00:00:00Z",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.expenses.AssertNotCalled(suite.T(), "CreateExpense", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestApplyPayment_Overpayment() {
	suite.expenses.On("ApplyPayment", mock.Anything, testUserID, "exp-1", decimal.RequireFromString("1000")).
		Return(nil, apperrors.NewValidationError("payment of 1000.00 exceeds remaining balance 950.00")).Once()

	w := suite.do(http.MethodPost, "/api/v1/expenses/exp-1/payments", testUserID, map[string]any{"amount": "1000"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.decode(w)["error"], "exceeds remaining balance")
}

func (suite *HandlerTestSuite) TestGetExpense_NotFound() {
	suite.expenses.On("GetExpense", mock.Anything, testUserID, "exp-404").
		Return(nil, apperrors.NewNotFoundError("expense", "exp-404")).Once()

	w := suite.do(http.MethodGet, "/api/v1/expenses/exp-404", testUserID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGetExpense_InternalErrorIsHidden() {
	suite.expenses.On("GetExpense", mock.Anything, testUserID, "exp-1").
		Return(nil, assertError("connection refused")).Once()

	w := suite.do(http.MethodGet, "/api/v1/expenses/exp-1", testUserID, nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to retrieve expense", suite.decode(w)["error"])
}

func (suite *HandlerTestSuite) TestListExpenses_PassesPageToken() {
	next := "next-page"
	suite.expenses.On("ListExpenses", mock.Anything, testUserID, mock.MatchedBy(func(p dto.ListParams) bool {
		return p.Limit == 5 && p.NextToken != nil && *p.NextToken == "abc"
	})).Return(&dto.ListExpensesResponse{
		Expenses:  dto.ToListExpenseResponse([]domain.Expense{*rentExpense()}),
		NextToken: &next,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/expenses?limit=5&nextToken=abc", testUserID, nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Equal("next-page", body["nextToken"])
	suite.Len(body["expenses"], 1)
}

func (suite *HandlerTestSuite) TestListExpenses_LimitTooLarge() {
	w := suite.do(http.MethodGet, "/api/v1/expenses?limit=500", testUserID, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestSummarizeExpenses() {
	suite.expenses.On("SummarizeExpenses", mock.Anything, testUserID, mock.MatchedBy(func(p dto.SummaryParams) bool {
		return p.StartDate != nil && p.StartDate.Equal(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)) &&
			p.EndDate == nil && p.Currency != nil && *p.Currency == "GBP"
	})).Return(map[domain.Currency]domain.ExpenseTotals{
		domain.GBP: {TotalAmount: decimal.NewFromInt(100), TotalPaid: decimal.NewFromInt(40), TotalRemaining: decimal.NewFromInt(60), Count: 2},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/expenses/summary?startDate=2024-05-01&currency=GBP", testUserID, nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	totals := suite.decode(w)["totals"].(map[string]any)
	suite.EqualValues(2, totals["GBP"].(map[string]any)["count"])
}

func (suite *HandlerTestSuite) TestMarkPaid() {
	paid := rentExpense()
	paid.MarkFullyPaid(time.Now())
	suite.expenses.On("MarkPaid", mock.Anything, testUserID, "exp-1").Return(paid, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/expenses/exp-1/mark-paid", testUserID, nil)

	suite.Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Equal("paid", body["paymentStatus"])
	suite.EqualValues(100, body["paymentPercentage"])
}

func (suite *HandlerTestSuite) TestAdvanceExpense_NotRecurring() {
	suite.expenses.On("AdvanceRecurrence", mock.Anything, testUserID, "exp-1").
		Return(nil, apperrors.NewValidationError("expense exp-1 is not recurring")).Once()

	w := suite.do(http.MethodPost, "/api/v1/expenses/exp-1/advance", testUserID, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestFlagOverdue() {
	suite.expenses.On("FlagOverdue", mock.Anything, testUserID).Return(3, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/expenses/flag-overdue", testUserID, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.EqualValues(3, suite.decode(w)["flagged"])
}

func (suite *HandlerTestSuite) TestRollRecurringExpenses() {
	suite.expenses.On("RollRecurring", mock.Anything, testUserID).Return(2, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/expenses/roll-recurring", testUserID, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.EqualValues(2, suite.decode(w)["updated"])
}

func (suite *HandlerTestSuite) TestDeleteExpense() {
	suite.expenses.On("DeleteExpense", mock.Anything, testUserID, "exp-1").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/expenses/exp-1", testUserID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.expenses.AssertExpectations(suite.T())
}
