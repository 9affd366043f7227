package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/life_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/life_management_app/internal/core/ports/services"
	"github.com/SscSPs/life_management_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) expense(args mock.Arguments) (*domain.Expense, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) GetExpense(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	return m.expense(m.Called(ctx, userID, expenseID))
}
func (m *MockExpenseService) ListExpenses(ctx context.Context, userID string, params dto.ListParams) (*dto.ListExpensesResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListExpensesResponse), args.Error(1)
}
func (m *MockExpenseService) SummarizeExpenses(ctx context.Context, userID string, params dto.SummaryParams) (map[domain.Currency]domain.ExpenseTotals, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Currency]domain.ExpenseTotals), args.Error(1)
}
func (m *MockExpenseService) CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	return m.expense(m.Called(ctx, userID, req))
}
func (m *MockExpenseService) UpdateExpense(ctx context.Context, userID, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	return m.expense(m.Called(ctx, userID, expenseID, req))
}
func (m *MockExpenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	return m.Called(ctx, userID, expenseID).Error(0)
}
func (m *MockExpenseService) ApplyPayment(ctx context.Context, userID, expenseID string, amount decimal.Decimal) (*domain.Expense, error) {
	return m.expense(m.Called(ctx, userID, expenseID, amount))
}
func (m *MockExpenseService) MarkPaid(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	return m.expense(m.Called(ctx, userID, expenseID))
}
func (m *MockExpenseService) MarkUnpaid(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	return m.expense(m.Called(ctx, userID, expenseID))
}
func (m *MockExpenseService) MarkOverdue(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	return m.expense(m.Called(ctx, userID, expenseID))
}
func (m *MockExpenseService) FlagOverdue(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
func (m *MockExpenseService) AdvanceRecurrence(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	return m.expense(m.Called(ctx, userID, expenseID))
}
func (m *MockExpenseService) RollRecurring(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Mock IncomeService ---
type MockIncomeService struct {
	mock.Mock
}

func (m *MockIncomeService) income(args mock.Arguments) (*domain.Income, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}

func (m *MockIncomeService) GetIncome(ctx context.Context, userID, incomeID string) (*domain.Income, error) {
	return m.income(m.Called(ctx, userID, incomeID))
}
func (m *MockIncomeService) ListIncomes(ctx context.Context, userID string, params dto.ListParams) (*dto.ListIncomesResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListIncomesResponse), args.Error(1)
}
func (m *MockIncomeService) SummarizeIncomes(ctx context.Context, userID string, params dto.SummaryParams) (map[domain.Currency]domain.IncomeTotals, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Currency]domain.IncomeTotals), args.Error(1)
}
func (m *MockIncomeService) CreateIncome(ctx context.Context, userID string, req dto.CreateIncomeRequest) (*domain.Income, error) {
	return m.income(m.Called(ctx, userID, req))
}
func (m *MockIncomeService) UpdateIncome(ctx context.Context, userID, incomeID string, req dto.UpdateIncomeRequest) (*domain.Income, error) {
	return m.income(m.Called(ctx, userID, incomeID, req))
}
func (m *MockIncomeService) DeleteIncome(ctx context.Context, userID, incomeID string) error {
	return m.Called(ctx, userID, incomeID).Error(0)
}
func (m *MockIncomeService) AdvanceRecurrence(ctx context.Context, userID, incomeID string) (*domain.Income, error) {
	return m.income(m.Called(ctx, userID, incomeID))
}
func (m *MockIncomeService) RollRecurring(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

var _ portssvc.IncomeSvcFacade = (*MockIncomeService)(nil)

// --- Mock BudgetService ---
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) budget(args mock.Arguments) (*domain.Budget, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetService) GetBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	return m.budget(m.Called(ctx, userID, budgetID))
}
func (m *MockBudgetService) ListBudgets(ctx context.Context, userID string, params dto.ListBudgetsParams) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}
func (m *MockBudgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	return m.budget(m.Called(ctx, userID, req))
}
func (m *MockBudgetService) UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	return m.budget(m.Called(ctx, userID, budgetID, req))
}
func (m *MockBudgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	return m.Called(ctx, userID, budgetID).Error(0)
}
func (m *MockBudgetService) RecordSpend(ctx context.Context, userID, budgetID string, delta decimal.Decimal) (*domain.Budget, error) {
	return m.budget(m.Called(ctx, userID, budgetID, delta))
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

// --- Mock OverviewService ---
type MockOverviewService struct {
	mock.Mock
}

func (m *MockOverviewService) FinancialOverview(ctx context.Context, userID string, months int) (*domain.FinancialOverview, error) {
	args := m.Called(ctx, userID, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialOverview), args.Error(1)
}

var _ portssvc.OverviewSvcFacade = (*MockOverviewService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return m.user(m.Called(ctx, userID))
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	return m.user(m.Called(ctx, req))
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	return m.user(m.Called(ctx, userID, req))
}
func (m *MockUserService) DeleteUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, identifier, password string) (*domain.User, error) {
	return m.user(m.Called(ctx, identifier, password))
}
func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	return m.user(m.Called(ctx, info))
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock GoogleOAuthService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return m.Called(ctx, state).String(0)
}
func (m *MockGoogleOAuthService) ExchangeCode(ctx context.Context, code string) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleUserInfo), args.Error(1)
}

var _ portssvc.GoogleOAuthSvcFacade = (*MockGoogleOAuthService)(nil)
