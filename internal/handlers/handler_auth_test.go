package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/life_management_app/internal/apperrors"
	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestRegister_Created() {
	suite.users.On("CreateUser", mock.Anything, mock.MatchedBy(func(req dto.CreateUserRequest) bool {
		return req.Username == "alice" && req.Email == "alice@example.com"
	})).Return(&domain.User{UserID: "user-9", Username: "alice", Email: "alice@example.com", AuthProvider: domain.ProviderLocal}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": "alice", "email": "alice@example.com", "name": "Alice", "password": "password123",
	})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Equal("user-9", suite.decode(w)["userID"])
}

func (suite *HandlerTestSuite) TestRegister_Duplicate() {
	suite.users.On("CreateUser", mock.Anything, mock.AnythingOfType("dto.CreateUserRequest")).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": "alice", "email": "alice@example.com", "name": "Alice", "password": "password123",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestRegister_ShortPassword() {
	w := suite.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": "alice", "email": "alice@example.com", "name": "Alice", "password": "short",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.users.AssertNotCalled(suite.T(), "CreateUser", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestLogin_IssuesToken() {
	user := &domain.User{UserID: "user-1", Username: "alice"}
	expires := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	suite.users.On("AuthenticateUser", mock.Anything, "alice", "password123").Return(user, nil).Once()
	suite.tokens.On("GenerateAccessToken", mock.Anything, user).Return("signed-token", expires, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"identifier": "alice", "password": "password123"})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Equal("signed-token", body["token"])
	suite.Equal("2030-01-01T00:00:00Z", body["expiresAt"])
	suite.Equal("1", w.Header().Get("X-RateLimit-Remaining"))
}

func (suite *HandlerTestSuite) TestLogin_BadCredentials() {
	suite.users.On("AuthenticateUser", mock.Anything, "alice", "wrong-pass").
		Return(nil, apperrors.NewUnauthorizedError("invalid credentials")).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"identifier": "alice", "password": "wrong-pass"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.tokens.AssertNotCalled(suite.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestLogin_RateLimited() {
	suite.users.On("AuthenticateUser", mock.Anything, "alice", "wrong-pass").
		Return(nil, apperrors.NewUnauthorizedError("invalid credentials")).Twice()
	creds := map[string]any{"identifier": "alice", "password": "wrong-pass"}

	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodPost, "/api/v1/auth/login", "", creds).Code)
	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodPost, "/api/v1/auth/login", "", creds).Code)
	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", creds)

	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.users.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGoogleLoginURL() {
	suite.google.On("GenerateStateString", mock.Anything).Return("state-123", nil).Once()
	suite.google.On("GetGoogleLoginURL", mock.Anything, "state-123").Return("https://accounts.google.com/o/oauth2/auth?state=state-123").Once()

	w := suite.do(http.MethodGet, "/api/v1/auth/google/login", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Equal("state-123", body["state"])
	suite.Contains(body["url"], "state=state-123")
}

func (suite *HandlerTestSuite) TestExchangeCodeGoogle_UnverifiedEmail() {
	info := &domain.GoogleUserInfo{Subject: "sub-1", Email: "taken@example.com"}
	suite.google.On("ExchangeCode", mock.Anything, "auth-code").Return(info, nil).Once()
	suite.users.On("FindOrCreateGoogleUser", mock.Anything, *info).
		Return(nil, apperrors.NewForbiddenError("google email is not verified")).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/google/exchange-code", "", map[string]any{"code": "auth-code"})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.tokens.AssertNotCalled(suite.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestExchangeCodeGoogle_MissingCode() {
	w := suite.do(http.MethodPost, "/api/v1/auth/google/exchange-code", "", map[string]any{})

	suite.Equal(http.StatusBadRequest, w.Code)
}
