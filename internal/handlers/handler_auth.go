package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/life_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/life_management_app/internal/core/ports/services"
	"github.com/SscSPs/life_management_app/internal/dto"
	"github.com/SscSPs/life_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// AuthHandler handles registration, password login and Google sign-in.
type AuthHandler struct {
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	googleOAuthService portssvc.GoogleOAuthSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer) *AuthHandler {
	return &AuthHandler{
		userService:        services.User,
		tokenService:       services.Token,
		googleOAuthService: services.GoogleOAuth,
	}
}

// GoogleLoginURLResponse carries the consent URL and the state the frontend must echo back.
type GoogleLoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// registerAuthRoutes sets up the public authentication routes. Login is rate limited per client IP.
func registerAuthRoutes(r *gin.Engine, loginLimiter *limiter.Limiter, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.Login)
		auth.GET("/google/login", h.GoogleLoginURL)
		auth.POST("/google/exchange-code", h.ExchangeCodeGoogle)
	}
}

// Register godoc
// @Summary Register new user
// @Description Creates a local account with a bcrypt-hashed password.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username or email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request body", err)
		return
	}

	newUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User registered", slog.String("user_id", newUser.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// Login godoc
// @Summary User login
// @Description Authenticates by username or email and returns a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		respondError(c, err, "Failed to authenticate")
		return
	}
	h.issueToken(c, user)
}

// GoogleLoginURL godoc
// @Summary Google consent URL
// @Description Returns the Google consent URL and a fresh state value.
// @Tags auth
// @Produce json
// @Success 200 {object} GoogleLoginURLResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLoginURL(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		respondError(c, err, "Failed to start Google sign-in")
		return
	}
	c.JSON(http.StatusOK, GoogleLoginURLResponse{URL: h.googleOAuthService.GetGoogleLoginURL(ctx, state), State: state})
}

// ExchangeCodeGoogle godoc
// @Summary Exchange a Google authorization code
// @Description Verifies the Google identity, finds or creates the user and returns a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.GoogleExchangeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Code or ID token rejected"
// @Failure 403 {object} ErrorResponse "Google email not verified"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *AuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	var req dto.GoogleExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request payload", err)
		return
	}
	ctx := c.Request.Context()

	info, err := h.googleOAuthService.ExchangeCode(ctx, req.Code)
	if err != nil {
		respondError(c, err, "Failed to exchange authorization code")
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(ctx, *info)
	if err != nil {
		respondError(c, err, "Failed to sign in with Google")
		return
	}
	middleware.GetLoggerFromCtx(ctx).Info("Google sign-in succeeded", slog.String("user_id", user.UserID))
	h.issueToken(c, user)
}

func (h *AuthHandler) issueToken(c *gin.Context, user *domain.User) {
	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: dto.ToUserResponse(user)})
}
