package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/SscSPs/nexkeep/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

func newAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *authHandler {
	return &authHandler{userService: us, tokenService: ts}
}

// registerAuthRoutes sets up the routes for authentication. Credential
// endpoints go through limit.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer, limit gin.HandlerFunc) {
	h := newAuthHandler(services.User, services.Token)
	g := newGoogleOAuthHandler(services.GoogleOAuth, services.User, services.Token)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", limit, h.login)
		auth.POST("/register", limit, h.register)
		auth.GET("/google/login-url", g.loginURL)
		auth.POST("/google/exchange-code", limit, g.exchangeCode)
	}
}

// login godoc
// @Summary User login
// @Description Authenticates a user with email and password and returns a JWT token.
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
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to authenticate")
		return
	}
	issueToken(c, h.tokenService, user)
}

// register godoc
// @Summary Register new user
// @Description Creates a local account with an optional initial budget.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func issueToken(c *gin.Context, ts portssvc.TokenSvcFacade, user *domain.User) {
	token, expiresAt, err := ts.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to sign JWT token",
			slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt.Unix()})
}
