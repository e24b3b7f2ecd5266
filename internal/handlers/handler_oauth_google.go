package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/SscSPs/nexkeep/internal/middleware"
	"github.com/gin-gonic/gin"
)

// googleOAuthHandler handles the Google sign-in flow. The frontend receives the
// authorization code and posts it back here.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
}

func newGoogleOAuthHandler(
	gs portssvc.GoogleOAuthSvcFacade,
	us portssvc.UserSvcFacade,
	ts portssvc.TokenSvcFacade,
) *googleOAuthHandler {
	return &googleOAuthHandler{googleOAuthService: gs, userService: us, tokenService: ts}
}

// loginURL godoc
// @Summary Google login URL
// @Description Returns the Google consent URL. The optional state is passed through.
// @Tags auth
// @Produce json
// @Param state query string false "Opaque state"
// @Success 200 {object} map[string]string
// @Router /auth/google/login-url [get]
func (h *googleOAuthHandler) loginURL(c *gin.Context) {
	url := h.googleOAuthService.GetGoogleLoginURL(c.Request.Context(), c.Query("state"))
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// exchangeCode godoc
// @Summary Exchange a Google authorization code
// @Description Validates the Google identity, creates or links the user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	var req dto.ExchangeCodeRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	identity, err := h.googleOAuthService.ExchangeCode(ctx, req.Code)
	if err != nil {
		respondError(c, err, "Failed to exchange authorization code")
		return
	}
	user, err := h.userService.CreateOAuthUser(ctx, *identity)
	if err != nil {
		respondError(c, err, "Failed to sign in with Google")
		return
	}
	middleware.GetLoggerFromCtx(ctx).Info("Google sign-in", slog.String("user_id", user.UserID))
	issueToken(c, h.tokenService, user)
}
