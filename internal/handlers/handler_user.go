package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/gin-gonic/gin"
)

// userHandler serves the caller's profile, budget and share link.
type userHandler struct {
	userService   portssvc.UserSvcFacade
	ledgerService portssvc.LedgerSvcFacade
	shareService  portssvc.ShareTokenSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade, ls portssvc.LedgerSvcFacade, ss portssvc.ShareTokenSvcFacade) *userHandler {
	return &userHandler{userService: us, ledgerService: ls, shareService: ss}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade, ls portssvc.LedgerSvcFacade, ss portssvc.ShareTokenSvcFacade) {
	h := newUserHandler(us, ls, ss)

	user := rg.Group("/user")
	{
		user.GET("/me", h.me)
		user.PUT("/password", h.changePassword)
		user.GET("/budget", h.getBudget)
		user.PUT("/budget", h.updateBudget)
		user.GET("/share-token", h.getShareToken)
		user.POST("/share-token/regenerate", h.regenerateShareToken)
	}
}

// me godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /user/me [get]
func (h *userHandler) me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// changePassword godoc
// @Summary Change password
// @Tags users
// @Accept json
// @Param body body dto.ChangePasswordRequest true "Passwords"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /user/password [put]
func (h *userHandler) changePassword(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.userService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondError(c, err, "Failed to change password")
		return
	}
	c.Status(http.StatusNoContent)
}

// getBudget godoc
// @Summary Current budget
// @Description Returns the initial budget and the budget after every recorded transaction.
// @Tags budget
// @Produce json
// @Success 200 {object} dto.BudgetResponse
// @Security BearerAuth
// @Router /user/budget [get]
func (h *userHandler) getBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	budget, err := h.ledgerService.GetBudget(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve budget")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// updateBudget godoc
// @Summary Set the initial budget
// @Tags budget
// @Accept json
// @Produce json
// @Param body body dto.UpdateBudgetRequest true "Initial budget"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /user/budget [put]
func (h *userHandler) updateBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateBudgetRequest
	if !bindJSON(c, &req) {
		return
	}
	budget, err := h.ledgerService.UpdateBudgetInitial(c.Request.Context(), userID, *req.BudgetInitial)
	if err != nil {
		respondError(c, err, "Failed to update budget")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// getShareToken godoc
// @Summary Public reimbursement link
// @Description Returns the caller's share token, creating one on first use.
// @Tags users
// @Produce json
// @Success 200 {object} dto.ShareTokenResponse
// @Security BearerAuth
// @Router /user/share-token [get]
func (h *userHandler) getShareToken(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	token, err := h.shareService.GetOrCreateShareToken(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve share token")
		return
	}
	c.JSON(http.StatusOK, dto.ShareTokenResponse{Token: token, ShareURL: h.shareService.ShareURL(token)})
}

// regenerateShareToken godoc
// @Summary Regenerate the public reimbursement link
// @Description The previous link stops working immediately.
// @Tags users
// @Produce json
// @Success 200 {object} dto.ShareTokenResponse
// @Security BearerAuth
// @Router /user/share-token/regenerate [post]
func (h *userHandler) regenerateShareToken(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	token, err := h.shareService.RegenerateShareToken(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to regenerate share token")
		return
	}
	c.JSON(http.StatusOK, dto.ShareTokenResponse{Token: token, ShareURL: h.shareService.ShareURL(token)})
}
