package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/SscSPs/nexkeep/internal/middleware"
	"github.com/gin-gonic/gin"
)

type reimbursementHandler struct {
	reimbursementService portssvc.ReimbursementSvcFacade
}

func newReimbursementHandler(rs portssvc.ReimbursementSvcFacade) *reimbursementHandler {
	return &reimbursementHandler{reimbursementService: rs}
}

// registerReimbursementRoutes registers the owner side of the reimbursement workflow.
func registerReimbursementRoutes(rg *gin.RouterGroup, rs portssvc.ReimbursementSvcFacade) {
	h := newReimbursementHandler(rs)

	reimbursements := rg.Group("/reimbursements")
	{
		reimbursements.GET("", h.listRequests)
		reimbursements.POST("", h.createRequest)
		reimbursements.GET("/:id", h.getRequest)
		reimbursements.PUT("/:id", h.updateRequest)
		reimbursements.DELETE("/:id", h.deleteRequest)
		reimbursements.POST("/:id/pay", h.payRequest)
	}
}

// listRequests godoc
// @Summary List reimbursement requests
// @Tags reimbursements
// @Produce json
// @Param status query string false "pending, approved, rejected, paid or all"
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListReimbursementsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reimbursements [get]
func (h *reimbursementHandler) listRequests(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListReimbursementsParams
	if !bindQuery(c, &params) {
		return
	}
	resp, err := h.reimbursementService.ListRequests(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list reimbursement requests")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createRequest godoc
// @Summary Create a reimbursement request
// @Tags reimbursements
// @Accept json
// @Produce json
// @Param request body dto.CreateReimbursementRequest true "Request"
// @Success 201 {object} domain.ReimbursementRequest
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reimbursements [post]
func (h *reimbursementHandler) createRequest(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateReimbursementRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.reimbursementService.CreateRequest(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create reimbursement request")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// getRequest godoc
// @Summary Get a reimbursement request with its payments
// @Tags reimbursements
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} domain.ReimbursementRequest
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reimbursements/{id} [get]
func (h *reimbursementHandler) getRequest(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	req, err := h.reimbursementService.GetRequest(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve reimbursement request")
		return
	}
	c.JSON(http.StatusOK, req)
}

// updateRequest godoc
// @Summary Update a reimbursement request
// @Tags reimbursements
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body dto.UpdateReimbursementRequest true "Changes"
// @Success 200 {object} domain.ReimbursementRequest
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Status change not allowed"
// @Security BearerAuth
// @Router /reimbursements/{id} [put]
func (h *reimbursementHandler) updateRequest(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateReimbursementRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.reimbursementService.UpdateRequest(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update reimbursement request")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// deleteRequest godoc
// @Summary Delete a reimbursement request
// @Description Refused with 409 once a payment was recorded.
// @Tags reimbursements
// @Param id path string true "Request ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /reimbursements/{id} [delete]
func (h *reimbursementHandler) deleteRequest(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.reimbursementService.DeleteRequest(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete reimbursement request")
		return
	}
	c.Status(http.StatusNoContent)
}

// payRequest godoc
// @Summary Pay a reimbursement request
// @Description Records the payment, writes the matching expense and marks the request paid.
// @Tags reimbursements
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payment body dto.PayReimbursementRequest true "Payment"
// @Success 200 {object} domain.PaymentOutcome
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Request cannot be paid"
// @Security BearerAuth
// @Router /reimbursements/{id}/pay [post]
func (h *reimbursementHandler) payRequest(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.PayReimbursementRequest
	if !bindJSON(c, &req) {
		return
	}
	outcome, err := h.reimbursementService.PayRequest(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to pay reimbursement request")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Reimbursement paid",
		slog.String("request_id", outcome.Request.RequestID),
		slog.String("transaction_id", outcome.Transaction.TransactionID))
	c.JSON(http.StatusOK, outcome)
}

// publicHandler serves the unauthenticated share-link form.
type publicHandler struct {
	shareService         portssvc.ShareTokenSvcFacade
	reimbursementService portssvc.ReimbursementSvcFacade
}

// registerPublicRoutes registers the share-link endpoints. All of them go through limit.
func registerPublicRoutes(r *gin.Engine, services *portssvc.ServiceContainer, limit gin.HandlerFunc, maxUploadBytes int64) {
	h := &publicHandler{shareService: services.ShareToken, reimbursementService: services.Reimbursement}
	u := newUploadHandler(services.Upload, maxUploadBytes)

	public := r.Group("/api/v1/public", limit)
	{
		public.GET("/verify-token", h.verifyToken)
		public.POST("/reimbursements", h.submitRequest)
		public.POST("/upload", u.upload)
	}
}

// verifyToken godoc
// @Summary Check a share token
// @Description Returns the owner shown on the public form.
// @Tags public
// @Produce json
// @Param token query string true "Share token"
// @Success 200 {object} dto.VerifyTokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /public/verify-token [get]
func (h *publicHandler) verifyToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "token is required"})
		return
	}
	owner, err := h.shareService.ResolveShareToken(c.Request.Context(), token)
	if err != nil {
		respondError(c, err, "Failed to verify token")
		return
	}
	c.JSON(http.StatusOK, dto.VerifyTokenResponse{
		Valid: true,
		User:  dto.PublicProfile{Name: owner.DisplayName(), Email: owner.Email},
	})
}

// submitRequest godoc
// @Summary Submit a reimbursement request through a share link
// @Description Files the request for the link owner and emails both parties.
// @Tags public
// @Accept json
// @Produce json
// @Param request body dto.PublicReimbursementRequest true "Request"
// @Success 201 {object} dto.PublicReimbursementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown token"
// @Failure 429 {object} ErrorResponse
// @Router /public/reimbursements [post]
func (h *publicHandler) submitRequest(c *gin.Context) {
	var req dto.PublicReimbursementRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.reimbursementService.SubmitPublicRequest(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to submit reimbursement request")
		return
	}
	c.JSON(http.StatusCreated, dto.PublicReimbursementResponse{
		Success:   true,
		RequestID: created.RequestID,
		Message:   "Votre demande de remboursement a bien été envoyée",
	})
}
