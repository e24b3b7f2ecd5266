package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/SscSPs/nexkeep/internal/middleware"
	"github.com/gin-gonic/gin"
)

type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

// registerInvoiceRoutes registers invoice routes.
func registerInvoiceRoutes(rg *gin.RouterGroup, is portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(is)

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.listInvoices)
		invoices.POST("", h.createInvoice)
		invoices.GET("/next-number", h.nextNumber)
		invoices.GET("/:id", h.getInvoice)
		invoices.PUT("/:id", h.updateInvoice)
		invoices.DELETE("/:id", h.deleteInvoice)
		invoices.GET("/:id/pdf", h.downloadPDF)
	}
}

// listInvoices godoc
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param status query string false "draft, sent, paid or cancelled"
// @Success 200 {array} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListInvoicesParams
	if !bindQuery(c, &params) {
		return
	}
	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponses(invoices))
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Computes the totals and allocates the next invoice number.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Organisation, client or article not found"
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	inv, err := h.invoiceService.BuildInvoice(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create invoice")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invoice created",
		slog.String("invoice_id", inv.InvoiceID), slog.String("number", inv.Number))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(inv))
}

// nextNumber godoc
// @Summary Preview the next invoice number
// @Tags invoices
// @Produce json
// @Success 200 {object} dto.NextInvoiceNumberResponse
// @Security BearerAuth
// @Router /invoices/next-number [get]
func (h *invoiceHandler) nextNumber(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	number, err := h.invoiceService.NextInvoiceNumber(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to compute next invoice number")
		return
	}
	c.JSON(http.StatusOK, dto.NextInvoiceNumberResponse{Number: number})
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	inv, err := h.invoiceService.GetInvoice(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Sending items replaces every existing item and recomputes the totals.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param invoice body dto.UpdateInvoiceRequest true "Changes"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	inv, err := h.invoiceService.UpdateInvoice(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Tags invoices
// @Param id path string true "Invoice ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}

// downloadPDF godoc
// @Summary Download an invoice as PDF
// @Tags invoices
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/pdf [get]
func (h *invoiceHandler) downloadPDF(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	body, filename, err := h.invoiceService.RenderInvoicePDF(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to render invoice")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", body)
}
