package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/SscSPs/nexkeep/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves the transaction log and the category catalog.
type ledgerHandler struct {
	ledgerService   portssvc.LedgerSvcFacade
	categoryService portssvc.CategorySvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, cs portssvc.CategorySvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls, categoryService: cs}
}

// registerLedgerRoutes registers transaction and category routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade, cs portssvc.CategorySvcFacade) {
	h := newLedgerHandler(ls, cs)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.POST("", h.createTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.POST("", h.createCategory)
		categories.POST("/seed", h.seedCategories)
		categories.DELETE("/:id", h.deleteCategory)
	}
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the caller's transactions, newest first, each with the budget right after it.
// @Tags transactions
// @Produce json
// @Param type query string false "income, expense or all"
// @Param startDate query string false "Start date (YYYY-MM-DD), inclusive"
// @Param endDate query string false "End date (YYYY-MM-DD), exclusive"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *ledgerHandler) listTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if !bindQuery(c, &params) {
		return
	}
	resp, err := h.ledgerService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createTransaction godoc
// @Summary Record a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *ledgerHandler) createTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	txn, budget, err := h.ledgerService.ApplyTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to record transaction")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction recorded",
		slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.TransactionResponse{Transaction: *txn, NewBudget: budget})
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.DeleteTransactionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *ledgerHandler) deleteTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	budget, err := h.ledgerService.DeleteTransaction(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	c.JSON(http.StatusOK, dto.DeleteTransactionResponse{NewBudget: budget})
}

// listCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} domain.Category
// @Security BearerAuth
// @Router /categories [get]
func (h *ledgerHandler) listCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// createCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} domain.Category
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories [post]
func (h *ledgerHandler) createCategory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.CreateCategory(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Refused with 409 while transactions use the category.
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *ledgerHandler) deleteCategory(c *gin.Context) {
	if err := h.categoryService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete category")
		return
	}
	c.Status(http.StatusNoContent)
}

// seedCategories godoc
// @Summary Insert the default categories
// @Tags categories
// @Produce json
// @Success 200 {object} dto.SeedCategoriesResponse
// @Security BearerAuth
// @Router /categories/seed [post]
func (h *ledgerHandler) seedCategories(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	n, err := h.categoryService.SeedDefaultCategories(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to seed categories")
		return
	}
	c.JSON(http.StatusOK, dto.SeedCategoriesResponse{Inserted: n})
}
