package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/gin-gonic/gin"
)

// directoryHandler serves organisations, clients and articles.
type directoryHandler struct {
	directoryService portssvc.DirectorySvcFacade
}

func newDirectoryHandler(ds portssvc.DirectorySvcFacade) *directoryHandler {
	return &directoryHandler{directoryService: ds}
}

func registerDirectoryRoutes(rg *gin.RouterGroup, ds portssvc.DirectorySvcFacade) {
	h := newDirectoryHandler(ds)

	organisations := rg.Group("/organisations")
	{
		organisations.GET("", h.listOrganisations)
		organisations.POST("", h.createOrganisation)
		organisations.GET("/:id", h.getOrganisation)
		organisations.PUT("/:id", h.updateOrganisation)
		organisations.DELETE("/:id", h.deleteOrganisation)
	}

	clients := rg.Group("/clients")
	{
		clients.GET("", h.listClients)
		clients.POST("", h.createClient)
		clients.GET("/:id", h.getClient)
		clients.PUT("/:id", h.updateClient)
		clients.DELETE("/:id", h.deleteClient)
	}

	articles := rg.Group("/articles")
	{
		articles.GET("", h.listArticles)
		articles.POST("", h.createArticle)
		articles.GET("/:id", h.getArticle)
		articles.PUT("/:id", h.updateArticle)
		articles.DELETE("/:id", h.deleteArticle)
	}
}

// listOrganisations godoc
// @Summary List organisations
// @Tags organisations
// @Produce json
// @Success 200 {array} domain.Organisation
// @Security BearerAuth
// @Router /organisations [get]
func (h *directoryHandler) listOrganisations(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orgs, err := h.directoryService.ListOrganisations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list organisations")
		return
	}
	c.JSON(http.StatusOK, orgs)
}

// createOrganisation godoc
// @Summary Create an organisation
// @Tags organisations
// @Accept json
// @Produce json
// @Param organisation body dto.OrganisationRequest true "Organisation"
// @Success 201 {object} domain.Organisation
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /organisations [post]
func (h *directoryHandler) createOrganisation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.OrganisationRequest
	if !bindJSON(c, &req) {
		return
	}
	org, err := h.directoryService.CreateOrganisation(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create organisation")
		return
	}
	c.JSON(http.StatusCreated, org)
}

// getOrganisation godoc
// @Summary Get an organisation
// @Tags organisations
// @Produce json
// @Param id path string true "Organisation ID"
// @Success 200 {object} domain.Organisation
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organisations/{id} [get]
func (h *directoryHandler) getOrganisation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	org, err := h.directoryService.GetOrganisation(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve organisation")
		return
	}
	c.JSON(http.StatusOK, org)
}

// updateOrganisation godoc
// @Summary Update an organisation
// @Tags organisations
// @Accept json
// @Produce json
// @Param id path string true "Organisation ID"
// @Param organisation body dto.OrganisationRequest true "Organisation"
// @Success 200 {object} domain.Organisation
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organisations/{id} [put]
func (h *directoryHandler) updateOrganisation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.OrganisationRequest
	if !bindJSON(c, &req) {
		return
	}
	org, err := h.directoryService.UpdateOrganisation(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update organisation")
		return
	}
	c.JSON(http.StatusOK, org)
}

// deleteOrganisation godoc
// @Summary Delete an organisation
// @Description Refused with 409 while invoices reference it.
// @Tags organisations
// @Param id path string true "Organisation ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /organisations/{id} [delete]
func (h *directoryHandler) deleteOrganisation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.directoryService.DeleteOrganisation(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete organisation")
		return
	}
	c.Status(http.StatusNoContent)
}

// listClients godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Success 200 {array} domain.Client
// @Security BearerAuth
// @Router /clients [get]
func (h *directoryHandler) listClients(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	clients, err := h.directoryService.ListClients(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list clients")
		return
	}
	c.JSON(http.StatusOK, clients)
}

// createClient godoc
// @Summary Create a client
// @Tags clients
// @Accept json
// @Produce json
// @Param client body dto.ClientRequest true "Client"
// @Success 201 {object} domain.Client
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients [post]
func (h *directoryHandler) createClient(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	client, err := h.directoryService.CreateClient(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, client)
}

// getClient godoc
// @Summary Get a client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} domain.Client
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *directoryHandler) getClient(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	client, err := h.directoryService.GetClient(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve client")
		return
	}
	c.JSON(http.StatusOK, client)
}

// updateClient godoc
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param client body dto.ClientRequest true "Client"
// @Success 200 {object} domain.Client
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *directoryHandler) updateClient(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	client, err := h.directoryService.UpdateClient(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, client)
}

// deleteClient godoc
// @Summary Delete a client
// @Description Refused with 409 while invoices reference it.
// @Tags clients
// @Param id path string true "Client ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *directoryHandler) deleteClient(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.directoryService.DeleteClient(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete client")
		return
	}
	c.Status(http.StatusNoContent)
}

// listArticles godoc
// @Summary List articles
// @Tags articles
// @Produce json
// @Param includeInactive query bool false "Include inactive articles"
// @Success 200 {array} domain.Article
// @Security BearerAuth
// @Router /articles [get]
func (h *directoryHandler) listArticles(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListArticlesParams
	if !bindQuery(c, &params) {
		return
	}
	articles, err := h.directoryService.ListArticles(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list articles")
		return
	}
	c.JSON(http.StatusOK, articles)
}

// createArticle godoc
// @Summary Create an article
// @Tags articles
// @Accept json
// @Produce json
// @Param article body dto.ArticleRequest true "Article"
// @Success 201 {object} domain.Article
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /articles [post]
func (h *directoryHandler) createArticle(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ArticleRequest
	if !bindJSON(c, &req) {
		return
	}
	article, err := h.directoryService.CreateArticle(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create article")
		return
	}
	c.JSON(http.StatusCreated, article)
}

// getArticle godoc
// @Summary Get an article
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} domain.Article
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /articles/{id} [get]
func (h *directoryHandler) getArticle(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	article, err := h.directoryService.GetArticle(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve article")
		return
	}
	c.JSON(http.StatusOK, article)
}

// updateArticle godoc
// @Summary Update an article
// @Tags articles
// @Accept json
// @Produce json
// @Param id path string true "Article ID"
// @Param article body dto.ArticleRequest true "Article"
// @Success 200 {object} domain.Article
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /articles/{id} [put]
func (h *directoryHandler) updateArticle(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ArticleRequest
	if !bindJSON(c, &req) {
		return
	}
	article, err := h.directoryService.UpdateArticle(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update article")
		return
	}
	c.JSON(http.StatusOK, article)
}

// deleteArticle godoc
// @Summary Delete an article
// @Description Invoice items keep their copy of the article data.
// @Tags articles
// @Param id path string true "Article ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /articles/{id} [delete]
func (h *directoryHandler) deleteArticle(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.directoryService.DeleteArticle(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete article")
		return
	}
	c.Status(http.StatusNoContent)
}
