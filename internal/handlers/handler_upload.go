package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/core/services"
	"github.com/SscSPs/nexkeep/internal/middleware"
	"github.com/gin-gonic/gin"
)

// multipartOverhead is the room left for multipart headers and boundaries.
const multipartOverhead = 64 << 10

type uploadHandler struct {
	uploadService portssvc.UploadSvcFacade
	maxBytes      int64
}

func newUploadHandler(us portssvc.UploadSvcFacade, maxBytes int64) *uploadHandler {
	if maxBytes <= 0 {
		maxBytes = services.DefaultMaxUploadBytes
	}
	return &uploadHandler{uploadService: us, maxBytes: maxBytes}
}

func registerUploadRoutes(rg *gin.RouterGroup, us portssvc.UploadSvcFacade, maxBytes int64) {
	h := newUploadHandler(us, maxBytes)
	rg.POST("/upload", h.upload)
}

// upload godoc
// @Summary Upload a receipt or bank details document
// @Description Accepts JPEG, PNG or PDF files in the multipart field "file".
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document"
// @Success 200 {object} domain.StoredFile
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /upload [post]
func (h *uploadHandler) upload(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "File too large"})
			return
		}
		logger.Warn("Missing upload file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No file provided"})
		return
	}
	if fh.Size > h.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "File too large"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unreadable file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unreadable file"})
		return
	}

	stored, err := h.uploadService.Upload(c.Request.Context(), fh.Filename, data)
	if err != nil {
		respondError(c, err, "Failed to store file")
		return
	}
	c.JSON(http.StatusOK, stored)
}
