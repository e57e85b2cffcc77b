package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxUploadBytes bounds the size of an uploaded bank export.
const maxUploadBytes = 10 << 20

// importHandler handles the two-step CSV import.
type importHandler struct {
	importService portssvc.ImportSvcFacade
}

func newImportHandler(is portssvc.ImportSvcFacade) *importHandler {
	return &importHandler{importService: is}
}

// registerImportRoutes registers routes related to CSV imports.
func registerImportRoutes(rg *gin.RouterGroup, importService portssvc.ImportSvcFacade) {
	h := newImportHandler(importService)

	imports := rg.Group("/imports")
	{
		imports.POST("/preview", h.previewImport)
		imports.POST("", h.commitImport)
	}
}

// previewImport godoc
// @Summary Preview a bank export
// @Description Normalizes an uploaded CSV into draft transactions. Nothing is stored.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Bank export"
// @Success 200 {object} dto.ImportPreviewResponse
// @Failure 400 {object} map[string]string "Missing file or malformed export"
// @Failure 500 {object} map[string]string "Failed to preview import"
// @Router /imports/preview [post]
func (h *importHandler) previewImport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		bindError(c, logger, "PreviewImport", err)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer f.Close()

	logger.Info("Received import preview", slog.String("filename", fileHeader.Filename), slog.Int64("size", fileHeader.Size))

	res, err := h.importService.PreviewImport(c.Request.Context(), f)
	if err != nil {
		respondError(c, logger, err, "Failed to preview import")
		return
	}
	c.JSON(http.StatusOK, res)
}

// commitImport godoc
// @Summary Commit confirmed drafts
// @Description Stores drafts one at a time. A failing draft does not undo earlier ones.
// @Tags imports
// @Accept json
// @Produce json
// @Param drafts body dto.CommitImportRequest true "Confirmed drafts"
// @Success 200 {object} dto.CommitImportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to commit import"
// @Router /imports [post]
func (h *importHandler) commitImport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CommitImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "CommitImport", err)
		return
	}

	res, err := h.importService.CommitImport(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to commit import")
		return
	}
	c.JSON(http.StatusOK, res)
}
