package api

import (
	"nairatrack/database"
	"nairatrack/middleware"
	"nairatrack/models"
	"nairatrack/service"

	"github.com/gin-gonic/gin"
)

// ExportHandler serves data-export jobs. File rendering happens on the
// worker; the handler only creates and reads job rows.
type ExportHandler struct {
	worker *service.ExportWorker
}

// NewExportHandler creates the export handler bound to the running worker.
func NewExportHandler(worker *service.ExportWorker) *ExportHandler {
	return &ExportHandler{worker: worker}
}

// CreateExportRequest starts an export job.
type CreateExportRequest struct {
	Type string `json:"type" binding:"required,oneof=csv xlsx"`
}

// List returns the user's export jobs, newest first.
// @Summary List exports
// @Tags exports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Export}
// @Failure 401 {object} Response
// @Router /api/v1/exports [get]
func (h *ExportHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var exports []models.Export
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&exports).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, exports)
}

// Create enqueues an export job and returns it in processing state.
// @Summary Create export
// @Tags exports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExportRequest true "export format"
// @Success 200 {object} Response{data=models.Export}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /api/v1/exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	export := models.Export{
		UserID: userID,
		Type:   req.Type,
		Status: models.ExportStatusProcessing,
	}

	if err := database.DB.Create(&export).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "create failed"))
		return
	}

	h.worker.Enqueue(export.ID)

	SuccessWithMessage(c, "export started", export)
}

// Get returns one export job; poll it until the status leaves processing.
// @Summary Get export
// @Tags exports
// @Produce json
// @Security BearerAuth
// @Param id path string true "export id"
// @Success 200 {object} Response{data=models.Export}
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/exports/{id} [get]
func (h *ExportHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var export models.Export
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&export).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	Success(c, export)
}
