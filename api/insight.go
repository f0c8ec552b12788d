package api

import (
	"nairatrack/database"
	"nairatrack/middleware"
	"nairatrack/models"

	"github.com/gin-gonic/gin"
)

// InsightHandler serves generated insights. Rows are produced by the insight
// generator; dismissal is the only mutation exposed here.
type InsightHandler struct{}

// NewInsightHandler creates the insight handler.
func NewInsightHandler() *InsightHandler {
	return &InsightHandler{}
}

// List returns the user's undismissed insights, newest first.
// @Summary List insights
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Insight}
// @Failure 401 {object} Response
// @Router /api/v1/insights [get]
func (h *InsightHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var insights []models.Insight
	if err := database.DB.
		Where("user_id = ? AND dismissed = ?", userID, false).
		Order("created_at DESC").
		Find(&insights).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, insights)
}

// Dismiss hides an insight permanently.
// @Summary Dismiss insight
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Param id path string true "insight id"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/insights/{id}/dismiss [post]
func (h *InsightHandler) Dismiss(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var insight models.Insight
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&insight).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	if err := database.DB.Model(&insight).Update("dismissed", true).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "update failed"))
		return
	}

	SuccessWithMessage(c, "dismissed", nil)
}
