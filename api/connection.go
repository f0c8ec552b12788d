package api

import (
	"time"

	"nairatrack/database"
	"nairatrack/middleware"
	"nairatrack/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ConnectionHandler serves bank connections. Linking a new bank happens
// through the aggregator's widget flow, so there is no create endpoint.
type ConnectionHandler struct{}

// NewConnectionHandler creates the connection handler.
func NewConnectionHandler() *ConnectionHandler {
	return &ConnectionHandler{}
}

// ConnectionView is a connection with its account count.
type ConnectionView struct {
	models.Connection
	AccountsCount int64 `json:"accounts_count"`
}

// List returns the user's bank connections.
// @Summary List connections
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]ConnectionView}
// @Failure 401 {object} Response
// @Router /api/v1/connections [get]
func (h *ConnectionHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var connections []models.Connection
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&connections).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	views := make([]ConnectionView, 0, len(connections))
	for _, conn := range connections {
		var count int64
		database.DB.Model(&models.Account{}).
			Where("connection_id = ?", conn.ID).
			Count(&count)
		views = append(views, ConnectionView{Connection: conn, AccountsCount: count})
	}

	Success(c, views)
}

// Get returns a single connection with its accounts.
// @Summary Get connection
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Param id path string true "connection id"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/connections/{id} [get]
func (h *ConnectionHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var connection models.Connection
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&connection).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	var accounts []models.Account
	database.DB.Where("connection_id = ?", connection.ID).
		Order("created_at ASC").
		Find(&accounts)

	Success(c, gin.H{
		"connection": connection,
		"accounts":   accounts,
	})
}

// Delete unlinks a bank. Accounts and their transactions cascade.
// @Summary Delete connection
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Param id path string true "connection id"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/connections/{id} [delete]
func (h *ConnectionHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var connection models.Connection
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&connection).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	if err := database.DB.Delete(&connection).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "delete failed"))
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}

// Sync requests a refresh from the aggregator. The pull itself runs out of
// band; this endpoint stamps the request and answers with a job reference.
// @Summary Sync connection
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Param id path string true "connection id"
// @Success 200 {object} Response "job_id and status"
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/connections/{id}/sync [post]
func (h *ConnectionHandler) Sync(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var connection models.Connection
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&connection).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	if connection.Status == models.ConnectionStatusDisconnected {
		BadRequest(c, "connection is disconnected")
		return
	}

	// A successful sync request also clears a previous error status
	now := time.Now()
	if err := database.DB.Model(&connection).Updates(map[string]interface{}{
		"status":         models.ConnectionStatusConnected,
		"last_synced_at": now,
	}).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "sync failed"))
		return
	}

	Success(c, gin.H{
		"job_id": uuid.NewString(),
		"status": "processing",
	})
}
