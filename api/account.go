package api

import (
	"nairatrack/database"
	"nairatrack/middleware"
	"nairatrack/models"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves bank accounts (read-only; accounts are created by
// the sync collaborator, not through this API).
type AccountHandler struct{}

// NewAccountHandler creates the account handler.
func NewAccountHandler() *AccountHandler {
	return &AccountHandler{}
}

// List returns the user's accounts, optionally filtered by type.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param type query string false "account type filter" Enums(savings,current,credit)
// @Success 200 {object} Response{data=[]models.Account}
// @Failure 401 {object} Response
// @Router /api/v1/accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if accountType := c.Query("type"); accountType != "" {
		if !models.ValidAccountType(accountType) {
			BadRequest(c, "invalid account type")
			return
		}
		query = query.Where("type = ?", accountType)
	}

	var accounts []models.Account
	if err := query.Order("created_at ASC").Find(&accounts).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, accounts)
}

// Get returns a single account.
// @Summary Get account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "account id"
// @Success 200 {object} Response{data=models.Account}
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var account models.Account
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&account).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	Success(c, account)
}
