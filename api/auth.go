package api

import (
	"nairatrack/database"
	"nairatrack/middleware"
	"nairatrack/models"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the authenticated user's profile.
type AuthHandler struct{}

// NewAuthHandler creates the auth handler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// UpdateProfileRequest carries the mutable profile fields. Absent fields are
// left untouched.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" example:"Ada"`
	LastName  *string `json:"last_name" example:"Obi"`
	Currency  *string `json:"currency" binding:"omitempty,len=3" example:"NGN"`
	Timezone  *string `json:"timezone" example:"Africa/Lagos"`
}

// Me returns the current user's profile.
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User}
// @Failure 401 {object} Response
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	Success(c, user)
}

// UpdateMe updates the current user's profile.
// @Summary Update current user
// @Description Updates first_name, last_name, currency and timezone. Omitted fields keep their value.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "profile fields"
// @Success 200 {object} Response{data=models.User}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /api/v1/auth/me [patch]
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	updates := make(map[string]interface{})
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Currency != nil {
		updates["currency"] = *req.Currency
	}
	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "update failed"))
			return
		}
	}

	database.DB.First(&user, "id = ?", userID)
	Success(c, user)
}
