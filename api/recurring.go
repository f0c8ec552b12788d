package api

import (
	"time"

	"nairatrack/database"
	"nairatrack/middleware"
	"nairatrack/models"

	"github.com/gin-gonic/gin"
)

// RecurringHandler serves recurring transaction templates and the upcoming
// bills view.
type RecurringHandler struct{}

// NewRecurringHandler creates the recurring handler.
func NewRecurringHandler() *RecurringHandler {
	return &RecurringHandler{}
}

// CreateRecurringRequest creates a recurring template.
type CreateRecurringRequest struct {
	Name         string  `json:"name" binding:"required,max=255"`
	Icon         string  `json:"icon"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Frequency    string  `json:"frequency" binding:"required,oneof=weekly monthly yearly"`
	NextDate     string  `json:"next_date" binding:"required" example:"2026-09-01"`
	CategoryID   *string `json:"category_id"`
	AccountID    *string `json:"account_id"`
	ReminderDays *int    `json:"reminder_days" binding:"omitempty,gte=0,lte=30"`
}

// UpdateRecurringRequest carries the mutable template fields.
type UpdateRecurringRequest struct {
	Name         *string  `json:"name"`
	Icon         *string  `json:"icon"`
	Amount       *float64 `json:"amount" binding:"omitempty,gt=0"`
	Frequency    *string  `json:"frequency" binding:"omitempty,oneof=weekly monthly yearly"`
	NextDate     *string  `json:"next_date"`
	CategoryID   *string  `json:"category_id"`
	AccountID    *string  `json:"account_id"`
	Status       *string  `json:"status" binding:"omitempty,oneof=active paused"`
	ReminderDays *int     `json:"reminder_days" binding:"omitempty,gte=0,lte=30"`
}

// List returns the user's recurring templates.
// @Summary List recurring transactions
// @Tags recurring
// @Produce json
// @Security BearerAuth
// @Param status query string false "status filter" Enums(active,paused)
// @Success 200 {object} Response{data=[]models.RecurringTransaction}
// @Failure 401 {object} Response
// @Router /api/v1/recurring [get]
func (h *RecurringHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		if status != models.RecurringStatusActive && status != models.RecurringStatusPaused {
			BadRequest(c, "invalid status")
			return
		}
		query = query.Where("status = ?", status)
	}

	var recurring []models.RecurringTransaction
	if err := query.Order("next_date ASC").Find(&recurring).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, recurring)
}

// Create adds a recurring template.
// @Summary Create recurring transaction
// @Tags recurring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRecurringRequest true "template"
// @Success 200 {object} Response{data=models.RecurringTransaction}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /api/v1/recurring [post]
func (h *RecurringHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	nextDate, err := time.ParseInLocation("2006-01-02", req.NextDate, time.Local)
	if err != nil {
		BadRequest(c, "invalid next_date, expected format: 2006-01-02")
		return
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		if !categoryVisible(userID, *req.CategoryID) {
			BadRequest(c, "unknown category")
			return
		}
	}
	if req.AccountID != nil && *req.AccountID != "" {
		var count int64
		database.DB.Model(&models.Account{}).
			Where("id = ? AND user_id = ?", *req.AccountID, userID).
			Count(&count)
		if count == 0 {
			BadRequest(c, "unknown account")
			return
		}
	}

	recurring := models.RecurringTransaction{
		UserID:       userID,
		Name:         req.Name,
		Icon:         req.Icon,
		Amount:       req.Amount,
		Frequency:    req.Frequency,
		NextDate:     nextDate,
		CategoryID:   req.CategoryID,
		AccountID:    req.AccountID,
		Status:       models.RecurringStatusActive,
		ReminderDays: req.ReminderDays,
	}

	if err := database.DB.Create(&recurring).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "create failed"))
		return
	}

	SuccessWithMessage(c, "created", recurring)
}

// Update patches a recurring template. Status flips between active and
// paused here; there is no separate pause endpoint.
// @Summary Update recurring transaction
// @Tags recurring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "recurring id"
// @Param request body UpdateRecurringRequest true "fields"
// @Success 200 {object} Response{data=models.RecurringTransaction}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/recurring/{id} [patch]
func (h *RecurringHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var recurring models.RecurringTransaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&recurring).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	var req UpdateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Frequency != nil {
		updates["frequency"] = *req.Frequency
	}
	if req.NextDate != nil {
		nextDate, err := time.ParseInLocation("2006-01-02", *req.NextDate, time.Local)
		if err != nil {
			BadRequest(c, "invalid next_date, expected format: 2006-01-02")
			return
		}
		updates["next_date"] = nextDate
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			updates["category_id"] = nil
		} else {
			if !categoryVisible(userID, *req.CategoryID) {
				BadRequest(c, "unknown category")
				return
			}
			updates["category_id"] = *req.CategoryID
		}
	}
	if req.AccountID != nil {
		if *req.AccountID == "" {
			updates["account_id"] = nil
		} else {
			var count int64
			database.DB.Model(&models.Account{}).
				Where("id = ? AND user_id = ?", *req.AccountID, userID).
				Count(&count)
			if count == 0 {
				BadRequest(c, "unknown account")
				return
			}
			updates["account_id"] = *req.AccountID
		}
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.ReminderDays != nil {
		updates["reminder_days"] = *req.ReminderDays
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&recurring).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "update failed"))
			return
		}
	}

	database.DB.First(&recurring, "id = ?", recurring.ID)
	Success(c, recurring)
}

// Delete removes a recurring template.
// @Summary Delete recurring transaction
// @Tags recurring
// @Produce json
// @Security BearerAuth
// @Param id path string true "recurring id"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/recurring/{id} [delete]
func (h *RecurringHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var recurring models.RecurringTransaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&recurring).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	if err := database.DB.Delete(&recurring).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "delete failed"))
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}

// Upcoming returns active templates due within the next 30 days plus their
// total.
// @Summary Upcoming recurring transactions
// @Tags recurring
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "list and total_due_30_days"
// @Failure 401 {object} Response
// @Router /api/v1/recurring/upcoming [get]
func (h *RecurringHandler) Upcoming(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	today := time.Now().Format("2006-01-02")
	horizon := time.Now().AddDate(0, 0, 30).Format("2006-01-02")

	var recurring []models.RecurringTransaction
	if err := database.DB.
		Where("user_id = ? AND status = ? AND next_date >= ? AND next_date <= ?",
			userID, models.RecurringStatusActive, today, horizon).
		Order("next_date ASC").
		Find(&recurring).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	var total float64
	for _, r := range recurring {
		total += r.Amount
	}

	Success(c, gin.H{
		"list":              recurring,
		"total_due_30_days": total,
	})
}
