package api

import (
	"errors"
	"time"

	"nairatrack/database"
	"nairatrack/middleware"
	"nairatrack/models"
	"nairatrack/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GoalHandler serves savings goals and their contribution ledger.
type GoalHandler struct{}

// NewGoalHandler creates the goal handler.
func NewGoalHandler() *GoalHandler {
	return &GoalHandler{}
}

// GoalView is a goal with its computed completion percentage.
type GoalView struct {
	models.Goal
	Percentage float64 `json:"percentage"`
}

// CreateGoalRequest creates a goal.
type CreateGoalRequest struct {
	Name         string  `json:"name" binding:"required,max=255"`
	Emoji        string  `json:"emoji"`
	TargetAmount float64 `json:"target_amount" binding:"required,gt=0"`
	TargetDate   string  `json:"target_date" example:"2027-06-01"`
}

// UpdateGoalRequest carries the mutable goal fields.
type UpdateGoalRequest struct {
	Name         *string  `json:"name"`
	Emoji        *string  `json:"emoji"`
	TargetAmount *float64 `json:"target_amount" binding:"omitempty,gt=0"`
	TargetDate   *string  `json:"target_date"`
}

// ContributeRequest adds money to a goal.
type ContributeRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Date   string  `json:"date" example:"2026-08-31"`
}

func toGoalView(g models.Goal) GoalView {
	return GoalView{Goal: g, Percentage: g.Percentage()}
}

// List returns the user's goals.
// @Summary List goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]GoalView}
// @Failure 401 {object} Response
// @Router /api/v1/goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var goals []models.Goal
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&goals).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, toGoalView(g))
	}
	Success(c, views)
}

// Create adds a goal.
// @Summary Create goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGoalRequest true "goal"
// @Success 200 {object} Response{data=GoalView}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /api/v1/goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	goal := models.Goal{
		UserID:       userID,
		Name:         req.Name,
		Emoji:        req.Emoji,
		TargetAmount: req.TargetAmount,
		Status:       models.GoalStatusActive,
	}
	if req.TargetDate != "" {
		date, err := time.ParseInLocation("2006-01-02", req.TargetDate, time.Local)
		if err != nil {
			BadRequest(c, "invalid target_date, expected format: 2006-01-02")
			return
		}
		goal.TargetDate = &date
	}

	if err := database.DB.Create(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "create failed"))
		return
	}

	SuccessWithMessage(c, "created", toGoalView(goal))
}

// Get returns a single goal with its contributions.
// @Summary Get goal
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "goal id"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/goals/{id} [get]
func (h *GoalHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	var contributions []models.GoalContribution
	database.DB.Where("goal_id = ?", goal.ID).
		Order("date DESC, created_at DESC").
		Find(&contributions)

	Success(c, gin.H{
		"goal":          toGoalView(goal),
		"contributions": contributions,
	})
}

// Update patches a goal.
// @Summary Update goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "goal id"
// @Param request body UpdateGoalRequest true "fields"
// @Success 200 {object} Response{data=GoalView}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/goals/{id} [patch]
func (h *GoalHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Emoji != nil {
		updates["emoji"] = *req.Emoji
	}
	if req.TargetAmount != nil {
		updates["target_amount"] = *req.TargetAmount
	}
	if req.TargetDate != nil {
		if *req.TargetDate == "" {
			updates["target_date"] = nil
		} else {
			date, err := time.ParseInLocation("2006-01-02", *req.TargetDate, time.Local)
			if err != nil {
				BadRequest(c, "invalid target_date, expected format: 2006-01-02")
				return
			}
			updates["target_date"] = date
		}
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&goal).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "update failed"))
			return
		}
	}

	database.DB.First(&goal, "id = ?", goal.ID)
	Success(c, toGoalView(goal))
}

// Delete removes a goal and its contributions.
// @Summary Delete goal
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "goal id"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	if err := database.DB.Delete(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "delete failed"))
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}

// Contribute appends to the goal's ledger and advances the stored amount in
// one transaction. A completed goal rejects further contributions.
// @Summary Contribute to goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "goal id"
// @Param request body ContributeRequest true "amount and optional date"
// @Success 200 {object} Response{data=GoalView}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/goals/{id}/contribute [post]
func (h *GoalHandler) Contribute(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			BadRequest(c, "invalid date, expected format: 2006-01-02")
			return
		}
		date = parsed
	}

	goal, err := service.Contribute(database.DB, userID, id, req.Amount, date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoalCompleted):
			BadRequest(c, "goal already completed")
		case errors.Is(err, gorm.ErrRecordNotFound):
			NotFound(c, "not found")
		default:
			InternalError(c, SafeErrorMessage(err, "contribution failed"))
		}
		return
	}

	Success(c, toGoalView(*goal))
}
