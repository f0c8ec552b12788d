package api

import (
	"nairatrack/database"
	"nairatrack/middleware"
	"nairatrack/models"

	"github.com/gin-gonic/gin"
)

// CategoryRuleHandler serves auto-categorization rules.
type CategoryRuleHandler struct{}

// NewCategoryRuleHandler creates the rule handler.
func NewCategoryRuleHandler() *CategoryRuleHandler {
	return &CategoryRuleHandler{}
}

// CategoryRuleView is a rule with its category name attached.
type CategoryRuleView struct {
	models.CategoryRule
	CategoryName string `json:"category_name"`
}

// CreateCategoryRuleRequest creates a rule.
type CreateCategoryRuleRequest struct {
	MatchType  string `json:"match_type" binding:"required,oneof=contains starts_with exact"`
	Pattern    string `json:"pattern" binding:"required,max=255"`
	CategoryID string `json:"category_id" binding:"required"`
}

// UpdateCategoryRuleRequest carries the mutable rule fields.
type UpdateCategoryRuleRequest struct {
	MatchType  *string `json:"match_type" binding:"omitempty,oneof=contains starts_with exact"`
	Pattern    *string `json:"pattern" binding:"omitempty,max=255"`
	CategoryID *string `json:"category_id"`
	IsActive   *bool   `json:"is_active"`
}

func toRuleView(db []models.CategoryRule, names map[string]string) []CategoryRuleView {
	views := make([]CategoryRuleView, 0, len(db))
	for _, r := range db {
		views = append(views, CategoryRuleView{CategoryRule: r, CategoryName: names[r.CategoryID]})
	}
	return views
}

// List returns the user's rules.
// @Summary List category rules
// @Tags category-rules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]CategoryRuleView}
// @Failure 401 {object} Response
// @Router /api/v1/category-rules [get]
func (h *CategoryRuleHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var rules []models.CategoryRule
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rules).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	ids := make([]string, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, r.CategoryID)
	}
	names := make(map[string]string, len(ids))
	if len(ids) > 0 {
		var cats []models.Category
		database.DB.Where("id IN ?", ids).Find(&cats)
		for _, cat := range cats {
			names[cat.ID] = cat.Name
		}
	}

	Success(c, toRuleView(rules, names))
}

// Create adds a rule.
// @Summary Create category rule
// @Tags category-rules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCategoryRuleRequest true "rule"
// @Success 200 {object} Response{data=models.CategoryRule}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /api/v1/category-rules [post]
func (h *CategoryRuleHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateCategoryRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	if !categoryVisible(userID, req.CategoryID) {
		BadRequest(c, "unknown category")
		return
	}

	rule := models.CategoryRule{
		UserID:     userID,
		MatchType:  req.MatchType,
		Pattern:    req.Pattern,
		CategoryID: req.CategoryID,
		IsActive:   true,
	}

	if err := database.DB.Create(&rule).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "create failed"))
		return
	}

	SuccessWithMessage(c, "created", rule)
}

// Update patches a rule.
// @Summary Update category rule
// @Tags category-rules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "rule id"
// @Param request body UpdateCategoryRuleRequest true "fields"
// @Success 200 {object} Response{data=models.CategoryRule}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/category-rules/{id} [patch]
func (h *CategoryRuleHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var rule models.CategoryRule
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&rule).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	var req UpdateCategoryRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	updates := make(map[string]interface{})
	if req.MatchType != nil {
		updates["match_type"] = *req.MatchType
	}
	if req.Pattern != nil {
		updates["pattern"] = *req.Pattern
	}
	if req.CategoryID != nil {
		if !categoryVisible(userID, *req.CategoryID) {
			BadRequest(c, "unknown category")
			return
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&rule).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "update failed"))
			return
		}
	}

	database.DB.First(&rule, "id = ?", rule.ID)
	Success(c, rule)
}

// Delete removes a rule.
// @Summary Delete category rule
// @Tags category-rules
// @Produce json
// @Security BearerAuth
// @Param id path string true "rule id"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/category-rules/{id} [delete]
func (h *CategoryRuleHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var rule models.CategoryRule
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&rule).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	if err := database.DB.Delete(&rule).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "delete failed"))
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}
