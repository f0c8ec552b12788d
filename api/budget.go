package api

import (
	"time"

	"nairatrack/database"
	"nairatrack/middleware"
	"nairatrack/models"
	"nairatrack/service"

	"github.com/gin-gonic/gin"
)

// BudgetHandler serves budgets. Progress numbers are computed from the
// transaction table on every read, never stored.
type BudgetHandler struct{}

// NewBudgetHandler creates the budget handler.
func NewBudgetHandler() *BudgetHandler {
	return &BudgetHandler{}
}

// BudgetView is a budget with its computed progress and category name.
type BudgetView struct {
	models.Budget
	CategoryName string  `json:"category_name"`
	Spent        float64 `json:"spent"`
	Remaining    float64 `json:"remaining"`
	Percentage   float64 `json:"percentage"`
	Status       string  `json:"status"`
}

// CreateBudgetRequest creates a budget.
type CreateBudgetRequest struct {
	CategoryID string  `json:"category_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Period     string  `json:"period" binding:"required,oneof=weekly monthly yearly"`
	Rollover   bool    `json:"rollover"`
}

// UpdateBudgetRequest carries the mutable budget fields.
type UpdateBudgetRequest struct {
	Amount   *float64 `json:"amount" binding:"omitempty,gt=0"`
	Period   *string  `json:"period" binding:"omitempty,oneof=weekly monthly yearly"`
	Rollover *bool    `json:"rollover"`
}

func toBudgetView(b models.Budget, name string, progress service.BudgetProgress) BudgetView {
	return BudgetView{
		Budget:       b,
		CategoryName: name,
		Spent:        progress.Spent,
		Remaining:    progress.Remaining,
		Percentage:   progress.Percentage,
		Status:       progress.Status,
	}
}

// List returns the user's budgets with current-period progress.
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]BudgetView}
// @Failure 401 {object} Response
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var budgets []models.Budget
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&budgets).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	ids := make([]string, 0, len(budgets))
	for _, b := range budgets {
		ids = append(ids, b.CategoryID)
	}
	names := make(map[string]string, len(ids))
	if len(ids) > 0 {
		var cats []models.Category
		database.DB.Where("id IN ?", ids).Find(&cats)
		for _, cat := range cats {
			names[cat.ID] = cat.Name
		}
	}

	now := time.Now()
	views := make([]BudgetView, 0, len(budgets))
	for i := range budgets {
		progress := service.ComputeBudgetProgress(database.DB, userID, &budgets[i], now)
		views = append(views, toBudgetView(budgets[i], names[budgets[i].CategoryID], progress))
	}

	Success(c, views)
}

// Create adds a budget.
// @Summary Create budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBudgetRequest true "budget"
// @Success 200 {object} Response{data=BudgetView}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	if !categoryVisible(userID, req.CategoryID) {
		BadRequest(c, "unknown category")
		return
	}

	budget := models.Budget{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Period:     req.Period,
		Rollover:   req.Rollover,
	}

	if err := database.DB.Create(&budget).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "create failed"))
		return
	}

	var category models.Category
	database.DB.First(&category, "id = ?", budget.CategoryID)
	progress := service.ComputeBudgetProgress(database.DB, userID, &budget, time.Now())
	SuccessWithMessage(c, "created", toBudgetView(budget, category.Name, progress))
}

// Get returns a single budget with progress.
// @Summary Get budget
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path string true "budget id"
// @Success 200 {object} Response{data=BudgetView}
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/budgets/{id} [get]
func (h *BudgetHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var budget models.Budget
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&budget).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	var category models.Category
	database.DB.First(&category, "id = ?", budget.CategoryID)
	progress := service.ComputeBudgetProgress(database.DB, userID, &budget, time.Now())
	Success(c, toBudgetView(budget, category.Name, progress))
}

// Update patches a budget.
// @Summary Update budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "budget id"
// @Param request body UpdateBudgetRequest true "fields"
// @Success 200 {object} Response{data=BudgetView}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/budgets/{id} [patch]
func (h *BudgetHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var budget models.Budget
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&budget).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	updates := make(map[string]interface{})
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Period != nil {
		updates["period"] = *req.Period
	}
	if req.Rollover != nil {
		updates["rollover"] = *req.Rollover
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&budget).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "update failed"))
			return
		}
	}

	database.DB.First(&budget, "id = ?", budget.ID)
	var category models.Category
	database.DB.First(&category, "id = ?", budget.CategoryID)
	progress := service.ComputeBudgetProgress(database.DB, userID, &budget, time.Now())
	Success(c, toBudgetView(budget, category.Name, progress))
}

// Delete removes a budget.
// @Summary Delete budget
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path string true "budget id"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var budget models.Budget
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&budget).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	if err := database.DB.Delete(&budget).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "delete failed"))
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}

// Progress returns the detailed projection for one budget.
// @Summary Get budget progress detail
// @Description Adds daily average, projected end-of-period total and days remaining on top of the basic progress numbers.
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path string true "budget id"
// @Success 200 {object} Response{data=service.BudgetProgressDetail}
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/budgets/{id}/progress [get]
func (h *BudgetHandler) Progress(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var budget models.Budget
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&budget).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	detail := service.ComputeBudgetProgressDetail(database.DB, userID, &budget, time.Now())
	Success(c, detail)
}
