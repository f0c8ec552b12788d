package api

import (
	"time"

	"nairatrack/database"
	"nairatrack/middleware"
	"nairatrack/models"
	"nairatrack/service"

	"github.com/gin-gonic/gin"
)

// TransactionHandler serves transaction reads, categorization and manual
// entries. Imported transactions are written by the sync collaborator.
type TransactionHandler struct{}

// NewTransactionHandler creates the transaction handler.
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// TransactionView is a transaction with its category denormalized for the
// client.
type TransactionView struct {
	models.Transaction
	CategoryName  *string `json:"category_name"`
	CategoryColor *string `json:"category_color"`
}

func toTransactionView(t models.Transaction) TransactionView {
	view := TransactionView{Transaction: t}
	if t.Category != nil {
		view.CategoryName = &t.Category.Name
		view.CategoryColor = &t.Category.Color
	}
	return view
}

func toTransactionViews(txns []models.Transaction) []TransactionView {
	views := make([]TransactionView, 0, len(txns))
	for _, t := range txns {
		views = append(views, toTransactionView(t))
	}
	return views
}

// TransactionListRequest carries the list filters.
type TransactionListRequest struct {
	AccountID  string `form:"account_id"`
	CategoryID string `form:"category_id"`
	Type       string `form:"type"`
	From       string `form:"from"`
	To         string `form:"to"`
	Search     string `form:"search"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

// UpdateTransactionRequest carries the mutable transaction fields.
type UpdateTransactionRequest struct {
	CategoryID  *string `json:"category_id"`
	Notes       *string `json:"notes"`
	IsRecurring *bool   `json:"is_recurring"`
}

// BulkCategorizeRequest assigns one category to many transactions.
type BulkCategorizeRequest struct {
	TransactionIDs []string `json:"transaction_ids" binding:"required,min=1"`
	CategoryID     string   `json:"category_id" binding:"required"`
}

// CreateManualTransactionRequest creates a hand-entered transaction.
type CreateManualTransactionRequest struct {
	AccountID   string  `json:"account_id" binding:"required"`
	Date        string  `json:"date" binding:"required" example:"2026-08-31"`
	Description string  `json:"description" binding:"required"`
	Merchant    string  `json:"merchant_name"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Type        string  `json:"type" binding:"required,oneof=debit credit"`
	CategoryID  *string `json:"category_id"`
	Notes       string  `json:"notes"`
}

// categoryVisible reports whether the category exists and is usable by the
// user (system or owned).
func categoryVisible(userID, categoryID string) bool {
	var count int64
	database.DB.Model(&models.Category{}).
		Where("id = ? AND (is_system = ? OR user_id = ?)", categoryID, true, userID).
		Count(&count)
	return count > 0
}

// List returns a filtered, paginated transaction list.
// @Summary List transactions
// @Description Filters: account_id, category_id, type, from/to (YYYY-MM-DD), search on description. Page past the end returns an empty list.
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param account_id query string false "account filter"
// @Param category_id query string false "category filter"
// @Param type query string false "debit or credit"
// @Param from query string false "start date (2026-01-01)"
// @Param to query string false "end date (2026-12-31)"
// @Param search query string false "description substring"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(50)
// @Success 200 {object} Response{data=PageResponse{list=[]TransactionView}}
// @Failure 401 {object} Response
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 50
	}
	if req.Limit > 100 {
		req.Limit = 100
	}

	query := database.DB.Model(&models.Transaction{}).Where("user_id = ?", userID)

	if req.AccountID != "" {
		query = query.Where("account_id = ?", req.AccountID)
	}
	if req.CategoryID != "" {
		query = query.Where("category_id = ?", req.CategoryID)
	}
	if req.Type != "" {
		query = query.Where("type = ?", req.Type)
	}
	if req.From != "" {
		if from, err := time.ParseInLocation("2006-01-02", req.From, time.Local); err == nil {
			query = query.Where("date >= ?", from.Format("2006-01-02"))
		}
	}
	if req.To != "" {
		if to, err := time.ParseInLocation("2006-01-02", req.To, time.Local); err == nil {
			query = query.Where("date <= ?", to.Format("2006-01-02"))
		}
	}
	if req.Search != "" {
		query = query.Where("description LIKE ?", "%"+req.Search+"%")
	}

	var total int64
	query.Count(&total)

	var txns []models.Transaction
	offset := (req.Page - 1) * req.Limit
	if err := query.Preload("Category").
		Order("date DESC, created_at DESC").
		Offset(offset).Limit(req.Limit).
		Find(&txns).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, NewPageResponse(total, req.Page, req.Limit, toTransactionViews(txns)))
}

// Get returns a single transaction.
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "transaction id"
// @Success 200 {object} Response{data=TransactionView}
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var txn models.Transaction
	if err := database.DB.Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&txn).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	Success(c, toTransactionView(txn))
}

// Update patches category, notes or the recurring flag.
// @Summary Update transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "transaction id"
// @Param request body UpdateTransactionRequest true "fields"
// @Success 200 {object} Response{data=TransactionView}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/transactions/{id} [patch]
func (h *TransactionHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var txn models.Transaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&txn).Error; err != nil {
		NotFound(c, "not found")
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	updates := make(map[string]interface{})
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
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.IsRecurring != nil {
		updates["is_recurring"] = *req.IsRecurring
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&txn).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "update failed"))
			return
		}
	}

	database.DB.Preload("Category").First(&txn, "id = ?", txn.ID)
	Success(c, toTransactionView(txn))
}

// BulkCategorize assigns one category to a batch of the user's transactions
// and reports how many rows changed. Ids owned by other users are skipped
// silently by the ownership filter.
// @Summary Bulk categorize transactions
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BulkCategorizeRequest true "ids and category"
// @Success 200 {object} Response "updated_count"
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /api/v1/transactions/bulk-categorize [post]
func (h *TransactionHandler) BulkCategorize(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req BulkCategorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	if !categoryVisible(userID, req.CategoryID) {
		BadRequest(c, "unknown category")
		return
	}

	result := database.DB.Model(&models.Transaction{}).
		Where("user_id = ? AND id IN ?", userID, req.TransactionIDs).
		Update("category_id", req.CategoryID)
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "update failed"))
		return
	}

	Success(c, gin.H{"updated_count": result.RowsAffected})
}

// CreateManual records a hand-entered transaction. Without an explicit
// category the user's active categorization rules are applied.
// @Summary Create manual transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateManualTransactionRequest true "transaction"
// @Success 200 {object} Response{data=TransactionView}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /api/v1/transactions/manual [post]
func (h *TransactionHandler) CreateManual(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateManualTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	var account models.Account
	if err := database.DB.Where("id = ? AND user_id = ?", req.AccountID, userID).First(&account).Error; err != nil {
		BadRequest(c, "unknown account")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		BadRequest(c, "invalid date, expected format: 2006-01-02")
		return
	}

	categoryID := req.CategoryID
	if categoryID != nil && *categoryID != "" {
		if !categoryVisible(userID, *categoryID) {
			BadRequest(c, "unknown category")
			return
		}
	} else {
		categoryID = service.ApplyRules(database.DB, userID, req.Description, req.Merchant)
	}

	txn := models.Transaction{
		AccountID:    req.AccountID,
		UserID:       userID,
		Date:         date,
		Description:  req.Description,
		MerchantName: req.Merchant,
		Amount:       req.Amount,
		Type:         req.Type,
		CategoryID:   categoryID,
		Notes:        req.Notes,
	}

	if err := database.DB.Create(&txn).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "create failed"))
		return
	}

	database.DB.Preload("Category").First(&txn, "id = ?", txn.ID)
	SuccessWithMessage(c, "created", toTransactionView(txn))
}
