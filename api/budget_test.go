package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func budgetRows(id, userID, categoryID string, amount float64, period string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "category_id", "amount", "period", "rollover", "created_at"}).
		AddRow(id, userID, categoryID, amount, period, false, time.Now())
}

func TestBudgetHandler_Get(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WithArgs("budget-1", "user-1").
		WillReturnRows(budgetRows("budget-1", "user-1", "cat-1", 50000, "monthly"))

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs("cat-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_system"}).
			AddRow("cat-1", "Food & Dining", true))

	// spend so far this period
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(45000))

	router := gin.New()
	router.Use(setUserIDMiddleware("user-1"))
	router.GET("/budgets/:id", NewBudgetHandler().Get)

	req := httptest.NewRequest("GET", "/budgets/budget-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data BudgetView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Food & Dining", resp.Data.CategoryName)
	assert.Equal(t, 45000.0, resp.Data.Spent)
	assert.Equal(t, 5000.0, resp.Data.Remaining)
	assert.InDelta(t, 90.0, resp.Data.Percentage, 0.001)
	assert.Equal(t, "critical", resp.Data.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetHandler_Get_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WithArgs("missing", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{}))

	router := gin.New()
	router.Use(setUserIDMiddleware("user-1"))
	router.GET("/budgets/:id", NewBudgetHandler().Get)

	req := httptest.NewRequest("GET", "/budgets/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetHandler_Progress(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WithArgs("budget-1", "user-1").
		WillReturnRows(budgetRows("budget-1", "user-1", "cat-1", 30000, "monthly"))

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(15000))

	router := gin.New()
	router.Use(setUserIDMiddleware("user-1"))
	router.GET("/budgets/:id/progress", NewBudgetHandler().Progress)

	req := httptest.NewRequest("GET", "/budgets/budget-1/progress", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			Spent          float64 `json:"spent"`
			DailyAverage   float64 `json:"daily_average"`
			ProjectedTotal float64 `json:"projected_total"`
			DaysRemaining  int     `json:"days_remaining"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 15000.0, resp.Data.Spent)
	assert.Greater(t, resp.Data.DailyAverage, 0.0)
	assert.Greater(t, resp.Data.ProjectedTotal, 0.0)
	require.NoError(t, mock.ExpectationsWereMet())
}
