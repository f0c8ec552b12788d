package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txnColumns() []string {
	return []string{"id", "account_id", "user_id", "date", "description", "merchant_name", "amount", "type", "category_id", "notes", "is_recurring", "created_at"}
}

func TestTransactionHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `transactions`").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(txnColumns()).
			AddRow("t1", "acc-1", "user-1", time.Now(), "POS Shoprite", "Shoprite", 12500, "debit", nil, "", false, time.Now()).
			AddRow("t2", "acc-1", "user-1", time.Now(), "Salary", "", 500000, "credit", nil, "", false, time.Now()))

	router := gin.New()
	router.Use(setUserIDMiddleware("user-1"))
	router.GET("/transactions", NewTransactionHandler().List)

	req := httptest.NewRequest("GET", "/transactions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			Total   int64             `json:"total"`
			Page    int               `json:"page"`
			Limit   int               `json:"limit"`
			HasMore bool              `json:"has_more"`
			List    []TransactionView `json:"list"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Page)
	assert.Equal(t, 50, resp.Data.Limit)
	assert.False(t, resp.Data.HasMore)
	require.Len(t, resp.Data.List, 2)
	assert.Equal(t, "POS Shoprite", resp.Data.List[0].Description)
	assert.Nil(t, resp.Data.List[0].CategoryName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_List_TypeFilter(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `transactions`").
		WithArgs("user-1", "debit").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs("user-1", "debit").
		WillReturnRows(sqlmock.NewRows(txnColumns()))

	router := gin.New()
	router.Use(setUserIDMiddleware("user-1"))
	router.GET("/transactions", NewTransactionHandler().List)

	req := httptest.NewRequest("GET", "/transactions?type=debit", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Get_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs("missing", "user-1").
		WillReturnRows(sqlmock.NewRows(txnColumns()))

	router := gin.New()
	router.Use(setUserIDMiddleware("user-1"))
	router.GET("/transactions/:id", NewTransactionHandler().Get)

	req := httptest.NewRequest("GET", "/transactions/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_BulkCategorize(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// category visibility check
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `categories`").
		WithArgs("cat-1", true, "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	// only the caller's rows update; a foreign id in the list changes nothing
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `transactions`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware("user-1"))
	router.POST("/transactions/bulk-categorize", NewTransactionHandler().BulkCategorize)

	body := `{"transaction_ids":["t1","t2","someone-elses"],"category_id":"cat-1"}`
	req := httptest.NewRequest("POST", "/transactions/bulk-categorize", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			UpdatedCount int64 `json:"updated_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Data.UpdatedCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_BulkCategorize_UnknownCategory(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `categories`").
		WithArgs("nope", true, "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	router := gin.New()
	router.Use(setUserIDMiddleware("user-1"))
	router.POST("/transactions/bulk-categorize", NewTransactionHandler().BulkCategorize)

	body := `{"transaction_ids":["t1"],"category_id":"nope"}`
	req := httptest.NewRequest("POST", "/transactions/bulk-categorize", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "unknown category")
	require.NoError(t, mock.ExpectationsWereMet())
}
