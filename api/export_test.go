package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"nairatrack/config"
	"nairatrack/database"
	"nairatrack/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `exports`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// worker not started: the job sits in the queue, the row stays processing
	worker := service.NewExportWorker(database.DB, &config.Config{})

	router := gin.New()
	router.Use(setUserIDMiddleware("user-1"))
	router.POST("/exports", NewExportHandler(worker).Create)

	body := `{"type":"csv"}`
	req := httptest.NewRequest("POST", "/exports", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			Type   string `json:"type"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "csv", resp.Data.Type)
	assert.Equal(t, "processing", resp.Data.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_Create_InvalidType(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	worker := service.NewExportWorker(database.DB, &config.Config{})

	router := gin.New()
	router.Use(setUserIDMiddleware("user-1"))
	router.POST("/exports", NewExportHandler(worker).Create)

	body := `{"type":"pdf"}`
	req := httptest.NewRequest("POST", "/exports", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestExportHandler_Get(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	url := "http://localhost:8080/exports/files/exp-1.csv"
	mock.ExpectQuery("SELECT .* FROM `exports`").
		WithArgs("exp-1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type", "status", "download_url", "expires_at", "file_size", "error", "created_at"}).
			AddRow("exp-1", "user-1", "csv", "done", url, time.Now().Add(24*time.Hour), int64(2048), nil, time.Now()))

	worker := service.NewExportWorker(database.DB, &config.Config{})

	router := gin.New()
	router.Use(setUserIDMiddleware("user-1"))
	router.GET("/exports/:id", NewExportHandler(worker).Get)

	req := httptest.NewRequest("GET", "/exports/exp-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			Status      string  `json:"status"`
			DownloadURL *string `json:"download_url"`
			FileSize    *int64  `json:"file_size"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "done", resp.Data.Status)
	require.NotNil(t, resp.Data.DownloadURL)
	assert.Equal(t, url, *resp.Data.DownloadURL)
	require.NoError(t, mock.ExpectationsWereMet())
}
