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

func userRows(id, email string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "auth0_id", "email", "first_name", "last_name", "currency", "timezone", "created_at", "updated_at"}).
		AddRow(id, "auth0|abc", email, "Ada", "Obi", "NGN", "Africa/Lagos", time.Now(), time.Now())
}

func TestAuthHandler_Me(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("user-1").
		WillReturnRows(userRows("user-1", "ada@example.com"))

	router := gin.New()
	router.Use(setUserIDMiddleware("user-1"))
	router.GET("/auth/me", NewAuthHandler().Me)

	req := httptest.NewRequest("GET", "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			Email    string `json:"email"`
			Currency string `json:"currency"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ada@example.com", resp.Data.Email)
	assert.Equal(t, "NGN", resp.Data.Currency)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_UpdateMe(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("user-1").
		WillReturnRows(userRows("user-1", "ada@example.com"))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("user-1").
		WillReturnRows(userRows("user-1", "ada@example.com"))

	router := gin.New()
	router.Use(setUserIDMiddleware("user-1"))
	router.PATCH("/auth/me", NewAuthHandler().UpdateMe)

	body := `{"first_name":"Adaeze","currency":"USD"}`
	req := httptest.NewRequest("PATCH", "/auth/me", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_UpdateMe_BadCurrency(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("user-1").
		WillReturnRows(userRows("user-1", "ada@example.com"))

	router := gin.New()
	router.Use(setUserIDMiddleware("user-1"))
	router.PATCH("/auth/me", NewAuthHandler().UpdateMe)

	body := `{"currency":"NAIRA"}`
	req := httptest.NewRequest("PATCH", "/auth/me", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
