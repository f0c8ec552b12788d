package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"nairatrack/config"
	"nairatrack/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth())
	r.GET("/me", func(c *gin.Context) {
		c.JSON(200, gin.H{"user_id": GetCurrentUserID(c)})
	})
	return r
}

func TestAuth_DevMode(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	oldCfg := authCfg
	authCfg = &config.AuthConfig{DevMode: true}
	defer func() { authCfg = oldCfg }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(DevUserEmail).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "first_name", "last_name", "currency", "timezone", "created_at", "updated_at"}).
			AddRow("user-123", DevUserEmail, "Test", "User", "NGN", "Africa/Lagos", time.Now(), time.Now()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	authRouter().ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "user-123")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuth_MissingToken(t *testing.T) {
	oldCfg := authCfg
	authCfg = &config.AuthConfig{DevMode: false, Domain: "example.auth0.com"}
	defer func() { authCfg = oldCfg }()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	authRouter().ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "missing bearer token")
}

func TestAuth_MalformedHeader(t *testing.T) {
	oldCfg := authCfg
	authCfg = &config.AuthConfig{DevMode: false, Domain: "example.auth0.com"}
	defer func() { authCfg = oldCfg }()

	for _, header := range []string{"Token abc", "Bearer", "Bearer "} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", header)
		authRouter().ServeHTTP(w, req)

		assert.Equal(t, 401, w.Code, "header %q", header)
		assert.Contains(t, w.Body.String(), "malformed authorization header")
	}
}

func TestGetCurrentUserID_Unset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", GetCurrentUserID(c))
}
