package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"nairatrack/config"
	"nairatrack/database"
	"nairatrack/models"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// DevUserEmail identifies the fixed user authenticated in dev mode.
const DevUserEmail = "test@nairatrack.com"

var (
	authCfg *config.AuthConfig
	jwks    *keyfunc.JWKS
)

// InitAuth prepares token verification. Outside dev mode it fetches and
// caches the Auth0 JWKS; keys refresh in the background.
func InitAuth(cfg *config.Config) error {
	authCfg = &cfg.Auth
	if cfg.Auth.DevMode {
		log.Println("auth: dev mode enabled, token verification is OFF")
		return nil
	}
	if cfg.Auth.Domain == "" {
		return errors.New("auth: domain is required when dev_mode is off")
	}

	jwksURL := fmt.Sprintf("https://%s/.well-known/jwks.json", cfg.Auth.Domain)
	var err error
	jwks, err = keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Printf("auth: jwks refresh failed: %v", err)
		},
	})
	if err != nil {
		return fmt.Errorf("auth: fetch jwks from %s: %w", jwksURL, err)
	}
	return nil
}

// Auth verifies the bearer token and resolves the calling user. An unknown
// subject gets a user row created on first request. The 401 message
// distinguishes expired, malformed and otherwise invalid tokens.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authCfg != nil && authCfg.DevMode {
			user, err := devUser()
			if err != nil {
				abortUnauthorized(c, "authentication failed")
				return
			}
			c.Set("userID", user.ID)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, "malformed authorization header")
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(parts[1], claims, jwks.Keyfunc,
			jwt.WithValidMethods([]string{"RS256"}),
			jwt.WithAudience(authCfg.Audience),
			jwt.WithIssuer(fmt.Sprintf("https://%s/", authCfg.Domain)),
		)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				abortUnauthorized(c, "token expired")
			case errors.Is(err, jwt.ErrTokenMalformed):
				abortUnauthorized(c, "malformed token")
			default:
				abortUnauthorized(c, "invalid token")
			}
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			abortUnauthorized(c, "invalid token")
			return
		}

		user, err := resolveUser(sub, claims)
		if err != nil {
			abortUnauthorized(c, "authentication failed")
			return
		}

		c.Set("userID", user.ID)
		c.Next()
	}
}

// GetCurrentUserID returns the authenticated user's id, empty when the
// request is unauthenticated.
func GetCurrentUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"code":    401,
		"message": message,
	})
	c.Abort()
}

// resolveUser finds the user row for an Auth0 subject, creating it on first
// sight and keeping the stored email in sync with the token.
func resolveUser(sub string, claims jwt.MapClaims) (*models.User, error) {
	email, _ := claims["email"].(string)

	var user models.User
	err := database.DB.Where("auth0_id = ?", sub).First(&user).Error
	if err == nil {
		if email != "" && user.Email != email {
			if err := database.DB.Model(&user).Update("email", email).Error; err != nil {
				return nil, err
			}
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	firstName, _ := claims["given_name"].(string)
	lastName, _ := claims["family_name"].(string)
	user = models.User{
		Auth0ID:   &sub,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Currency:  "NGN",
		Timezone:  "Africa/Lagos",
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func devUser() (*models.User, error) {
	var user models.User
	err := database.DB.Where("email = ?", DevUserEmail).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	user = models.User{
		Email:     DevUserEmail,
		FirstName: "Test",
		LastName:  "User",
		Currency:  "NGN",
		Timezone:  "Africa/Lagos",
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
