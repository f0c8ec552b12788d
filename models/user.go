package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User account. Identity lives in Auth0; the local row carries profile and
// preference fields only, keyed by the token subject.
type User struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	Auth0ID   *string   `json:"-" gorm:"size:255;uniqueIndex"` // Auth0 subject, NULL for dev/test users
	Email     string    `json:"email" gorm:"size:255;index"`
	FirstName string    `json:"first_name" gorm:"size:100"`
	LastName  string    `json:"last_name" gorm:"size:100"`
	Currency  string    `json:"currency" gorm:"size:3;default:NGN"`
	Timezone  string    `json:"timezone" gorm:"size:50;default:Africa/Lagos"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
