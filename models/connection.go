package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Connection statuses
const (
	ConnectionStatusConnected    = "connected"
	ConnectionStatusDisconnected = "disconnected"
	ConnectionStatusError        = "error"
)

// Connection is a bank link established through the Mono aggregator.
type Connection struct {
	ID              string     `json:"id" gorm:"type:char(36);primaryKey"`
	UserID          string     `json:"-" gorm:"type:char(36);index;not null"`
	MonoID          string     `json:"-" gorm:"size:255;uniqueIndex"`
	InstitutionName string     `json:"institution_name" gorm:"size:255;not null"`
	InstitutionLogo string     `json:"institution_logo" gorm:"size:500"`
	Status          string     `json:"status" gorm:"size:20;default:connected"`
	LastSyncedAt    *time.Time `json:"last_synced_at"`
	CreatedAt       time.Time  `json:"created_at"`
	User            User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Connection) TableName() string {
	return "connections"
}

func (c *Connection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
