package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Insight severities
const (
	InsightSeverityInfo    = "info"
	InsightSeverityWarning = "warning"
	InsightSeverityAlert   = "alert"
)

// Insight is a generated, dismissible notification about the user's
// finances. Rows are written once; dismissal is the only mutation.
type Insight struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"-" gorm:"type:char(36);index;not null"`
	Type      string    `json:"type" gorm:"size:50;not null"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Message   string    `json:"message" gorm:"type:text"`
	Severity  string    `json:"severity" gorm:"size:20;default:info"`
	Data      string    `json:"data" gorm:"type:json"` // arbitrary payload, serialized JSON
	Dismissed bool      `json:"-" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Insight) TableName() string {
	return "insights"
}

func (i *Insight) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
