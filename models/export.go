package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Export job statuses. Jobs move processing → done|failed and never back.
const (
	ExportStatusProcessing = "processing"
	ExportStatusDone       = "done"
	ExportStatusFailed     = "failed"
)

// Export formats
const (
	ExportTypeCSV  = "csv"
	ExportTypeXLSX = "xlsx"
)

// Export is a data-export job record. The worker is the only writer after
// creation.
type Export struct {
	ID          string     `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      string     `json:"-" gorm:"type:char(36);index;not null"`
	Type        string     `json:"type" gorm:"size:50;not null"`
	Status      string     `json:"status" gorm:"size:20;default:processing"`
	DownloadURL *string    `json:"download_url" gorm:"size:500"`
	ExpiresAt   *time.Time `json:"expires_at"`
	FileSize    *int64     `json:"file_size"`
	Error       *string    `json:"error" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at"`
	User        User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Export) TableName() string {
	return "exports"
}

func (e *Export) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
