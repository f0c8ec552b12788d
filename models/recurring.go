package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recurring transaction statuses
const (
	RecurringStatusActive = "active"
	RecurringStatusPaused = "paused"
)

// RecurringTransaction is a template for a predictable bill or subscription.
// NextDate is advanced by an external collaborator, not by this service.
type RecurringTransaction struct {
	ID           string    `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       string    `json:"-" gorm:"type:char(36);index;not null"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Icon         string    `json:"icon" gorm:"size:10;default:📦"`
	Amount       float64   `json:"amount" gorm:"type:decimal(15,2);not null"`
	Frequency    string    `json:"frequency" gorm:"size:20;not null"` // weekly/monthly/yearly
	NextDate     time.Time `json:"next_date" gorm:"type:date;not null;index"`
	CategoryID   *string   `json:"category_id" gorm:"type:char(36);index"`
	AccountID    *string   `json:"account_id" gorm:"type:char(36);index"`
	Status       string    `json:"status" gorm:"size:20;default:active"`
	ReminderDays *int      `json:"reminder_days"`
	CreatedAt    time.Time `json:"created_at"`
	User         User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Category     *Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Account      *Account  `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:SET NULL"`
}

func (RecurringTransaction) TableName() string {
	return "recurring_transactions"
}

func (r *RecurringTransaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
