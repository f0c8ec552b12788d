package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Budget periods
const (
	BudgetPeriodWeekly  = "weekly"
	BudgetPeriodMonthly = "monthly"
	BudgetPeriodYearly  = "yearly"
)

// ValidBudgetPeriod reports whether p is a known budget period.
func ValidBudgetPeriod(p string) bool {
	return p == BudgetPeriodWeekly || p == BudgetPeriodMonthly || p == BudgetPeriodYearly
}

// Budget is a spending limit on one category over a recurring period. The
// rollover flag is stored but the progress engine does not apply it.
type Budget struct {
	ID         string    `json:"id" gorm:"type:char(36);primaryKey"`
	UserID     string    `json:"-" gorm:"type:char(36);index;not null"`
	CategoryID string    `json:"category_id" gorm:"type:char(36);index;not null"`
	Amount     float64   `json:"amount" gorm:"type:decimal(15,2);not null"`
	Period     string    `json:"period" gorm:"size:20;not null"`
	Rollover   bool      `json:"rollover" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
	User       User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Category   Category  `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (Budget) TableName() string {
	return "budgets"
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
