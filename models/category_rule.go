package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rule match types
const (
	RuleMatchContains   = "contains"
	RuleMatchStartsWith = "starts_with"
	RuleMatchExact      = "exact"
)

// ValidRuleMatchType reports whether t is a known rule match type.
func ValidRuleMatchType(t string) bool {
	return t == RuleMatchContains || t == RuleMatchStartsWith || t == RuleMatchExact
}

// CategoryRule auto-assigns a category to imported or manual transactions
// whose description or merchant matches the pattern.
type CategoryRule struct {
	ID           string    `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       string    `json:"-" gorm:"type:char(36);index;not null"`
	MatchType    string    `json:"match_type" gorm:"size:20;not null"`
	Pattern      string    `json:"pattern" gorm:"size:255;not null"`
	CategoryID   string    `json:"category_id" gorm:"type:char(36);not null"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	AppliedCount int       `json:"applied_count" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	User         User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Category     Category  `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (CategoryRule) TableName() string {
	return "category_rules"
}

func (r *CategoryRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
