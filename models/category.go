package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups transactions. System categories have no owning user and are
// visible to everyone; user categories are scoped to their owner. A query for
// a user's categories is always "system ∪ mine".
type Category struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    *string   `json:"-" gorm:"type:char(36);index"` // NULL for system categories
	Name      string    `json:"name" gorm:"size:100;not null"`
	Icon      string    `json:"icon" gorm:"size:50"`
	Color     string    `json:"color" gorm:"size:7;default:#64748b"`
	IsSystem  bool      `json:"is_system" gorm:"default:false;index"`
	ParentID  *string   `json:"parent_id" gorm:"type:char(36);index"`
	CreatedAt time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// DefaultSystemCategories are seeded when the categories table is empty.
// Colors match the web client palette.
func DefaultSystemCategories() []Category {
	items := []struct {
		Name  string
		Icon  string
		Color string
	}{
		{"Food & Dining", "🍔", "#ef4444"},
		{"Transport", "🚗", "#3b82f6"},
		{"Shopping", "🛍️", "#a855f7"},
		{"Entertainment", "🎬", "#ec4899"},
		{"Bills & Utilities", "💡", "#f59e0b"},
		{"Health", "🏥", "#10b981"},
		{"Education", "📚", "#14b8a6"},
		{"Transfers", "💸", "#6366f1"},
		{"Salary", "💰", "#22c55e"},
		{"Other", "📦", "#64748b"},
	}
	cats := make([]Category, 0, len(items))
	for _, it := range items {
		cats = append(cats, Category{
			Name:     it.Name,
			Icon:     it.Icon,
			Color:    it.Color,
			IsSystem: true,
		})
	}
	return cats
}
