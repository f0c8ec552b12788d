package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal statuses. Completed is terminal.
const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
)

// Goal is a savings target. CurrentAmount is the stored sum of the
// contribution ledger and is only ever updated in the same transaction that
// appends a contribution row.
type Goal struct {
	ID            string     `json:"id" gorm:"type:char(36);primaryKey"`
	UserID        string     `json:"-" gorm:"type:char(36);index;not null"`
	Name          string     `json:"name" gorm:"size:255;not null"`
	Emoji         string     `json:"emoji" gorm:"size:10"`
	TargetAmount  float64    `json:"target_amount" gorm:"type:decimal(15,2);not null"`
	CurrentAmount float64    `json:"current_amount" gorm:"type:decimal(15,2);default:0"`
	TargetDate    *time.Time `json:"target_date" gorm:"type:date"`
	Status        string     `json:"status" gorm:"size:20;default:active"`
	CreatedAt     time.Time  `json:"created_at"`
	User          User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Goal) TableName() string {
	return "goals"
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// Percentage of the target reached, 0 when the target is unset.
func (g *Goal) Percentage() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}

// GoalContribution is one entry in a goal's append-only ledger.
type GoalContribution struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	GoalID    string    `json:"goal_id" gorm:"type:char(36);index;not null"`
	Amount    float64   `json:"amount" gorm:"type:decimal(15,2);not null"`
	Date      time.Time `json:"date" gorm:"type:date;not null"`
	CreatedAt time.Time `json:"created_at"`
	Goal      Goal      `json:"-" gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE"`
}

func (GoalContribution) TableName() string {
	return "goal_contributions"
}

func (gc *GoalContribution) BeforeCreate(tx *gorm.DB) error {
	if gc.ID == "" {
		gc.ID = uuid.NewString()
	}
	return nil
}
