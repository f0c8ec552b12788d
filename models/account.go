package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account types
const (
	AccountTypeSavings = "savings"
	AccountTypeCurrent = "current"
	AccountTypeCredit  = "credit"
)

// ValidAccountType reports whether t is one of the known account types.
func ValidAccountType(t string) bool {
	return t == AccountTypeSavings || t == AccountTypeCurrent || t == AccountTypeCredit
}

// Account is a bank account imported through a connection. Balances carry two
// fractional digits.
type Account struct {
	ID                  string     `json:"id" gorm:"type:char(36);primaryKey"`
	ConnectionID        string     `json:"connection_id" gorm:"type:char(36);index;not null"`
	UserID              string     `json:"-" gorm:"type:char(36);index;not null"`
	Name                string     `json:"name" gorm:"size:255;not null"`
	Type                string     `json:"type" gorm:"size:20;not null"`
	AccountNumberMasked string     `json:"account_number_masked" gorm:"size:20"`
	Currency            string     `json:"currency" gorm:"size:3;default:NGN"`
	Balance             float64    `json:"balance" gorm:"type:decimal(15,2);default:0"`
	AvailableBalance    float64    `json:"available_balance" gorm:"type:decimal(15,2);default:0"`
	LastSyncedAt        *time.Time `json:"last_synced_at"`
	CreatedAt           time.Time  `json:"created_at"`
	Connection          Connection `json:"-" gorm:"foreignKey:ConnectionID;constraint:OnDelete:CASCADE"`
	User                User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Account) TableName() string {
	return "accounts"
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
