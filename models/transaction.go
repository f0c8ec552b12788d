package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction types. Amounts are always positive; the direction is carried by
// the type field.
const (
	TransactionTypeDebit  = "debit"
	TransactionTypeCredit = "credit"
)

// Transaction is a single bank movement on an account.
type Transaction struct {
	ID           string    `json:"id" gorm:"type:char(36);primaryKey"`
	AccountID    string    `json:"account_id" gorm:"type:char(36);index;not null"`
	UserID       string    `json:"-" gorm:"type:char(36);index;not null"`
	Date         time.Time `json:"date" gorm:"type:date;not null;index"`
	Description  string    `json:"description" gorm:"size:500;not null"`
	MerchantName string    `json:"merchant_name" gorm:"size:255"`
	Amount       float64   `json:"amount" gorm:"type:decimal(15,2);not null"`
	Type         string    `json:"type" gorm:"size:10;not null;index"`
	CategoryID   *string   `json:"category_id" gorm:"type:char(36);index"`
	Notes        string    `json:"notes" gorm:"type:text"`
	IsRecurring  bool      `json:"is_recurring" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	Account      Account   `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	User         User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Category     *Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
