package model

import (
	"time"
)

// Account is the durable row behind one ledger
type Account struct {
	AccountNumber string    `gorm:"column:account_number;primaryKey;size:64"`
	PINDigest     string    `gorm:"column:pin;not null;size:128"`
	Balance       int64     `gorm:"not null;default:0"` // Balance in cents
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
