package models

import (
	"time"

	"fintrack/pkg/money"
)

// PettyCash is a small cash disbursement. Unlike income and expenses it
// carries the payee and a free-form category. It is user-scoped like the
// other record kinds.
type PettyCash struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Description string       `gorm:"size:512;not null" json:"description"`
	Category    string       `gorm:"size:255;not null" json:"category"`
	PaidTo      string       `gorm:"size:255;not null" json:"paidTo"`
	Amount      money.Amount `gorm:"not null" json:"amount"`
	UserID      uint         `gorm:"index;not null" json:"-"`
	Date        time.Time    `gorm:"not null" json:"date"`
}
