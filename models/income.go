package models

import (
	"time"

	"fintrack/pkg/money"
)

// Income is a single revenue record belonging to a user.
type Income struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"size:512;not null" json:"description"`
	Type        string       `gorm:"size:32;not null;default:Income" json:"type"`
	Amount      money.Amount `gorm:"not null" json:"amount"`
	UserID      uint         `gorm:"index;not null" json:"-"`
	User        *User        `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Date        time.Time    `gorm:"not null" json:"date"`
}
