package models

import (
	"time"
)

// User model
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	FirstName      string    `gorm:"size:255;not null" json:"firstname"`
	LastName       string    `gorm:"size:255;not null" json:"lastname"`
	Email          string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	HashedPassword []byte    `gorm:"not null" json:"-"`
	IsAdmin        bool      `gorm:"not null;default:false" json:"isAdmin"`
	Income         []Income  `json:"-"`
	Expenses       []Expense `json:"-"`
}
