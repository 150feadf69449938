package main

import (
	"errors"
	"fmt"
	"strings"

	"fintrack/models"

	"golang.org/x/crypto/bcrypt"
)

// errUserExists marks a duplicate-email registration so the handler can
// answer 409 instead of treating it as a validation failure.
var errUserExists = errors.New("user already exists")

// RegisterUser validates and persists a new user with a bcrypt-hashed password.
func RegisterUser(firstname, lastname, email, password string) (*models.User, error) {
	firstname = strings.TrimSpace(firstname)
	lastname = strings.TrimSpace(lastname)
	email = strings.ToLower(strings.TrimSpace(email))
	if firstname == "" || lastname == "" || email == "" {
		return nil, fmt.Errorf("firstname, lastname and email are required")
	}
	if len(password) < 6 { // basic password policy
		return nil, fmt.Errorf("password too short (min 6)")
	}
	// pre-check existing (optimistic)
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, errUserExists
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{FirstName: firstname, LastName: lastname, Email: email, HashedPassword: hashedPassword}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return nil, errUserExists
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies an email/password pair against the stored hash.
func Authenticate(email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("invalid email or password")
	}
	return user, nil
}

func hashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
