package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fintrack/models"
)

func main() {
	admin := flag.Bool("admin", false, "create the user with the admin flag set")
	flag.Parse()
	args := flag.Args()
	if len(args) < 4 {
		fmt.Println("usage: go run ./cmd/create_user [-admin] <email> <firstname> <lastname> <password>")
		os.Exit(2)
	}
	email, firstname, lastname, password := strings.ToLower(args[0]), args[1], args[2], args[3]

	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	// check existing
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Printf("user %s already exists (id=%d)\n", email, existing.ID)
		os.Exit(0)
	}

	hpw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	user := models.User{
		FirstName:      firstname,
		LastName:       lastname,
		Email:          email,
		HashedPassword: hpw,
		IsAdmin:        *admin,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created user %s id=%d\n", email, user.ID)
}
