package main

import (
	"log"
	"os"
	"time"

	"uni-chat-be/internal/model"
	"uni-chat-be/pkg/database"
	"uni-chat-be/pkg/integrations"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	demoEmail    = "demo@uni.chat"
	demoPassword = "demo1234"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	userId := seedDemoUser(db)
	seedDemoChat(db, userId)
	printCatalog()

	color.Green("Seed completed.")
}

func seedDemoUser(db *gorm.DB) uuid.UUID {
	var existing model.User
	err := db.Where("email = ?", demoEmail).First(&existing).Error
	if err == nil {
		color.Yellow("Demo user already exists (%s), skipping", demoEmail)
		return existing.Id
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: Failed to hash demo password: %v", err)
	}
	hashStr := string(hash)
	username := "Demo"
	now := time.Now()

	user := model.User{
		Id:              uuid.New(),
		Email:           demoEmail,
		PasswordHash:    &hashStr,
		Username:        &username,
		Status:          "active",
		EmailVerified:   true,
		EmailVerifiedAt: &now,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Error: Failed to create demo user: %v", err)
	}

	color.Green("Created demo user %s (password: %s)", demoEmail, demoPassword)
	return user.Id
}

func seedDemoChat(db *gorm.DB, userId uuid.UUID) {
	var count int64
	db.Model(&model.ChatHistory{}).Where("user_id = ?", userId).Count(&count)
	if count > 0 {
		color.Yellow("Demo chat history already present, skipping")
		return
	}

	sessionId := uuid.New()
	rows := []model.ChatHistory{
		{
			Id:        uuid.New(),
			UserId:    userId,
			SessionId: &sessionId,
			ChatName:  "Getting started",
			Message:   "What can you help me with?",
			Sender:    "user",
			CreatedAt: time.Now().Add(-2 * time.Minute),
		},
		{
			Id:        uuid.New(),
			UserId:    userId,
			SessionId: &sessionId,
			Message:   "I can search your connected Slack and Notion workspaces. Try asking about a project.",
			Sender:    "bot",
			CreatedAt: time.Now().Add(-1 * time.Minute),
		},
	}
	for _, row := range rows {
		if err := db.Create(&row).Error; err != nil {
			log.Fatalf("Error: Failed to seed chat history: %v", err)
		}
	}
	color.Green("Seeded demo chat session %s", sessionId)
}

func printCatalog() {
	color.Cyan("Integration catalog:")
	for _, entry := range integrations.Catalog() {
		mode := "token"
		if entry.OAuth {
			mode = "oauth"
		}
		color.White("  %-8s %-7s %s", entry.Id, mode, entry.Description)
	}
}
