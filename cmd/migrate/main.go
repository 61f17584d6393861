package main

import (
	"log"

	"chatrelay-be/internal/config"
	"chatrelay-be/internal/model"
	"chatrelay-be/pkg/database"
)

func main() {
	// 1. Load Configuration (.env included)
	cfg := config.Load()

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDB(database.GormConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.Connection,
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	defer database.Close(db)

	// 3. AutoMigrate users, chat_sessions, chat_messages
	log.Printf("Running AutoMigrate on %s...", cfg.Database.Driver)
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Success: Database migration completed successfully via GORM.")
}
