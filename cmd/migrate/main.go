package main

import (
	"os"

	"db-chat-be/internal/model"
	"db-chat-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

var (
	info = color.New(color.FgCyan)
	ok   = color.New(color.FgGreen, color.Bold)
	warn = color.New(color.FgYellow)
	fail = color.New(color.FgRed, color.Bold)
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		info.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		fail.Println("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn, false)
	if err != nil {
		fail.Printf("Error: Failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	// 3. Extensions and enums AutoMigrate does not create
	info.Println("Step 1: Setting up extensions and enums...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'message_role') THEN CREATE TYPE message_role AS ENUM ('user', 'assistant', 'system', 'tool'); END IF; END $$;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			warn.Printf("Warn: Failed to execute setup SQL: %v. Continuing...\n", err)
		}
	}

	// 4. AutoMigrate
	info.Println("Step 2: Running AutoMigrate for users, sessions and session_chats...")

	models := []interface{}{
		&model.User{},
		&model.Session{},
		&model.SessionChat{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		fail.Printf("Error: AutoMigrate failed: %v\n", err)
		os.Exit(1)
	}

	// 5. updated_at trigger function shared by all tables
	info.Println("Step 3: Creating functions and triggers...")

	postMigrationSQL := []string{
		`CREATE OR REPLACE FUNCTION set_current_timestamp_updated_at() RETURNS trigger LANGUAGE plpgsql AS $$
		DECLARE _new_value TIMESTAMP WITH TIME ZONE;
		BEGIN
		  _new_value := now();
		  IF NEW.updated_at IS DISTINCT FROM _new_value THEN NEW.updated_at = _new_value; END IF;
		  RETURN NEW;
		END; $$;`,
	}
	for _, table := range []string{"users", "sessions", "session_chats"} {
		postMigrationSQL = append(postMigrationSQL,
			`DROP TRIGGER IF EXISTS set_`+table+`_updated_at ON `+table+`;`,
			`CREATE TRIGGER set_`+table+`_updated_at BEFORE UPDATE ON `+table+` FOR EACH ROW EXECUTE FUNCTION set_current_timestamp_updated_at();`,
		)
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			warn.Printf("Warn: Failed to execute post-migration SQL: %v\n", err)
		}
	}

	ok.Println("Success: Database migration completed successfully via GORM.")
}
