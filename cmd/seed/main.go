package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/taskdeck/taskdeck/config"
	"github.com/taskdeck/taskdeck/pkg/helpers"
)

// Seeds a demo account with a few tasks for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@taskdeck.local"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (lower(email)) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id
	`, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	tasks := []struct {
		title, description string
		completed          bool
	}{
		{"Buy milk", "Two liters, oat if they have it", false},
		{"File expense report", "", true},
		{"Book dentist appointment", "Ask about the Thursday slot", false},
	}
	for _, t := range tasks {
		if _, err := db.Exec(`
			INSERT INTO tasks (owner_id, title, description, is_completed)
			VALUES ($1, $2, $3, $4)
		`, id, t.title, t.description, t.completed); err != nil {
			log.Fatalf("failed to seed task %q: %v", t.title, err)
		}
	}
	fmt.Printf("seeded %d tasks for %s\n", len(tasks), email)
}
