// seed inserts a demo user and a spread of tasks into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedEmail    = "demo@taskdeck.local"
	seedName     = "Demo User"
	seedPassword = "demo-password"
)

type taskSpec struct {
	title    string
	status   domain.Status
	priority domain.Priority
	dueIn    time.Duration // 0 means no due date
}

var tasks = []taskSpec{
	{"Write project README", domain.StatusToDo, domain.PriorityHigh, 24 * time.Hour},
	{"Review open pull requests", domain.StatusToDo, domain.PriorityMedium, 12 * time.Hour},
	{"Book dentist appointment", domain.StatusToDo, domain.PriorityLow, 0},
	{"Prepare sprint demo", domain.StatusInProgress, domain.PriorityHigh, 48 * time.Hour},
	{"Refactor settings page", domain.StatusInProgress, domain.PriorityMedium, 0},
	{"Update dependency versions", domain.StatusInProgress, domain.PriorityLow, 72 * time.Hour},
	{"Fix login redirect bug", domain.StatusDone, domain.PriorityHigh, 0},
	{"Answer support tickets", domain.StatusDone, domain.PriorityMedium, 0},
	{"Clean up feature flags", domain.StatusDone, domain.PriorityLow, 0},
	{"Plan quarterly roadmap", domain.StatusToDo, domain.PriorityHigh, 6 * time.Hour},
	{"Archive stale branches", domain.StatusToDo, domain.PriorityLow, 0},
	{"Draft release notes", domain.StatusInProgress, domain.PriorityMedium, 18 * time.Hour},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedEmail, seedName, string(hash),
	).Scan(&userID)
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	for _, t := range tasks {
		var due *time.Time
		if t.dueIn > 0 {
			d := time.Now().Add(t.dueIn)
			due = &d
		}
		_, err := pool.Exec(ctx, `
			INSERT INTO tasks (user_id, title, status, priority, due_date)
			VALUES ($1, $2, $3, $4, $5)`,
			userID, t.title, t.status, t.priority, due,
		)
		if err != nil {
			log.Fatalf("seed task %q: %v", t.title, err)
		}
	}

	log.Printf("seeded user %s (password %q) with %d tasks", seedEmail, seedPassword, len(tasks))
}
