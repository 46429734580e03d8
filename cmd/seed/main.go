// seed inserts a demo user with a project and a handful of tasks into the
// local dev database. Re-running reuses the existing user.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/projecthub/internal/password"
)

const (
	seedName     = "Demo User"
	seedEmail    = "demo@projecthub.local"
	seedPassword = "demo-password"
)

type taskSpec struct {
	title    string
	status   domain.TaskStatus
	priority domain.Priority
	dueIn    time.Duration
}

var tasks = []taskSpec{
	{"Write project brief", domain.TaskDone, domain.PriorityHigh, -48 * time.Hour},
	{"Set up CI pipeline", domain.TaskDone, domain.PriorityMedium, -24 * time.Hour},
	{"Design database schema", domain.TaskInProgress, domain.PriorityCritical, 24 * time.Hour},
	{"Draft API contract", domain.TaskTodo, domain.PriorityMedium, 24 * time.Hour},
	{"Plan launch", domain.TaskTodo, domain.PriorityLow, 7 * 24 * time.Hour},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set, run: direnv allow")
	}

	if err := postgres.Migrate(dbURL); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	projects := postgres.NewProjectRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	user, err := users.FindByEmail(ctx, seedEmail)
	if errors.Is(err, domain.ErrUserNotFound) {
		hasher, herr := password.NewHasher(password.DefaultCost)
		if herr != nil {
			log.Fatalf("hasher: %v", herr)
		}
		hash, herr := hasher.Hash(seedPassword)
		if herr != nil {
			log.Fatalf("hash password: %v", herr)
		}
		user, err = users.Create(ctx, &domain.User{
			Name:           seedName,
			Email:          seedEmail,
			PasswordHash:   hash,
			Authentication: domain.ProviderEmail,
		})
	}
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	start := time.Now().AddDate(0, 0, -7)
	end := time.Now().AddDate(0, 1, 0)
	project, err := projects.Create(ctx, &domain.Project{
		Name:        fmt.Sprintf("Demo project %s", time.Now().Format("2006-01-02 15:04")),
		Description: "Seeded for local development",
		Status:      domain.ProjectInProgress,
		StartDate:   &start,
		EndDate:     &end,
		Members:     []string{user.ID},
		Tags:        []string{"demo"},
		OwnerID:     user.ID,
	})
	if err != nil {
		log.Fatalf("seed project: %v", err)
	}

	for _, spec := range tasks {
		due := time.Now().Add(spec.dueIn)
		_, err := taskRepo.Create(ctx, &domain.Task{
			ProjectID:  project.ID,
			Title:      spec.title,
			Status:     spec.status,
			Priority:   spec.priority,
			AssignedTo: &user.ID,
			DueDate:    &due,
			Completed:  spec.status == domain.TaskDone,
		})
		if err != nil {
			log.Fatalf("seed task %q: %v", spec.title, err)
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:       %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:    %s\n", user.ID)
	fmt.Printf("  Project ID: %s (%d tasks)\n", project.ID, len(tasks))
	fmt.Println()
	fmt.Println("Log in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/api/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/api/metrics -H \"Authorization: Bearer $JWT\"")
}
