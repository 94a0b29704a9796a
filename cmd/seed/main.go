// Package main provides a tool to seed the database with sample kanban data.
//
// It creates a handful of users, tags, and work items across every
// lifecycle state, which is handy for exercising the list filters and the
// deletion policy against a realistic dataset.
//
// Usage:
//
//	KANBAN_DB=~/kanban.db go run ./cmd/seed
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/megsikon/kanban-server/internal/domain"
	"github.com/megsikon/kanban-server/internal/dto"
	"github.com/megsikon/kanban-server/internal/logger"
	"github.com/megsikon/kanban-server/internal/repo"
	"github.com/megsikon/kanban-server/internal/store/sqlite"
)

var dbPath = flag.String("db", "", "Path to the SQLite database (default: $KANBAN_DB or ./kanban.db)")

func main() {
	flag.Parse()

	path := *dbPath
	if path == "" {
		path = os.Getenv("KANBAN_DB")
	}
	if path == "" {
		path = "kanban.db"
	}

	fmt.Printf("Opening database at: %s\n", path)

	log2, err := logger.Default("development", "info")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	s, err := sqlite.Open(path, log2.Logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	users := repo.NewUserRepository(s, log2.Logger)
	tags := repo.NewTagRepository(s, log2.Logger)
	items := repo.NewWorkItemRepository(s, log2.Logger)

	userIDs := make(map[string]int64)
	for _, u := range []dto.UserCreate{
		{Name: "Ada Lovelace", Email: "ada@example.com"},
		{Name: "Grace Hopper", Email: "grace@example.com"},
		{Name: "Alan Turing", Email: "alan@example.com"},
	} {
		resp, id, err := users.Create(ctx, u)
		if err != nil {
			log.Fatalf("Failed to create user %s: %v", u.Name, err)
		}
		fmt.Printf("User %-14s -> %s (id=%d)\n", u.Name, resp, id)
		userIDs[u.Name] = id
	}

	for _, name := range []string{"backend", "frontend", "infra", "urgent"} {
		resp, id, err := tags.Create(ctx, dto.TagCreate{Name: name})
		if err != nil {
			log.Fatalf("Failed to create tag %s: %v", name, err)
		}
		fmt.Printf("Tag  %-14s -> %s (id=%d)\n", name, resp, id)
	}

	// One item per lifecycle state. Items always start in state New, so
	// the later states are set directly on the store.
	seedItems := []struct {
		req   dto.WorkItemCreate
		state domain.State
	}{
		{
			req: dto.WorkItemCreate{
				Title:        "Design the board layout",
				AssignedToID: userIDs["Ada Lovelace"],
				Description:  "Sketch the column layout and card density.",
				Tags:         []string{"frontend"},
			},
			state: domain.StateNew,
		},
		{
			req: dto.WorkItemCreate{
				Title:        "Implement drag and drop",
				AssignedToID: userIDs["Grace Hopper"],
				Description:  "Cards move between columns with the pointer.",
				Tags:         []string{"frontend", "urgent"},
			},
			state: domain.StateActive,
		},
		{
			req: dto.WorkItemCreate{
				Title:        "Set up CI pipeline",
				AssignedToID: userIDs["Alan Turing"],
				Description:  "Lint, test, and build on every push.",
				Tags:         []string{"infra"},
			},
			state: domain.StateResolved,
		},
		{
			req: dto.WorkItemCreate{
				Title:        "Evaluate GraphQL gateway",
				AssignedToID: userIDs["Ada Lovelace"],
				Description:  "Spike that turned out to be a dead end.",
				Tags:         []string{"backend"},
			},
			state: domain.StateRemoved,
		},
	}

	for _, si := range seedItems {
		resp, id, err := items.Create(ctx, si.req)
		if err != nil {
			log.Fatalf("Failed to create item %q: %v", si.req.Title, err)
		}
		if si.state != domain.StateNew {
			if err := s.SetWorkItemState(ctx, id, si.state); err != nil {
				log.Fatalf("Failed to set state for item %d: %v", id, err)
			}
		}
		fmt.Printf("Item %-28q -> %s (id=%d, state=%s)\n", si.req.Title, resp, id, si.state)
	}

	all, err := items.ReadAll(ctx)
	if err != nil {
		log.Fatalf("Failed to list items: %v", err)
	}
	fmt.Printf("\nSeeded %d work items\n", len(all))
}
