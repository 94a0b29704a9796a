package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/megsikon/kanban-server/internal/domain"
	"github.com/megsikon/kanban-server/internal/store"
)

func createTestWorkItem(t *testing.T, s *Store, title string, assigneeID int64, tags []string) int64 {
	t.Helper()
	now := time.Now().UTC()
	id, err := s.CreateWorkItem(context.Background(), &domain.WorkItem{
		Title:        title,
		Description:  "a description",
		AssigneeID:   assigneeID,
		State:        domain.StateNew,
		Created:      now,
		StateUpdated: now,
	}, tags)
	if err != nil {
		t.Fatalf("CreateWorkItem(%s): %v", title, err)
	}
	return id
}

func TestCreateAndGetWorkItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	uid := createTestUser(t, s, "Ada Lovelace", "ada@example.com")
	id := createTestWorkItem(t, s, "Write the parser", uid, []string{"backend", "urgent"})

	got, err := s.GetWorkItem(ctx, id)
	if err != nil {
		t.Fatalf("GetWorkItem: %v", err)
	}
	if got.Title != "Write the parser" {
		t.Errorf("Title: got %q", got.Title)
	}
	if got.AssigneeID != uid {
		t.Errorf("AssigneeID: got %d, want %d", got.AssigneeID, uid)
	}
	if got.AssigneeName != "Ada Lovelace" {
		t.Errorf("AssigneeName: got %q", got.AssigneeName)
	}
	if got.State != domain.StateNew {
		t.Errorf("State: got %q", got.State)
	}
	if len(got.TagNames) != 2 || got.TagNames[0] != "backend" || got.TagNames[1] != "urgent" {
		t.Errorf("TagNames: got %v", got.TagNames)
	}
	if got.Created.IsZero() || got.StateUpdated.IsZero() {
		t.Errorf("timestamps not round-tripped: %v / %v", got.Created, got.StateUpdated)
	}
}

func TestCreateWorkItem_FreshTagRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	uid := createTestUser(t, s, "Ada", "ada@example.com")
	createTestWorkItem(t, s, "First", uid, []string{"shared"})
	createTestWorkItem(t, s, "Second", uid, []string{"shared"})

	// Each creation writes its own tag row, so the name appears twice.
	tags, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	count := 0
	for _, tag := range tags {
		if tag.Name == "shared" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected 2 tag rows named shared, got %d", count)
	}
}

func TestCreateWorkItem_DuplicateTitle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	uid := createTestUser(t, s, "Ada", "ada@example.com")
	createTestWorkItem(t, s, "Unique title", uid, nil)

	now := time.Now().UTC()
	_, err := s.CreateWorkItem(ctx, &domain.WorkItem{
		Title:        "Unique title",
		AssigneeID:   uid,
		State:        domain.StateNew,
		Created:      now,
		StateUpdated: now,
	}, []string{"tag"})
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	// The rejected item's tag must not have been persisted.
	tags, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("expected no tags after rollback, got %v", tags)
	}
}

func TestGetWorkItemByTitleExcluding(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	uid := createTestUser(t, s, "Ada", "ada@example.com")
	id := createTestWorkItem(t, s, "Solo title", uid, nil)

	// Excluding the only holder misses.
	_, err := s.GetWorkItemByTitleExcluding(ctx, "Solo title", id)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Excluding another id finds it.
	got, err := s.GetWorkItemByTitleExcluding(ctx, "Solo title", id+1)
	if err != nil {
		t.Fatalf("GetWorkItemByTitleExcluding: %v", err)
	}
	if got.ID != id {
		t.Errorf("ID: got %d, want %d", got.ID, id)
	}
}

func TestListWorkItems_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	uid := createTestUser(t, s, "Ada", "ada@example.com")
	a := createTestWorkItem(t, s, "Item A", uid, []string{"frontend"})
	b := createTestWorkItem(t, s, "Item B", uid, []string{"backend"})
	c := createTestWorkItem(t, s, "Item C", uid, []string{"backend"})

	if err := s.SetWorkItemState(ctx, b, domain.StateActive); err != nil {
		t.Fatalf("SetWorkItemState: %v", err)
	}

	all, err := s.ListWorkItems(ctx)
	if err != nil {
		t.Fatalf("ListWorkItems: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 items, got %d", len(all))
	}
	// Ordered by id.
	if all[0].ID != a || all[1].ID != b || all[2].ID != c {
		t.Errorf("order: got %d,%d,%d", all[0].ID, all[1].ID, all[2].ID)
	}

	active, err := s.ListWorkItemsByState(ctx, domain.StateActive)
	if err != nil {
		t.Fatalf("ListWorkItemsByState: %v", err)
	}
	if len(active) != 1 || active[0].ID != b {
		t.Errorf("active: got %v", active)
	}

	backend, err := s.ListWorkItemsByTagName(ctx, "backend")
	if err != nil {
		t.Fatalf("ListWorkItemsByTagName: %v", err)
	}
	if len(backend) != 2 || backend[0].ID != b || backend[1].ID != c {
		t.Errorf("backend: got %d items", len(backend))
	}

	none, err := s.ListWorkItemsByTagName(ctx, "missing")
	if err != nil {
		t.Fatalf("ListWorkItemsByTagName: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected empty, got %d items", len(none))
	}
}

func TestUpdateWorkItemTitle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	uid := createTestUser(t, s, "Ada", "ada@example.com")
	id := createTestWorkItem(t, s, "Before", uid, nil)

	before, err := s.GetWorkItem(ctx, id)
	if err != nil {
		t.Fatalf("GetWorkItem: %v", err)
	}

	stamp := time.Now().UTC().Add(time.Hour)
	if err := s.UpdateWorkItemTitle(ctx, id, "After", stamp); err != nil {
		t.Fatalf("UpdateWorkItemTitle: %v", err)
	}

	got, err := s.GetWorkItem(ctx, id)
	if err != nil {
		t.Fatalf("GetWorkItem: %v", err)
	}
	if got.Title != "After" {
		t.Errorf("Title: got %q", got.Title)
	}
	if !got.StateUpdated.After(before.StateUpdated) {
		t.Errorf("StateUpdated not refreshed: %v -> %v", before.StateUpdated, got.StateUpdated)
	}
	if !got.Created.Equal(before.Created) {
		t.Errorf("Created changed: %v -> %v", before.Created, got.Created)
	}

	err = s.UpdateWorkItemTitle(ctx, 999, "x", stamp)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateWorkItemTitle_Conflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	uid := createTestUser(t, s, "Ada", "ada@example.com")
	createTestWorkItem(t, s, "Taken", uid, nil)
	id := createTestWorkItem(t, s, "Free", uid, nil)

	err := s.UpdateWorkItemTitle(ctx, id, "Taken", time.Now().UTC())
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestSetWorkItemState_KeepsStateUpdated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	uid := createTestUser(t, s, "Ada", "ada@example.com")
	id := createTestWorkItem(t, s, "Stateful", uid, nil)

	before, err := s.GetWorkItem(ctx, id)
	if err != nil {
		t.Fatalf("GetWorkItem: %v", err)
	}

	if err := s.SetWorkItemState(ctx, id, domain.StateResolved); err != nil {
		t.Fatalf("SetWorkItemState: %v", err)
	}

	got, err := s.GetWorkItem(ctx, id)
	if err != nil {
		t.Fatalf("GetWorkItem: %v", err)
	}
	if got.State != domain.StateResolved {
		t.Errorf("State: got %q", got.State)
	}
	if !got.StateUpdated.Equal(before.StateUpdated) {
		t.Errorf("StateUpdated changed: %v -> %v", before.StateUpdated, got.StateUpdated)
	}
}

func TestDeleteWorkItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	uid := createTestUser(t, s, "Ada", "ada@example.com")
	id := createTestWorkItem(t, s, "Doomed", uid, []string{"keepme"})

	if err := s.DeleteWorkItem(ctx, id); err != nil {
		t.Fatalf("DeleteWorkItem: %v", err)
	}
	_, err := s.GetWorkItem(ctx, id)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Tag rows survive item deletion; only the links cascade.
	tags, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "keepme" {
		t.Errorf("expected tag to survive, got %v", tags)
	}

	if err := s.DeleteWorkItem(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
