// Package store defines the persistence interface for the kanban server.
package store

import (
	"context"
	"time"

	"github.com/megsikon/kanban-server/internal/domain"
)

// Store defines the interface for all persistence operations.
//
// Lookup methods return ErrNotFound when no row matches; insert methods
// return ErrAlreadyExists when a store-level unique constraint rejects the
// row. Every method commits (or fails) as a single unit.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) (int64, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByName(ctx context.Context, name string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByEmailExcluding(ctx context.Context, email string, excludeID int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id int64) error
	CountItemsAssignedTo(ctx context.Context, userID int64) (int, error)

	// Tags
	CreateTag(ctx context.Context, tag *domain.Tag) (int64, error)
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
	GetTagByName(ctx context.Context, name string) (*domain.Tag, error)
	GetTagByNameExcluding(ctx context.Context, name string, excludeID int64) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	UpdateTag(ctx context.Context, tag *domain.Tag) error
	DeleteTag(ctx context.Context, id int64) error
	CountItemsWithTag(ctx context.Context, tagID int64) (int, error)

	// Work items
	CreateWorkItem(ctx context.Context, item *domain.WorkItem, tagNames []string) (int64, error)
	GetWorkItem(ctx context.Context, id int64) (*domain.WorkItem, error)
	GetWorkItemByTitle(ctx context.Context, title string) (*domain.WorkItem, error)
	GetWorkItemByTitleExcluding(ctx context.Context, title string, excludeID int64) (*domain.WorkItem, error)
	ListWorkItems(ctx context.Context) ([]*domain.WorkItem, error)
	ListWorkItemsByState(ctx context.Context, state domain.State) ([]*domain.WorkItem, error)
	ListWorkItemsByTagName(ctx context.Context, name string) ([]*domain.WorkItem, error)
	UpdateWorkItemTitle(ctx context.Context, id int64, title string, stateUpdated time.Time) error
	SetWorkItemState(ctx context.Context, id int64, state domain.State) error
	DeleteWorkItem(ctx context.Context, id int64) error
}
