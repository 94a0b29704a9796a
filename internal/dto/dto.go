// Package dto defines the read projections and write requests exchanged
// with the repositories, decoupled from the stored entity types.
package dto

import (
	"time"

	"github.com/megsikon/kanban-server/internal/domain"
)

// TagDTO is the flat read projection of a tag.
type TagDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserDTO is the flat read projection of a user.
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// WorkItemDTO is the summary projection of a work item used by list reads.
type WorkItemDTO struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	AssignedToName string       `json:"assigned_to_name"`
	Tags           []string     `json:"tags"`
	State          domain.State `json:"state"`
}

// WorkItemDetailsDTO is the full projection returned by single-item reads.
type WorkItemDetailsDTO struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Created        time.Time    `json:"created"`
	AssignedToName string       `json:"assigned_to_name"`
	Tags           []string     `json:"tags"`
	State          domain.State `json:"state"`
	StateUpdated   time.Time    `json:"state_updated"`
}

// TagCreate is the payload for creating a tag.
type TagCreate struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

// TagUpdate is the payload for renaming a tag.
type TagUpdate struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,min=1,max=50"`
}

// UserCreate is the payload for creating a user.
type UserCreate struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// UserUpdate is the payload for updating a user's name and email.
type UserUpdate struct {
	ID    int64  `json:"id"`
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// WorkItemCreate is the payload for creating a work item.
// Every name in Tags becomes a fresh tag row attached to the new item.
type WorkItemCreate struct {
	Title        string   `json:"title" validate:"required,min=1,max=200"`
	AssignedToID int64    `json:"assigned_to_id" validate:"required"`
	Description  string   `json:"description" validate:"max=4000"`
	Tags         []string `json:"tags" validate:"dive,min=1,max=50"`
}

// WorkItemUpdate is the payload for updating a work item.
// The repository applies only Title; the remaining fields are accepted but
// not applied (see the contract notes in DESIGN.md).
type WorkItemUpdate struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title" validate:"required,min=1,max=200"`
	AssignedToID int64        `json:"assigned_to_id"`
	Description  string       `json:"description" validate:"max=4000"`
	Tags         []string     `json:"tags" validate:"dive,min=1,max=50"`
	State        domain.State `json:"state"`
}
