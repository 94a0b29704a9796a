package domain

import (
	"fmt"
	"time"
)

// State is the lifecycle state of a work item.
// Items start as StateNew; the only transition the core performs is
// StateActive -> StateRemoved during a soft delete.
type State string

// Work item states.
const (
	StateNew      State = "new"
	StateActive   State = "active"
	StateResolved State = "resolved"
	StateRemoved  State = "removed"
)

// States lists all valid states in declaration order.
func States() []State {
	return []State{StateNew, StateActive, StateResolved, StateRemoved}
}

// IsValid reports whether s is one of the known states.
func (s State) IsValid() bool {
	switch s {
	case StateNew, StateActive, StateResolved, StateRemoved:
		return true
	}
	return false
}

// ParseState converts a string into a State.
func ParseState(raw string) (State, error) {
	s := State(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown work item state %q", raw)
	}
	return s, nil
}

// WorkItem represents a task on the board.
// Every item has exactly one assignee and zero or more tags.
//
// AssigneeName and TagNames are denormalized by the store on reads
// (joined from the users and tags tables); they are ignored on writes.
type WorkItem struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"` // Unique across all items, any state
	Description  string    `json:"description"`
	AssigneeID   int64     `json:"assignee_id"`
	AssigneeName string    `json:"assignee_name"`
	TagNames     []string  `json:"tag_names"`
	State        State     `json:"state"`
	Created      time.Time `json:"created"`       // Set once at creation
	StateUpdated time.Time `json:"state_updated"` // Refreshed on every successful update
}
