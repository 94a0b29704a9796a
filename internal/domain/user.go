// Package domain contains the entity types for the kanban board.
package domain

// User is a board member work items can be assigned to.
// Name and Email are intended unique; the repositories enforce Name on
// create and Email on update. There is no store-level constraint for
// either column.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
