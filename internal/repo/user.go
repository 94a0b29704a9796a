package repo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/megsikon/kanban-server/internal/domain"
	"github.com/megsikon/kanban-server/internal/dto"
	"github.com/megsikon/kanban-server/internal/store"
)

// UserRepository exposes CRUD over users.
type UserRepository struct {
	store  store.Store
	logger *slog.Logger
}

// NewUserRepository creates a new user repository on the given store.
func NewUserRepository(st store.Store, logger *slog.Logger) *UserRepository {
	return &UserRepository{store: st, logger: logger}
}

// Create persists a new user. The duplicate check is on Name only; a user
// with a colliding email but distinct name is accepted. On Conflict the
// existing user's id is returned.
func (r *UserRepository) Create(ctx context.Context, req dto.UserCreate) (Response, int64, error) {
	existing, err := r.store.GetUserByName(ctx, req.Name)
	if err == nil {
		return Conflict, existing.ID, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", 0, err
	}

	id, err := r.store.CreateUser(ctx, &domain.User{Name: req.Name, Email: req.Email})
	if err != nil {
		return "", 0, err
	}

	r.logger.Info("user created", "user_id", id, "name", req.Name)
	return Created, id, nil
}

// Read returns the projection of one user, or nil if no user has that id.
// A missing user is not an error.
func (r *UserRepository) Read(ctx context.Context, userID int64) (*dto.UserDTO, error) {
	u, err := r.store.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dto.UserDTO{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}

// ReadAll returns all users ordered by name ascending.
func (r *UserRepository) ReadAll(ctx context.Context) ([]dto.UserDTO, error) {
	users, err := r.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserDTO, len(users))
	for i, u := range users {
		out[i] = dto.UserDTO{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return out, nil
}

// Update overwrites both name and email of a user. Returns NotFound when
// the user does not exist and Conflict when another user already has the
// exact email. The name is not conflict-checked here.
func (r *UserRepository) Update(ctx context.Context, req dto.UserUpdate) (Response, error) {
	u, err := r.store.GetUser(ctx, req.ID)
	if errors.Is(err, store.ErrNotFound) {
		return NotFound, nil
	}
	if err != nil {
		return "", err
	}

	_, err = r.store.GetUserByEmailExcluding(ctx, req.Email, req.ID)
	if err == nil {
		return Conflict, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	u.Name = req.Name
	u.Email = req.Email
	if err := r.store.UpdateUser(ctx, u); err != nil {
		return "", err
	}
	return Updated, nil
}

// Delete removes a user. The user must be the assignee of no work item and
// force must be true; either failing precondition yields Conflict.
func (r *UserRepository) Delete(ctx context.Context, userID int64, force bool) (Response, error) {
	_, err := r.store.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return NotFound, nil
	}
	if err != nil {
		return "", err
	}

	assigned, err := r.store.CountItemsAssignedTo(ctx, userID)
	if err != nil {
		return "", err
	}
	if assigned > 0 {
		return Conflict, nil
	}

	// force is a second precondition, not an override of the check above.
	if !force {
		return Conflict, nil
	}

	if err := r.store.DeleteUser(ctx, userID); err != nil {
		return "", err
	}

	r.logger.Info("user deleted", "user_id", userID)
	return Deleted, nil
}
