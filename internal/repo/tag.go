package repo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/megsikon/kanban-server/internal/domain"
	"github.com/megsikon/kanban-server/internal/dto"
	"github.com/megsikon/kanban-server/internal/store"
)

// TagRepository exposes CRUD over tags.
type TagRepository struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagRepository creates a new tag repository on the given store.
func NewTagRepository(st store.Store, logger *slog.Logger) *TagRepository {
	return &TagRepository{store: st, logger: logger}
}

// Create persists a new tag. If a tag with the exact name already exists,
// no row is written and the existing tag's id is returned with Conflict.
func (r *TagRepository) Create(ctx context.Context, req dto.TagCreate) (Response, int64, error) {
	existing, err := r.store.GetTagByName(ctx, req.Name)
	if err == nil {
		return Conflict, existing.ID, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", 0, err
	}

	id, err := r.store.CreateTag(ctx, &domain.Tag{Name: req.Name})
	if err != nil {
		return "", 0, err
	}

	r.logger.Info("tag created", "tag_id", id, "name", req.Name)
	return Created, id, nil
}

// Read returns the projection of one tag, or nil if no tag has that id.
// A missing tag is not an error.
func (r *TagRepository) Read(ctx context.Context, tagID int64) (*dto.TagDTO, error) {
	t, err := r.store.GetTag(ctx, tagID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dto.TagDTO{ID: t.ID, Name: t.Name}, nil
}

// ReadAll returns all tags ordered by name ascending.
func (r *TagRepository) ReadAll(ctx context.Context) ([]dto.TagDTO, error) {
	tags, err := r.store.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TagDTO, len(tags))
	for i, t := range tags {
		out[i] = dto.TagDTO{ID: t.ID, Name: t.Name}
	}
	return out, nil
}

// Update renames a tag. Returns NotFound when the tag does not exist and
// Conflict when any other tag already carries the new name.
func (r *TagRepository) Update(ctx context.Context, req dto.TagUpdate) (Response, error) {
	t, err := r.store.GetTag(ctx, req.ID)
	if errors.Is(err, store.ErrNotFound) {
		return NotFound, nil
	}
	if err != nil {
		return "", err
	}

	_, err = r.store.GetTagByNameExcluding(ctx, req.Name, req.ID)
	if err == nil {
		return Conflict, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	t.Name = req.Name
	if err := r.store.UpdateTag(ctx, t); err != nil {
		return "", err
	}
	return Updated, nil
}

// Delete removes a tag. The tag must have no associated work items and
// force must be true; either failing precondition yields Conflict. The
// success outcome is Updated, matching the historical contract.
func (r *TagRepository) Delete(ctx context.Context, tagID int64, force bool) (Response, error) {
	_, err := r.store.GetTag(ctx, tagID)
	if errors.Is(err, store.ErrNotFound) {
		return NotFound, nil
	}
	if err != nil {
		return "", err
	}

	dependents, err := r.store.CountItemsWithTag(ctx, tagID)
	if err != nil {
		return "", err
	}
	if dependents > 0 {
		return Conflict, nil
	}

	// force does not override the dependents check above; it is a second,
	// independent precondition for the delete itself.
	if !force {
		return Conflict, nil
	}

	if err := r.store.DeleteTag(ctx, tagID); err != nil {
		return "", err
	}

	r.logger.Info("tag deleted", "tag_id", tagID)
	return Updated, nil
}
