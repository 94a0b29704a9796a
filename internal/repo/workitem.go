package repo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/megsikon/kanban-server/internal/domain"
	"github.com/megsikon/kanban-server/internal/dto"
	"github.com/megsikon/kanban-server/internal/store"
)

// WorkItemRepository exposes CRUD and lifecycle operations over work items.
type WorkItemRepository struct {
	store  store.Store
	logger *slog.Logger
}

// NewWorkItemRepository creates a new work item repository on the given store.
func NewWorkItemRepository(st store.Store, logger *slog.Logger) *WorkItemRepository {
	return &WorkItemRepository{store: st, logger: logger}
}

// summaryDTO projects a work item into its list shape.
func summaryDTO(wi *domain.WorkItem) dto.WorkItemDTO {
	return dto.WorkItemDTO{
		ID:             wi.ID,
		Title:          wi.Title,
		AssignedToName: wi.AssigneeName,
		Tags:           wi.TagNames,
		State:          wi.State,
	}
}

// summaryDTOs projects a slice of work items into list shapes.
func summaryDTOs(items []*domain.WorkItem) []dto.WorkItemDTO {
	out := make([]dto.WorkItemDTO, len(items))
	for i, wi := range items {
		out[i] = summaryDTO(wi)
	}
	return out
}

// Create persists a new work item in state New with Created and
// StateUpdated set to the current UTC time. The assignee must exist
// (BadRequest otherwise, the only BadRequest in the core) and the title
// must be unique across all items in any state (Conflict with the existing
// item's id otherwise). Each entry in Tags becomes a fresh tag row, written
// in the same transaction as the item.
func (r *WorkItemRepository) Create(ctx context.Context, req dto.WorkItemCreate) (Response, int64, error) {
	_, err := r.store.GetUser(ctx, req.AssignedToID)
	if errors.Is(err, store.ErrNotFound) {
		return BadRequest, 0, nil
	}
	if err != nil {
		return "", 0, err
	}

	existing, err := r.store.GetWorkItemByTitle(ctx, req.Title)
	if err == nil {
		return Conflict, existing.ID, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", 0, err
	}

	now := time.Now().UTC()
	item := &domain.WorkItem{
		Title:        req.Title,
		Description:  req.Description,
		AssigneeID:   req.AssignedToID,
		State:        domain.StateNew,
		Created:      now,
		StateUpdated: now,
	}

	id, err := r.store.CreateWorkItem(ctx, item, req.Tags)
	if errors.Is(err, store.ErrAlreadyExists) {
		// The title unique constraint caught a writer that raced past the
		// check above. Surface it the same way as the pre-check.
		existing, lookupErr := r.store.GetWorkItemByTitle(ctx, req.Title)
		if lookupErr != nil {
			return "", 0, lookupErr
		}
		return Conflict, existing.ID, nil
	}
	if err != nil {
		return "", 0, err
	}

	r.logger.Info("work item created", "item_id", id, "title", req.Title, "assignee_id", req.AssignedToID)
	return Created, id, nil
}

// Read returns the detail projection of one work item, or nil if no item
// has that id. A missing item is not an error.
func (r *WorkItemRepository) Read(ctx context.Context, itemID int64) (*dto.WorkItemDetailsDTO, error) {
	wi, err := r.store.GetWorkItem(ctx, itemID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &dto.WorkItemDetailsDTO{
		ID:             wi.ID,
		Title:          wi.Title,
		Description:    wi.Description,
		Created:        wi.Created,
		AssignedToName: wi.AssigneeName,
		Tags:           wi.TagNames,
		State:          wi.State,
		StateUpdated:   wi.StateUpdated,
	}, nil
}

// ReadAll returns summary projections of every work item, Removed included.
func (r *WorkItemRepository) ReadAll(ctx context.Context) ([]dto.WorkItemDTO, error) {
	items, err := r.store.ListWorkItems(ctx)
	if err != nil {
		return nil, err
	}
	return summaryDTOs(items), nil
}

// ReadAllRemoved returns the summary projections of soft-deleted items.
func (r *WorkItemRepository) ReadAllRemoved(ctx context.Context) ([]dto.WorkItemDTO, error) {
	return r.ReadAllByState(ctx, domain.StateRemoved)
}

// ReadAllByState returns the summary projections of items in one state.
func (r *WorkItemRepository) ReadAllByState(ctx context.Context, state domain.State) ([]dto.WorkItemDTO, error) {
	items, err := r.store.ListWorkItemsByState(ctx, state)
	if err != nil {
		return nil, err
	}
	return summaryDTOs(items), nil
}

// ReadAllByTag returns the summary projections of items whose tag set
// contains a tag with the exact name.
func (r *WorkItemRepository) ReadAllByTag(ctx context.Context, tag string) ([]dto.WorkItemDTO, error) {
	items, err := r.store.ListWorkItemsByTagName(ctx, tag)
	if err != nil {
		return nil, err
	}
	return summaryDTOs(items), nil
}

// ReadAllByUser returns the summary projections of items matching the given
// identifier. The filter compares the work item's own id, not its assignee;
// that is the contract this method has always had (see DESIGN.md).
func (r *WorkItemRepository) ReadAllByUser(ctx context.Context, userID int64) ([]dto.WorkItemDTO, error) {
	wi, err := r.store.GetWorkItem(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return []dto.WorkItemDTO{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []dto.WorkItemDTO{summaryDTO(wi)}, nil
}

// Update applies a work item update. Only Title is written, and
// StateUpdated is refreshed to the current UTC time; the remaining request
// fields are accepted but not applied. Returns NotFound when the item does
// not exist and Conflict when another item already has the title.
func (r *WorkItemRepository) Update(ctx context.Context, req dto.WorkItemUpdate) (Response, error) {
	_, err := r.store.GetWorkItem(ctx, req.ID)
	if errors.Is(err, store.ErrNotFound) {
		return NotFound, nil
	}
	if err != nil {
		return "", err
	}

	_, err = r.store.GetWorkItemByTitleExcluding(ctx, req.Title, req.ID)
	if err == nil {
		return Conflict, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	err = r.store.UpdateWorkItemTitle(ctx, req.ID, req.Title, time.Now().UTC())
	if errors.Is(err, store.ErrAlreadyExists) {
		return Conflict, nil
	}
	if err != nil {
		return "", err
	}
	return Updated, nil
}

// Delete applies the lifecycle-aware deletion policy:
//
//	New      -> hard delete, Deleted
//	Active   -> State set to Removed (soft delete), Updated
//	Resolved -> Conflict, item unchanged
//	Removed  -> Conflict, item unchanged
func (r *WorkItemRepository) Delete(ctx context.Context, itemID int64) (Response, error) {
	wi, err := r.store.GetWorkItem(ctx, itemID)
	if errors.Is(err, store.ErrNotFound) {
		return NotFound, nil
	}
	if err != nil {
		return "", err
	}

	switch wi.State {
	case domain.StateNew:
		if err := r.store.DeleteWorkItem(ctx, itemID); err != nil {
			return "", err
		}
		r.logger.Info("work item deleted", "item_id", itemID)
		return Deleted, nil
	case domain.StateActive:
		if err := r.store.SetWorkItemState(ctx, itemID, domain.StateRemoved); err != nil {
			return "", err
		}
		r.logger.Info("work item removed", "item_id", itemID)
		return Updated, nil
	default:
		return Conflict, nil
	}
}
