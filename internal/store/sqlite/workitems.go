package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/megsikon/kanban-server/internal/domain"
	"github.com/megsikon/kanban-server/internal/store"
)

// workItemColumns is the ordered list of columns selected in work item
// queries, with the assignee name joined in.
// Must match the scan order in scanWorkItem.
const workItemColumns = `wi.id, wi.title, wi.description, wi.assignee_id, u.name,
	wi.state, wi.created, wi.state_updated`

const workItemFrom = ` FROM work_items wi JOIN users u ON u.id = wi.assignee_id`

// scanWorkItem scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.WorkItem. TagNames are left nil; the caller loads them separately.
func scanWorkItem(scanner interface{ Scan(dest ...any) error }) (*domain.WorkItem, error) {
	var (
		wi           domain.WorkItem
		state        string
		created      string
		stateUpdated string
	)

	err := scanner.Scan(
		&wi.ID,
		&wi.Title,
		&wi.Description,
		&wi.AssigneeID,
		&wi.AssigneeName,
		&state,
		&created,
		&stateUpdated,
	)
	if err != nil {
		return nil, err
	}

	wi.State = domain.State(state)

	wi.Created, err = parseTime(created)
	if err != nil {
		return nil, err
	}
	wi.StateUpdated, err = parseTime(stateUpdated)
	if err != nil {
		return nil, err
	}

	return &wi, nil
}

// tagNamesForItem returns the tag names attached to a work item, ordered by
// tag id so the order matches creation order.
func (s *Store) tagNamesForItem(ctx context.Context, itemID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.name FROM work_item_tags wit
		JOIN tags t ON t.id = wit.tag_id
		WHERE wit.work_item_id = ?
		ORDER BY t.id ASC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("query work_item_tags: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan tag name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return names, nil
}

// queryWorkItems runs a work item query with an optional WHERE clause and
// loads the tag names for every returned item.
func (s *Store) queryWorkItems(ctx context.Context, where string, args ...any) ([]*domain.WorkItem, error) {
	q := `SELECT ` + workItemColumns + workItemFrom + where + ` ORDER BY wi.id ASC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.WorkItem
	for rows.Next() {
		wi, err := scanWorkItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, wi)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, wi := range items {
		wi.TagNames, err = s.tagNamesForItem(ctx, wi.ID)
		if err != nil {
			return nil, err
		}
	}

	if items == nil {
		items = []*domain.WorkItem{}
	}
	return items, nil
}

// CreateWorkItem inserts a work item together with fresh tag rows for every
// name in tagNames, all in a single transaction. Returns the store-assigned
// item id, or store.ErrAlreadyExists when the title is taken.
func (s *Store) CreateWorkItem(ctx context.Context, item *domain.WorkItem, tagNames []string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO work_items (title, description, assignee_id, state, created, state_updated)
		VALUES (?, ?, ?, ?, ?, ?)`,
		item.Title,
		item.Description,
		item.AssigneeID,
		string(item.State),
		formatTime(item.Created),
		formatTime(item.StateUpdated),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, store.ErrAlreadyExists
		}
		return 0, err
	}

	itemID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	// Tags attached at creation are always new rows, never resolved against
	// existing tags of the same name.
	for _, name := range tagNames {
		tagRes, err := tx.ExecContext(ctx, `INSERT INTO tags (name) VALUES (?)`, name)
		if err != nil {
			return 0, fmt.Errorf("insert tag: %w", err)
		}
		tagID, err := tagRes.LastInsertId()
		if err != nil {
			return 0, err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO work_item_tags (work_item_id, tag_id) VALUES (?, ?)`,
			itemID, tagID)
		if err != nil {
			return 0, fmt.Errorf("insert work_item_tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return itemID, nil
}

// GetWorkItem retrieves a work item by ID, including assignee name and tags.
// Returns store.ErrNotFound if the item does not exist.
func (s *Store) GetWorkItem(ctx context.Context, id int64) (*domain.WorkItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+workItemColumns+workItemFrom+` WHERE wi.id = ?`, id)

	wi, err := scanWorkItem(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	wi.TagNames, err = s.tagNamesForItem(ctx, wi.ID)
	if err != nil {
		return nil, err
	}
	return wi, nil
}

// GetWorkItemByTitle retrieves a work item by exact title match.
// Returns store.ErrNotFound if no item matches.
func (s *Store) GetWorkItemByTitle(ctx context.Context, title string) (*domain.WorkItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+workItemColumns+workItemFrom+` WHERE wi.title = ?`, title)

	wi, err := scanWorkItem(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	wi.TagNames, err = s.tagNamesForItem(ctx, wi.ID)
	if err != nil {
		return nil, err
	}
	return wi, nil
}

// GetWorkItemByTitleExcluding retrieves a work item by exact title match,
// skipping the item with the given id. Used for update conflict checks.
// Returns store.ErrNotFound if no other item matches.
func (s *Store) GetWorkItemByTitleExcluding(ctx context.Context, title string, excludeID int64) (*domain.WorkItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+workItemColumns+workItemFrom+` WHERE wi.title = ? AND wi.id <> ?`,
		title, excludeID)

	wi, err := scanWorkItem(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	wi.TagNames, err = s.tagNamesForItem(ctx, wi.ID)
	if err != nil {
		return nil, err
	}
	return wi, nil
}

// ListWorkItems returns every work item regardless of state.
func (s *Store) ListWorkItems(ctx context.Context) ([]*domain.WorkItem, error) {
	return s.queryWorkItems(ctx, "")
}

// ListWorkItemsByState returns the work items in the given state.
func (s *Store) ListWorkItemsByState(ctx context.Context, state domain.State) ([]*domain.WorkItem, error) {
	return s.queryWorkItems(ctx, ` WHERE wi.state = ?`, string(state))
}

// ListWorkItemsByTagName returns the work items carrying a tag with the
// given exact name.
func (s *Store) ListWorkItemsByTagName(ctx context.Context, name string) ([]*domain.WorkItem, error) {
	return s.queryWorkItems(ctx, ` WHERE wi.id IN (
		SELECT wit.work_item_id FROM work_item_tags wit
		JOIN tags t ON t.id = wit.tag_id
		WHERE t.name = ?)`, name)
}

// UpdateWorkItemTitle sets the title and refreshes state_updated.
// Returns store.ErrNotFound if the item does not exist, or
// store.ErrAlreadyExists when the title is taken by another item.
func (s *Store) UpdateWorkItemTitle(ctx context.Context, id int64, title string, stateUpdated time.Time) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE work_items SET title = ?, state_updated = ? WHERE id = ?`,
		title, formatTime(stateUpdated), id)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SetWorkItemState changes only the state column. state_updated is left
// untouched; only title updates refresh it.
func (s *Store) SetWorkItemState(ctx context.Context, id int64, state domain.State) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE work_items SET state = ? WHERE id = ?`, string(state), id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteWorkItem removes a work item row; link rows cascade. The tag rows
// themselves are kept.
// Returns store.ErrNotFound if the item does not exist.
func (s *Store) DeleteWorkItem(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM work_items WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
