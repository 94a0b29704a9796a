package domain

// Tag is a label attached to work items (many-to-many).
// Name matching is case-sensitive exact equality everywhere.
// Tags created as part of a work item are fresh rows even when a tag with
// the same name already exists, so duplicate names can occur.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
