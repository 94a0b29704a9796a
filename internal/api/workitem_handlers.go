package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/megsikon/kanban-server/internal/domain"
	"github.com/megsikon/kanban-server/internal/dto"
)

func (s *Server) registerWorkItemRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listWorkItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/items",
		Summary:     "List work items",
		Description: "Returns work items, optionally filtered by state, tag name or id",
		Tags:        []string{"WorkItems"},
	}, s.handleListWorkItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRemovedWorkItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/removed",
		Summary:     "List removed work items",
		Description: "Returns soft-deleted work items",
		Tags:        []string{"WorkItems"},
	}, s.handleListRemovedWorkItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "createWorkItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/items",
		Summary:     "Create work item",
		Description: "Creates a work item in state new; returns the existing item's id on a title conflict",
		Tags:        []string{"WorkItems"},
	}, s.handleCreateWorkItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "getWorkItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{id}",
		Summary:     "Get work item",
		Tags:        []string{"WorkItems"},
	}, s.handleGetWorkItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateWorkItem",
		Method:      http.MethodPatch,
		Path:        "/api/v1/items/{id}",
		Summary:     "Update work item",
		Description: "Applies a work item update; only the title is written",
		Tags:        []string{"WorkItems"},
	}, s.handleUpdateWorkItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteWorkItem",
		Method:      http.MethodDelete,
		Path:        "/api/v1/items/{id}",
		Summary:     "Delete work item",
		Description: "Hard-deletes new items, soft-deletes active items, rejects the rest",
		Tags:        []string{"WorkItems"},
	}, s.handleDeleteWorkItem)
}

// === DTOs ===

// WorkItemResponse contains the summary shape of a work item.
type WorkItemResponse struct {
	ID             int64        `json:"id" doc:"Work item ID"`
	Title          string       `json:"title" doc:"Title"`
	AssignedToName string       `json:"assigned_to_name" doc:"Assignee name"`
	Tags           []string     `json:"tags" doc:"Tag names"`
	State          domain.State `json:"state" doc:"Lifecycle state"`
}

// WorkItemDetailsResponse contains the detail shape of a work item.
type WorkItemDetailsResponse struct {
	ID             int64        `json:"id" doc:"Work item ID"`
	Title          string       `json:"title" doc:"Title"`
	Description    string       `json:"description" doc:"Description"`
	Created        time.Time    `json:"created" doc:"Creation time (UTC)"`
	AssignedToName string       `json:"assigned_to_name" doc:"Assignee name"`
	Tags           []string     `json:"tags" doc:"Tag names"`
	State          domain.State `json:"state" doc:"Lifecycle state"`
	StateUpdated   time.Time    `json:"state_updated" doc:"Last update time (UTC)"`
}

// ListWorkItemsInput contains the optional list filters. At most one
// filter is applied; state wins over tag, tag over user.
type ListWorkItemsInput struct {
	State string `query:"state" doc:"Filter by lifecycle state"`
	Tag   string `query:"tag" doc:"Filter by exact tag name"`
	User  int64  `query:"user" doc:"Filter by identifier"`
}

// ListWorkItemsResponse contains a list of work item summaries.
type ListWorkItemsResponse struct {
	Items []WorkItemResponse `json:"items" doc:"List of work items"`
}

// ListWorkItemsOutput wraps the list response for Huma.
type ListWorkItemsOutput struct {
	Body ListWorkItemsResponse
}

// CreateWorkItemRequest is the request body for creating a work item.
type CreateWorkItemRequest struct {
	Title        string   `json:"title" validate:"required,min=1,max=200" doc:"Title, unique across all items"`
	AssignedToID int64    `json:"assigned_to_id" validate:"required" doc:"Assignee user id"`
	Description  string   `json:"description,omitempty" validate:"max=4000" doc:"Description"`
	Tags         []string `json:"tags,omitempty" validate:"dive,min=1,max=50" doc:"Tag names; each becomes a fresh tag"`
}

// CreateWorkItemInput wraps the create request for Huma.
type CreateWorkItemInput struct {
	Body CreateWorkItemRequest
}

// WorkItemDetailsOutput wraps the detail response for Huma.
type WorkItemDetailsOutput struct {
	Body WorkItemDetailsResponse
}

// GetWorkItemInput contains parameters for getting a work item.
type GetWorkItemInput struct {
	ID int64 `path:"id" doc:"Work item ID"`
}

// UpdateWorkItemRequest is the request body for updating a work item.
// Only Title is applied; the rest is accepted for contract compatibility.
type UpdateWorkItemRequest struct {
	Title        string   `json:"title" validate:"required,min=1,max=200" doc:"New title"`
	AssignedToID int64    `json:"assigned_to_id,omitempty" doc:"Accepted but not applied"`
	Description  string   `json:"description,omitempty" doc:"Accepted but not applied"`
	Tags         []string `json:"tags,omitempty" doc:"Accepted but not applied"`
	State        string   `json:"state,omitempty" doc:"Accepted but not applied"`
}

// UpdateWorkItemInput wraps the update request for Huma.
type UpdateWorkItemInput struct {
	ID   int64 `path:"id" doc:"Work item ID"`
	Body UpdateWorkItemRequest
}

// DeleteWorkItemInput contains parameters for deleting a work item.
type DeleteWorkItemInput struct {
	ID int64 `path:"id" doc:"Work item ID"`
}

// === Handlers ===

func workItemResponses(items []dto.WorkItemDTO) []WorkItemResponse {
	resp := make([]WorkItemResponse, len(items))
	for i, wi := range items {
		resp[i] = WorkItemResponse{
			ID:             wi.ID,
			Title:          wi.Title,
			AssignedToName: wi.AssignedToName,
			Tags:           wi.Tags,
			State:          wi.State,
		}
	}
	return resp
}

func (s *Server) handleListWorkItems(ctx context.Context, input *ListWorkItemsInput) (*ListWorkItemsOutput, error) {
	var (
		items []dto.WorkItemDTO
		err   error
	)

	switch {
	case input.State != "":
		var state domain.State
		state, err = domain.ParseState(input.State)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		items, err = s.repos.Items.ReadAllByState(ctx, state)
	case input.Tag != "":
		items, err = s.repos.Items.ReadAllByTag(ctx, input.Tag)
	case input.User != 0:
		items, err = s.repos.Items.ReadAllByUser(ctx, input.User)
	default:
		items, err = s.repos.Items.ReadAll(ctx)
	}
	if err != nil {
		return nil, s.apiError("list work items", err)
	}

	return &ListWorkItemsOutput{Body: ListWorkItemsResponse{Items: workItemResponses(items)}}, nil
}

func (s *Server) handleListRemovedWorkItems(ctx context.Context, _ *struct{}) (*ListWorkItemsOutput, error) {
	items, err := s.repos.Items.ReadAllRemoved(ctx)
	if err != nil {
		return nil, s.apiError("list removed work items", err)
	}
	return &ListWorkItemsOutput{Body: ListWorkItemsResponse{Items: workItemResponses(items)}}, nil
}

func (s *Server) handleCreateWorkItem(ctx context.Context, input *CreateWorkItemInput) (*MutationOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, s.apiError("create work item", err)
	}

	res, id, err := s.repos.Items.Create(ctx, dto.WorkItemCreate{
		Title:        input.Body.Title,
		AssignedToID: input.Body.AssignedToID,
		Description:  input.Body.Description,
		Tags:         input.Body.Tags,
	})
	if err != nil {
		return nil, s.apiError("create work item", err)
	}
	return mutationOutput(res, id), nil
}

func (s *Server) handleGetWorkItem(ctx context.Context, input *GetWorkItemInput) (*WorkItemDetailsOutput, error) {
	wi, err := s.repos.Items.Read(ctx, input.ID)
	if err != nil {
		return nil, s.apiError("get work item", err)
	}
	if wi == nil {
		return nil, huma.Error404NotFound("work item not found")
	}

	return &WorkItemDetailsOutput{Body: WorkItemDetailsResponse{
		ID:             wi.ID,
		Title:          wi.Title,
		Description:    wi.Description,
		Created:        wi.Created,
		AssignedToName: wi.AssignedToName,
		Tags:           wi.Tags,
		State:          wi.State,
		StateUpdated:   wi.StateUpdated,
	}}, nil
}

func (s *Server) handleUpdateWorkItem(ctx context.Context, input *UpdateWorkItemInput) (*MutationOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, s.apiError("update work item", err)
	}

	res, err := s.repos.Items.Update(ctx, dto.WorkItemUpdate{
		ID:           input.ID,
		Title:        input.Body.Title,
		AssignedToID: input.Body.AssignedToID,
		Description:  input.Body.Description,
		Tags:         input.Body.Tags,
		State:        domain.State(input.Body.State),
	})
	if err != nil {
		return nil, s.apiError("update work item", err)
	}
	return mutationOutput(res, input.ID), nil
}

func (s *Server) handleDeleteWorkItem(ctx context.Context, input *DeleteWorkItemInput) (*MutationOutput, error) {
	res, err := s.repos.Items.Delete(ctx, input.ID)
	if err != nil {
		return nil, s.apiError("delete work item", err)
	}
	return mutationOutput(res, input.ID), nil
}
