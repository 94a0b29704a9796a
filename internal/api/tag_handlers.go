package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/megsikon/kanban-server/internal/dto"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns all tags ordered by name",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "createTag",
		Method:      http.MethodPost,
		Path:        "/api/v1/tags",
		Summary:     "Create tag",
		Description: "Creates a new tag; returns the existing tag's id on a name conflict",
		Tags:        []string{"Tags"},
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Get tag",
		Tags:        []string{"Tags"},
	}, s.handleGetTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTag",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Rename tag",
		Tags:        []string{"Tags"},
	}, s.handleUpdateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Delete tag",
		Description: "Deletes a tag; requires force=true and zero attached work items",
		Tags:        []string{"Tags"},
	}, s.handleDeleteTag)
}

// === DTOs ===

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID   int64  `json:"id" doc:"Tag ID"`
	Name string `json:"name" doc:"Tag name"`
}

// ListTagsResponse contains a list of tags.
type ListTagsResponse struct {
	Tags []TagResponse `json:"tags" doc:"List of tags"`
}

// ListTagsOutput wraps the list tags response for Huma.
type ListTagsOutput struct {
	Body ListTagsResponse
}

// CreateTagRequest is the request body for creating a tag.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50" doc:"Tag name"`
}

// CreateTagInput wraps the create tag request for Huma.
type CreateTagInput struct {
	Body CreateTagRequest
}

// TagOutput wraps the tag response for Huma.
type TagOutput struct {
	Body TagResponse
}

// GetTagInput contains parameters for getting a tag.
type GetTagInput struct {
	ID int64 `path:"id" doc:"Tag ID"`
}

// UpdateTagRequest is the request body for renaming a tag.
type UpdateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50" doc:"New tag name"`
}

// UpdateTagInput wraps the update tag request for Huma.
type UpdateTagInput struct {
	ID   int64 `path:"id" doc:"Tag ID"`
	Body UpdateTagRequest
}

// DeleteTagInput contains parameters for deleting a tag.
type DeleteTagInput struct {
	ID    int64 `path:"id" doc:"Tag ID"`
	Force bool  `query:"force" doc:"Required for any successful delete"`
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*ListTagsOutput, error) {
	tags, err := s.repos.Tags.ReadAll(ctx)
	if err != nil {
		return nil, s.apiError("list tags", err)
	}

	resp := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = TagResponse{ID: t.ID, Name: t.Name}
	}
	return &ListTagsOutput{Body: ListTagsResponse{Tags: resp}}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*MutationOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, s.apiError("create tag", err)
	}

	res, id, err := s.repos.Tags.Create(ctx, dto.TagCreate{Name: input.Body.Name})
	if err != nil {
		return nil, s.apiError("create tag", err)
	}
	return mutationOutput(res, id), nil
}

func (s *Server) handleGetTag(ctx context.Context, input *GetTagInput) (*TagOutput, error) {
	t, err := s.repos.Tags.Read(ctx, input.ID)
	if err != nil {
		return nil, s.apiError("get tag", err)
	}
	if t == nil {
		return nil, huma.Error404NotFound("tag not found")
	}
	return &TagOutput{Body: TagResponse{ID: t.ID, Name: t.Name}}, nil
}

func (s *Server) handleUpdateTag(ctx context.Context, input *UpdateTagInput) (*MutationOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, s.apiError("update tag", err)
	}

	res, err := s.repos.Tags.Update(ctx, dto.TagUpdate{ID: input.ID, Name: input.Body.Name})
	if err != nil {
		return nil, s.apiError("update tag", err)
	}
	return mutationOutput(res, input.ID), nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *DeleteTagInput) (*MutationOutput, error) {
	res, err := s.repos.Tags.Delete(ctx, input.ID, input.Force)
	if err != nil {
		return nil, s.apiError("delete tag", err)
	}
	return mutationOutput(res, input.ID), nil
}
