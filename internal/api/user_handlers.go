package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/megsikon/kanban-server/internal/dto"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Returns all users ordered by name",
		Tags:        []string{"Users"},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "createUser",
		Method:      http.MethodPost,
		Path:        "/api/v1/users",
		Summary:     "Create user",
		Description: "Creates a new user; returns the existing user's id on a name conflict",
		Tags:        []string{"Users"},
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}",
		Summary:     "Get user",
		Tags:        []string{"Users"},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUser",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/{id}",
		Summary:     "Update user",
		Description: "Overwrites name and email; conflicts on another user's email",
		Tags:        []string{"Users"},
	}, s.handleUpdateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteUser",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/{id}",
		Summary:     "Delete user",
		Description: "Deletes a user; requires force=true and zero assigned work items",
		Tags:        []string{"Users"},
	}, s.handleDeleteUser)
}

// === DTOs ===

// UserResponse contains user data in API responses.
type UserResponse struct {
	ID    int64  `json:"id" doc:"User ID"`
	Name  string `json:"name" doc:"User name"`
	Email string `json:"email" doc:"User email"`
}

// ListUsersResponse contains a list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users" doc:"List of users"`
}

// ListUsersOutput wraps the list users response for Huma.
type ListUsersOutput struct {
	Body ListUsersResponse
}

// CreateUserRequest is the request body for creating a user.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100" doc:"User name"`
	Email string `json:"email" validate:"required,email" doc:"User email"`
}

// CreateUserInput wraps the create user request for Huma.
type CreateUserInput struct {
	Body CreateUserRequest
}

// UserOutput wraps the user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// GetUserInput contains parameters for getting a user.
type GetUserInput struct {
	ID int64 `path:"id" doc:"User ID"`
}

// UpdateUserRequest is the request body for updating a user.
type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100" doc:"User name"`
	Email string `json:"email" validate:"required,email" doc:"User email"`
}

// UpdateUserInput wraps the update user request for Huma.
type UpdateUserInput struct {
	ID   int64 `path:"id" doc:"User ID"`
	Body UpdateUserRequest
}

// DeleteUserInput contains parameters for deleting a user.
type DeleteUserInput struct {
	ID    int64 `path:"id" doc:"User ID"`
	Force bool  `query:"force" doc:"Required for any successful delete"`
}

// === Handlers ===

func (s *Server) handleListUsers(ctx context.Context, _ *struct{}) (*ListUsersOutput, error) {
	users, err := s.repos.Users.ReadAll(ctx)
	if err != nil {
		return nil, s.apiError("list users", err)
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return &ListUsersOutput{Body: ListUsersResponse{Users: resp}}, nil
}

func (s *Server) handleCreateUser(ctx context.Context, input *CreateUserInput) (*MutationOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, s.apiError("create user", err)
	}

	res, id, err := s.repos.Users.Create(ctx, dto.UserCreate{
		Name:  input.Body.Name,
		Email: input.Body.Email,
	})
	if err != nil {
		return nil, s.apiError("create user", err)
	}
	return mutationOutput(res, id), nil
}

func (s *Server) handleGetUser(ctx context.Context, input *GetUserInput) (*UserOutput, error) {
	u, err := s.repos.Users.Read(ctx, input.ID)
	if err != nil {
		return nil, s.apiError("get user", err)
	}
	if u == nil {
		return nil, huma.Error404NotFound("user not found")
	}
	return &UserOutput{Body: UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}}, nil
}

func (s *Server) handleUpdateUser(ctx context.Context, input *UpdateUserInput) (*MutationOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, s.apiError("update user", err)
	}

	res, err := s.repos.Users.Update(ctx, dto.UserUpdate{
		ID:    input.ID,
		Name:  input.Body.Name,
		Email: input.Body.Email,
	})
	if err != nil {
		return nil, s.apiError("update user", err)
	}
	return mutationOutput(res, input.ID), nil
}

func (s *Server) handleDeleteUser(ctx context.Context, input *DeleteUserInput) (*MutationOutput, error) {
	res, err := s.repos.Users.Delete(ctx, input.ID, input.Force)
	if err != nil {
		return nil, s.apiError("delete user", err)
	}
	return mutationOutput(res, input.ID), nil
}
