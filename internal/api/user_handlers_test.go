package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megsikon/kanban-server/internal/repo"
)

// createUser creates a user through the API and returns its id.
func (ts *testServer) createUser(t *testing.T, name, email string) int64 {
	t.Helper()

	resp := ts.api.Post("/api/v1/users", map[string]any{"name": name, "email": email})
	require.Equal(t, http.StatusCreated, resp.Code, "create user failed: %s", resp.Body.String())

	var body MutationResponse
	decode(t, resp.Body.Bytes(), &body)
	return body.ID
}

func TestCreateUserEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Post("/api/v1/users", map[string]any{
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	var body MutationResponse
	decode(t, resp.Body.Bytes(), &body)
	assert.Equal(t, repo.Created, body.Response)
	assert.Positive(t, body.ID)
}

func TestCreateUserEndpoint_NameConflict(t *testing.T) {
	ts := newTestServer(t)

	first := ts.createUser(t, "Ada", "ada@example.com")

	resp := ts.api.Post("/api/v1/users", map[string]any{
		"name":  "Ada",
		"email": "other@example.com",
	})
	require.Equal(t, http.StatusConflict, resp.Code)

	var body MutationResponse
	decode(t, resp.Body.Bytes(), &body)
	assert.Equal(t, repo.Conflict, body.Response)
	assert.Equal(t, first, body.ID)
}

func TestCreateUserEndpoint_InvalidEmail(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Post("/api/v1/users", map[string]any{
		"name":  "Ada",
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetUserEndpoint(t *testing.T) {
	ts := newTestServer(t)

	id := ts.createUser(t, "Ada", "ada@example.com")

	resp := ts.api.Get("/api/v1/users/1")
	require.Equal(t, http.StatusOK, resp.Code)

	var body UserResponse
	decode(t, resp.Body.Bytes(), &body)
	assert.Equal(t, id, body.ID)
	assert.Equal(t, "Ada", body.Name)
	assert.Equal(t, "ada@example.com", body.Email)

	resp = ts.api.Get("/api/v1/users/999")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListUsersEndpoint(t *testing.T) {
	ts := newTestServer(t)

	ts.createUser(t, "Charlie", "c@example.com")
	ts.createUser(t, "Alice", "a@example.com")

	resp := ts.api.Get("/api/v1/users")
	require.Equal(t, http.StatusOK, resp.Code)

	var body ListUsersResponse
	decode(t, resp.Body.Bytes(), &body)
	require.Len(t, body.Users, 2)
	assert.Equal(t, "Alice", body.Users[0].Name)
	assert.Equal(t, "Charlie", body.Users[1].Name)
}

func TestUpdateUserEndpoint(t *testing.T) {
	ts := newTestServer(t)

	ts.createUser(t, "Ada", "ada@example.com")

	resp := ts.api.Patch("/api/v1/users/1", map[string]any{
		"name":  "Ada L.",
		"email": "ada.l@example.com",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var body MutationResponse
	decode(t, resp.Body.Bytes(), &body)
	assert.Equal(t, repo.Updated, body.Response)

	resp = ts.api.Patch("/api/v1/users/999", map[string]any{
		"name":  "x",
		"email": "x@example.com",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateUserEndpoint_EmailConflict(t *testing.T) {
	ts := newTestServer(t)

	ts.createUser(t, "Ada", "taken@example.com")
	ts.createUser(t, "Grace", "grace@example.com")

	resp := ts.api.Patch("/api/v1/users/2", map[string]any{
		"name":  "Grace",
		"email": "taken@example.com",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestDeleteUserEndpoint(t *testing.T) {
	ts := newTestServer(t)

	ts.createUser(t, "Ada", "ada@example.com")

	// Without force the delete is refused.
	resp := ts.api.Delete("/api/v1/users/1")
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = ts.api.Delete("/api/v1/users/1?force=true")
	require.Equal(t, http.StatusOK, resp.Code)

	var body MutationResponse
	decode(t, resp.Body.Bytes(), &body)
	assert.Equal(t, repo.Deleted, body.Response)

	resp = ts.api.Get("/api/v1/users/1")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteUserEndpoint_WithAssignedItems(t *testing.T) {
	ts := newTestServer(t)

	id := ts.createUser(t, "Ada", "ada@example.com")
	ts.createWorkItem(t, "Assigned work", id, nil)

	resp := ts.api.Delete("/api/v1/users/1?force=true")
	assert.Equal(t, http.StatusConflict, resp.Code)
}
