// Package repo implements the entity repositories for the kanban board:
// users, tags and work items over a shared persistent store.
//
// Business outcomes (conflicts, missing rows, lifecycle rejections) are
// modeled as Response values, never as errors. The error return of a
// repository method carries store failures only; a Response is meaningful
// only when the error is nil.
package repo

// Response is the outcome of a mutating repository operation.
type Response string

// Repository operation outcomes.
const (
	Created    Response = "created"
	Updated    Response = "updated"
	Deleted    Response = "deleted"
	Conflict   Response = "conflict"
	NotFound   Response = "not_found"
	BadRequest Response = "bad_request"
)

// OK reports whether the response is a success outcome.
func (r Response) OK() bool {
	switch r {
	case Created, Updated, Deleted:
		return true
	}
	return false
}
