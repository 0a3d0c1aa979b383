package stores

import "errors"

var (
	// ErrNotFound is returned on any lookup miss. Callers surface it,
	// they never fabricate defaults in its place.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when an edit or delete comes from
	// someone other than the post's author.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrParentNotFound is returned when a reply targets a post id
	// that does not resolve.
	ErrParentNotFound = errors.New("parent post not found")
)
