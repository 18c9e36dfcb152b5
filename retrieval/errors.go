package retrieval

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrUnavailable indicates the vector database could not be reached
	// or rejected the request.
	ErrUnavailable = errors.New("vector database unavailable")
)
