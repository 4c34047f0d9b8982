package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrParse marks tree data that is not well formed.
	ErrParse = errors.New("tree: parse error")

	// ErrNodeNotFound means a path does not resolve to a node.
	ErrNodeNotFound = errors.New("node not found")
)

// ParseError describes why a tree document was rejected.
type ParseError struct {
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("invalid game tree at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("invalid game tree: %v", e.Err)
}

// Unwrap lets errors.Is match both ErrParse and the underlying cause.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}
