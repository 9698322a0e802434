package books

import "errors"

var (
	// ErrNotFound indicates the requested book (or result set) does not exist.
	ErrNotFound = errors.New("books: not found")

	// ErrBadInput indicates a missing, empty or mismatched payload.
	ErrBadInput = errors.New("books: bad input")
)
