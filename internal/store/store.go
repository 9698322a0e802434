package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the requested book does not exist.
	ErrNotFound = errors.New("store: book not found")

	// ErrConflict indicates a write raced with a concurrent mutation
	// (typically the row vanished between read and write).
	ErrConflict = errors.New("store: concurrent modification")
)

// Store abstracts the durable book collection.
type Store interface {
	FindByID(ctx context.Context, id int64) (*Book, error)
	FindAll(ctx context.Context) ([]Book, error)
	// Search applies case-insensitive "contains" predicates for each
	// non-empty filter; both are ANDed when both are present.
	Search(ctx context.Context, title, author string) ([]Book, error)
	// FindByIDs fetches the given ids in no particular order. Missing ids
	// are silently absent from the result.
	FindByIDs(ctx context.Context, ids []int64) ([]Book, error)
	Insert(ctx context.Context, book *Book) error
	InsertMany(ctx context.Context, books []Book) ([]Book, error)
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, book *Book) error
	Exists(ctx context.Context, id int64) (bool, error)
}
