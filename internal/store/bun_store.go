package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/uptrace/bun"
)

// BunStore persists books through a bun.DB (SQLite or Postgres).
type BunStore struct {
	db *bun.DB
}

// NewBunStore wraps an already-opened bun.DB.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

// Init creates the books table if it does not exist yet.
func (s *BunStore) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*Book)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func (s *BunStore) FindByID(ctx context.Context, id int64) (*Book, error) {
	book := new(Book)
	err := s.db.NewSelect().Model(book).Where("b.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BunStore) FindAll(ctx context.Context) ([]Book, error) {
	books := make([]Book, 0)
	if err := s.db.NewSelect().Model(&books).Order("b.id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *BunStore) Search(ctx context.Context, title, author string) ([]Book, error) {
	books := make([]Book, 0)
	q := s.db.NewSelect().Model(&books).Order("b.id ASC")
	if title != "" {
		q = q.Where("lower(b.title) LIKE ?", "%"+strings.ToLower(title)+"%")
	}
	if author != "" {
		q = q.Where("lower(b.author) LIKE ?", "%"+strings.ToLower(author)+"%")
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *BunStore) FindByIDs(ctx context.Context, ids []int64) ([]Book, error) {
	books := make([]Book, 0, len(ids))
	if len(ids) == 0 {
		return books, nil
	}
	err := s.db.NewSelect().
		Model(&books).
		Where("b.id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (s *BunStore) Insert(ctx context.Context, book *Book) error {
	_, err := s.db.NewInsert().Model(book).Returning("id").Exec(ctx)
	return err
}

func (s *BunStore) InsertMany(ctx context.Context, books []Book) ([]Book, error) {
	if len(books) == 0 {
		return books, nil
	}
	if _, err := s.db.NewInsert().Model(&books).Returning("id").Exec(ctx); err != nil {
		return nil, err
	}
	return books, nil
}

// Update rewrites the row identified by the book's primary key. Zero
// affected rows means the record vanished underneath us, reported as
// ErrConflict so callers can re-check existence.
func (s *BunStore) Update(ctx context.Context, book *Book) error {
	res, err := s.db.NewUpdate().Model(book).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrConflict
	}
	return nil
}

func (s *BunStore) Delete(ctx context.Context, book *Book) error {
	_, err := s.db.NewDelete().Model(book).WherePK().Exec(ctx)
	return err
}

func (s *BunStore) Exists(ctx context.Context, id int64) (bool, error) {
	return s.db.NewSelect().Model((*Book)(nil)).Where("b.id = ?", id).Exists(ctx)
}
