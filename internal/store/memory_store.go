package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is a mutex-guarded in-memory Store, used for dev mode and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	books  map[int64]Book
	nextID int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{books: make(map[int64]Book), nextID: 1}
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (*Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	book, ok := s.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &book, nil
}

func (s *MemoryStore) FindAll(_ context.Context) ([]Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(func(Book) bool { return true }), nil
}

func (s *MemoryStore) Search(_ context.Context, title, author string) ([]Book, error) {
	titleFilter := strings.ToLower(title)
	authorFilter := strings.ToLower(author)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(func(b Book) bool {
		if titleFilter != "" && !strings.Contains(strings.ToLower(b.Title), titleFilter) {
			return false
		}
		if authorFilter != "" && !strings.Contains(strings.ToLower(b.Author), authorFilter) {
			return false
		}
		return true
	}), nil
}

func (s *MemoryStore) FindByIDs(_ context.Context, ids []int64) ([]Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	books := make([]Book, 0, len(ids))
	for _, id := range ids {
		if book, ok := s.books[id]; ok {
			books = append(books, book)
		}
	}
	return books, nil
}

func (s *MemoryStore) Insert(_ context.Context, book *Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	book.ID = s.nextID
	s.nextID++
	s.books[book.ID] = *book
	return nil
}

func (s *MemoryStore) InsertMany(_ context.Context, books []Book) ([]Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range books {
		books[i].ID = s.nextID
		s.nextID++
		s.books[books[i].ID] = books[i]
	}
	return books, nil
}

func (s *MemoryStore) Update(_ context.Context, book *Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[book.ID]; !ok {
		return ErrConflict
	}
	s.books[book.ID] = *book
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, book *Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.books, book.ID)
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.books[id]
	return ok, nil
}

// sortedLocked returns matching books ordered by id. Caller must hold the lock.
func (s *MemoryStore) sortedLocked(match func(Book) bool) []Book {
	books := make([]Book, 0, len(s.books))
	for _, book := range s.books {
		if match(book) {
			books = append(books, book)
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books
}
