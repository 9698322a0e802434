package books

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/bassista/bookpop/internal/cache"
	"github.com/bassista/bookpop/internal/logger"
	"github.com/bassista/bookpop/internal/store"
)

// Book aliases the store model; the service and the API layer share it.
type Book = store.Book

// ViewRecorder receives a best-effort signal for every successful
// read-by-id. Implementations must never block.
type ViewRecorder interface {
	RecordView(id int64)
}

// Service implements the cache-aside policy over the book store: reads are
// served from the cache when possible, mutations invalidate the affected
// keys. Cache failures are logged and degrade to direct store access; they
// never fail a request.
type Service struct {
	store    store.Store
	cache    cache.Cache
	recorder ViewRecorder
	ttl      time.Duration
}

// NewService wires the policy. recorder may be nil, in which case reads are
// not tracked.
func NewService(st store.Store, c cache.Cache, recorder ViewRecorder, ttl time.Duration) *Service {
	return &Service{store: st, cache: c, recorder: recorder, ttl: ttl}
}

// GetByID serves a single book, cache first. Every successful read signals
// the view recorder, whether the cache or the store answered.
func (s *Service) GetByID(ctx context.Context, id int64) (*Book, error) {
	key := cache.BookKey(id)

	if data := s.cacheGet(ctx, key); data != nil {
		var book Book
		if err := json.Unmarshal(data, &book); err == nil {
			s.recordView(id)
			return &book, nil
		}
		// Corrupt entry; drop it and fall through to the store.
		s.cacheDelete(ctx, key)
	}

	book, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	s.cachePut(ctx, key, book)
	s.recordView(id)
	return book, nil
}

// List serves the full collection, cache first. An empty store is a valid
// empty result here; the API layer decides how to report it.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	if data := s.cacheGet(ctx, cache.AllBooksKey); data != nil {
		if books, ok := decodeBooks(data); ok {
			return books, nil
		}
		s.cacheDelete(ctx, cache.AllBooksKey)
	}

	books, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(books) > 0 {
		s.cachePut(ctx, cache.AllBooksKey, books)
	}
	return books, nil
}

// Search serves filtered lookups, cache first. Keys are derived from the
// lower-cased filters plus the current search namespace version, so
// case-variant queries collide and a version bump invalidates them all.
func (s *Service) Search(ctx context.Context, title, author string) ([]Book, error) {
	key := cache.SearchKey(s.searchVersion(ctx), title, author)

	if data := s.cacheGet(ctx, key); data != nil {
		if books, ok := decodeBooks(data); ok {
			return books, nil
		}
		s.cacheDelete(ctx, key)
	}

	books, err := s.store.Search(ctx, title, author)
	if err != nil {
		return nil, err
	}
	if len(books) > 0 {
		s.cachePut(ctx, key, books)
	}
	return books, nil
}

// Create inserts a single book and invalidates the list and search caches.
func (s *Service) Create(ctx context.Context, book *Book) error {
	if book == nil {
		return ErrBadInput
	}
	if err := s.store.Insert(ctx, book); err != nil {
		return err
	}
	s.invalidateLists(ctx)
	return nil
}

// Update rewrites the book identified by id. The path id must match the
// payload id. A store-level conflict is downgraded to ErrNotFound when the
// record vanished; a genuine conflict propagates.
func (s *Service) Update(ctx context.Context, id int64, book *Book) error {
	if book == nil || book.ID != id {
		return ErrBadInput
	}

	err := s.store.Update(ctx, book)
	if errors.Is(err, store.ErrConflict) {
		exists, exErr := s.store.Exists(ctx, id)
		if exErr != nil {
			return exErr
		}
		if !exists {
			return ErrNotFound
		}
		return err
	}
	if err != nil {
		return err
	}

	s.cacheDelete(ctx, cache.BookKey(id))
	s.invalidateLists(ctx)
	return nil
}

// Delete removes the book identified by id and invalidates its cache keys.
func (s *Service) Delete(ctx context.Context, id int64) error {
	book, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, book); err != nil {
		return err
	}

	s.cacheDelete(ctx, cache.BookKey(id))
	s.invalidateLists(ctx)
	return nil
}

// CreateMany inserts a batch of books in one store call and returns them
// with their assigned ids. An empty batch is rejected before any write.
func (s *Service) CreateMany(ctx context.Context, books []Book) ([]Book, error) {
	if len(books) == 0 {
		return nil, ErrBadInput
	}
	inserted, err := s.store.InsertMany(ctx, books)
	if err != nil {
		return nil, err
	}
	s.invalidateLists(ctx)
	return inserted, nil
}

func (s *Service) recordView(id int64) {
	if s.recorder != nil {
		s.recorder.RecordView(id)
	}
}

// searchVersion reads the current search namespace version. When the cache
// is unreachable this returns 0; the subsequent Get on the derived key will
// miss for the same reason and the store answers.
func (s *Service) searchVersion(ctx context.Context) int64 {
	version, err := s.cache.IncrBy(ctx, cache.SearchVersionKey, 0)
	if err != nil {
		logger.WithComponent("books").Warnf("cache unavailable reading search version: %v", err)
		return 0
	}
	return version
}

// invalidateLists drops the full-list entry and bumps the search namespace
// version so every cached search result goes stale at once.
func (s *Service) invalidateLists(ctx context.Context) {
	s.cacheDelete(ctx, cache.AllBooksKey)
	if _, err := s.cache.IncrBy(ctx, cache.SearchVersionKey, 1); err != nil {
		logger.WithComponent("books").Warnf("cache unavailable bumping search version: %v", err)
	}
}

// cacheGet returns the cached bytes or nil on miss; any cache failure is
// treated as a miss.
func (s *Service) cacheGet(ctx context.Context, key string) []byte {
	data, err := s.cache.Get(ctx, key)
	if errors.Is(err, cache.ErrMiss) {
		return nil
	}
	if err != nil {
		logger.WithComponent("books").Warnf("cache get %s failed, falling back to store: %v", key, err)
		return nil
	}
	return data
}

func (s *Service) cachePut(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.WithComponent("books").Errorf("cannot encode cache entry %s: %v", key, err)
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		logger.WithComponent("books").Warnf("cache set %s failed: %v", key, err)
	}
}

func (s *Service) cacheDelete(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.WithComponent("books").Warnf("cache delete %v failed: %v", keys, err)
	}
}

func decodeBooks(data []byte) ([]Book, bool) {
	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, false
	}
	return books, true
}
