package books

import (
	"context"
	"strconv"

	"github.com/bassista/bookpop/internal/cache"
	"github.com/bassista/bookpop/internal/logger"
	"github.com/bassista/bookpop/internal/store"
)

// DefaultTopCount is how many books TopPopular returns when the caller
// doesn't say.
const DefaultTopCount = 10

// Tracker maintains the popularity leaderboard. View signals are queued on
// a buffered channel and applied by a background worker, so a slow or
// unavailable cache never blocks the read path; when the queue is full the
// signal is dropped.
type Tracker struct {
	cache cache.Cache
	store store.Store
	views chan int64
}

// NewTracker creates a tracker with the given view queue length.
func NewTracker(c cache.Cache, st store.Store, queueLen int) *Tracker {
	if queueLen <= 0 {
		queueLen = 256
	}
	return &Tracker{cache: c, store: st, views: make(chan int64, queueLen)}
}

// RecordView enqueues a view signal for the worker. Never blocks.
func (t *Tracker) RecordView(id int64) {
	select {
	case t.views <- id:
	default:
		logger.WithComponent("ranking").Debugf("view queue full, dropping view for book %d", id)
	}
}

// Start runs the worker goroutine until ctx is cancelled. On shutdown it
// applies whatever is still queued before returning. The returned channel
// is closed when the worker has stopped.
func (t *Tracker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	logger.WithComponent("ranking").Debugf("starting view tracker worker, queue length %d", cap(t.views))
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				t.drain()
				logger.WithComponent("ranking").Info("view tracker stopped")
				return
			case id := <-t.views:
				t.apply(ctx, id)
			}
		}
	}()
	return done
}

// drain applies queued views with a fresh context so shutdown doesn't lose them.
func (t *Tracker) drain() {
	for {
		select {
		case id := <-t.views:
			t.apply(context.Background(), id)
		default:
			return
		}
	}
}

func (t *Tracker) apply(ctx context.Context, id int64) {
	if _, err := t.cache.ZIncrBy(ctx, cache.LeaderboardKey, strconv.FormatInt(id, 10), 1); err != nil {
		logger.WithComponent("ranking").Warnf("leaderboard increment for book %d failed: %v", id, err)
	}
}

// TopPopular returns up to count books ordered by descending view score.
// An empty leaderboard yields an empty slice. Members without a backing
// store record are skipped rather than failing the whole lookup.
func (t *Tracker) TopPopular(ctx context.Context, count int) ([]Book, error) {
	if count <= 0 {
		count = DefaultTopCount
	}

	members, err := t.cache.TopByScore(ctx, cache.LeaderboardKey, 0, int64(count)-1)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []Book{}, nil
	}

	ids := make([]int64, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member.Member, 10, 64)
		if err != nil {
			logger.WithComponent("ranking").Warnf("leaderboard member %q is not a book id: %v", member.Member, err)
			continue
		}
		ids = append(ids, id)
	}

	fetched, err := t.store.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// The bulk fetch is unordered; restore leaderboard rank order and skip
	// members the store no longer knows about.
	byID := make(map[int64]Book, len(fetched))
	for _, book := range fetched {
		byID[book.ID] = book
	}
	ranked := make([]Book, 0, len(ids))
	for _, id := range ids {
		book, ok := byID[id]
		if !ok {
			logger.WithComponent("ranking").Debugf("leaderboard member %d has no store record, skipping", id)
			continue
		}
		ranked = append(ranked, book)
	}
	return ranked, nil
}
