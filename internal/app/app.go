package app

import (
	"context"
	"errors"

	"github.com/bassista/bookpop/internal/books"
	"github.com/bassista/bookpop/internal/cache"
	"github.com/bassista/bookpop/internal/config"
	"github.com/bassista/bookpop/internal/store"
)

// App is the application container (immutable dependencies + lifecycle context).
// It is not a request context; handlers should still use gin's request context.
type App struct {
	Config  *config.Config
	Store   store.Store
	Cache   cache.Cache
	Books   *books.Service
	Tracker *books.Tracker

	BaseCtx context.Context
	Cancel  context.CancelFunc
}

func New(cfg *config.Config, st store.Store, c cache.Cache) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if st == nil {
		return nil, errors.New("store is nil")
	}
	if c == nil {
		return nil, errors.New("cache is nil")
	}

	tracker := books.NewTracker(c, st, cfg.Misc.ViewQueueLen)
	service := books.NewService(st, c, tracker, cfg.Cache.TTL)

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:  cfg,
		Store:   st,
		Cache:   c,
		Books:   service,
		Tracker: tracker,
		BaseCtx: ctx,
		Cancel:  cancel,
	}, nil
}

func (a *App) Shutdown() {
	if a == nil || a.Cancel == nil {
		return
	}
	a.Cancel()
}

// StartWorkers launches the background view tracker worker.
func (a *App) StartWorkers() {
	a.Tracker.Start(a.BaseCtx)
}
