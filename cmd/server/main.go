package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/bassista/bookpop/internal/api/middleware"
	route "github.com/bassista/bookpop/internal/api/route"
	appctx "github.com/bassista/bookpop/internal/app"
	"github.com/bassista/bookpop/internal/cache"
	"github.com/bassista/bookpop/internal/config"
	"github.com/bassista/bookpop/internal/logger"
	"github.com/bassista/bookpop/internal/store"

	"github.com/enrichman/httpgrace"
)

func main() {
	// Optional .env for local development; env vars win over the file.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithComponent("main").Fatalf("configuration error: %v", err)
	}

	logger.SetLevel(cfg.Misc.LogLevel)
	logger.WithComponent("main").Infof("App will run on port: %d", cfg.Server.Port)
	logger.WithComponent("main").Infof("store driver: %s, cache backend: %s", cfg.Store.Driver, cfg.Cache.Backend)

	st, err := store.NewStoreFromConfig(context.Background(), cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot init store: %v", err)
	}

	cacheBackend, err := cache.NewCacheFromConfig(cfg.Cache)
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot init cache: %v", err)
	}

	app, err := appctx.New(cfg, st, cacheBackend)
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot init app: %v", err)
	}
	defer app.Shutdown()

	app.StartWorkers()

	gin.SetMode(cfg.Misc.GinMode)
	gin.DefaultWriter = logger.Logger.Writer()
	gin.DefaultErrorWriter = logger.Logger.Writer()

	r := gin.New()
	r.Use(middleware.HoneybadgerMiddleware(logger.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))

	route.SetupRoutes(r, app)

	srv := createGraceHTTPServer(app.BaseCtx, "api-server", cfg.Server, r)
	if err := srv.ListenAndServe(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithComponent("main").Fatal(err)
	}
}

func createGraceHTTPServer(ctx context.Context, name string, serverConfig config.ServerConfig, r *gin.Engine) *httpgrace.Server {
	slogLogger := slog.New(slog.NewTextHandler(logger.Logger.Writer(), nil))

	srv := httpgrace.NewServer(r,
		httpgrace.WithTimeout(serverConfig.ShutDownTimeout),
		httpgrace.WithSignals(syscall.SIGTERM, syscall.SIGINT),
		httpgrace.WithLogger(slogLogger),
		httpgrace.WithBeforeShutdown(func() {
			logger.WithComponent("http").Infof("Shutting down %s....", name)
		}),
		httpgrace.WithServerOptions(
			httpgrace.WithReadTimeout(serverConfig.ReadTimeout),
			httpgrace.WithWriteTimeout(serverConfig.WriteTimeout),
			httpgrace.WithIdleTimeout(serverConfig.IdleTimeout),
			func(srv *http.Server) {
				srv.BaseContext = func(_ net.Listener) context.Context {
					return ctx
				}
			},
			func(srv *http.Server) {
				srv.ErrorLog = log.New(logger.Logger.Writer(), fmt.Sprintf("[%s] ", name), log.LstdFlags)
			},
		),
	)
	return srv
}
