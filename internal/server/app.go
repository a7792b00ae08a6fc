// Package server wires the read-only share server: it opens the configured
// storage, serves shared views over HTTP and reports storage health over
// the gRPC health service.
package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/memorymap/internal/logging"
	"github.com/dmitrijs2005/memorymap/internal/repositories/kv"
	"github.com/dmitrijs2005/memorymap/internal/repositories/repomanager"
	"github.com/dmitrijs2005/memorymap/internal/server/config"
	"github.com/dmitrijs2005/memorymap/internal/server/httpapi"
	"github.com/dmitrijs2005/memorymap/internal/store"

	gs "github.com/dmitrijs2005/memorymap/internal/server/grpc"
)

const healthCheckInterval = 15 * time.Second

type App struct {
	config    *config.Config
	logger    logging.Logger
	repo      kv.Repository
	closeRepo repomanager.CloseFunc
	http      *httpapi.Server
	health    *gs.HealthServer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	opts, err := c.StorageOptions()
	if err != nil {
		return nil, err
	}
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	repo, closeRepo, err := repomanager.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	h := httpapi.NewHandler(httpapi.StoreLoader{Repo: repo}, c.CacheSize, c.CacheTTL, loc, logger)

	return &App{
		config:    c,
		logger:    logger,
		repo:      repo,
		closeRepo: closeRepo,
		http:      httpapi.NewServer(c.HTTPAddr, httpapi.NewRouter(h, logger), c.ShutdownTimeout, logger),
		health:    gs.NewHealthServer(c.GRPCAddr, logger),
	}, nil
}

// checkStorage reads one key to prove the backend answers.
func (app *App) checkStorage(ctx context.Context) error {
	_, err := app.repo.Get(ctx, store.KeyNextID)
	return err
}

// Run serves until ctx is done or one of the servers fails. The first
// server error is returned.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.logger.Info(ctx, "Starting app...")

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() { firstErr = err })
		cancel()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.health.Watch(ctx, app.checkStorage, healthCheckInterval)
	}()
	go func() {
		defer wg.Done()
		if err := app.health.Run(ctx); err != nil {
			app.logger.Error(ctx, "grpc server failed", "error", err)
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := app.http.Run(ctx); err != nil {
			app.logger.Error(ctx, "http server failed", "error", err)
			fail(err)
		}
	}()

	wg.Wait()
	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	return firstErr
}

func (app *App) Close() error {
	if app.closeRepo == nil {
		return nil
	}
	return app.closeRepo()
}
