package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/memorymap/internal/logging"
	"github.com/dmitrijs2005/memorymap/internal/server/config"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageBackend = "memory"
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCAddr = "127.0.0.1:0"
	c.ShutdownTimeout = time.Second
	return c
}

func TestNewApp_RejectsBadSettings(t *testing.T) {
	c := testConfig()
	c.StorageBackend = "floppy"
	_, err := NewApp(context.Background(), c, logging.Discard())
	require.Error(t, err)

	c = testConfig()
	c.TimeZone = "Atlantis/Capital"
	_, err = NewApp(context.Background(), c, logging.Discard())
	require.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	require.NoError(t, app.checkStorage(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestApp_RunReportsListenFailure(t *testing.T) {
	c := testConfig()
	c.HTTPAddr = "127.0.0.1:99999"

	app, err := NewApp(context.Background(), c, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	select {
	case err := <-runAsync(app):
		require.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not fail")
	}
}

func runAsync(app *App) <-chan error {
	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	return done
}
