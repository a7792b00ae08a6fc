package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/memorymap/internal/auth"
	"github.com/dmitrijs2005/memorymap/internal/client/config"
	"github.com/dmitrijs2005/memorymap/internal/client/services"
	"github.com/dmitrijs2005/memorymap/internal/cryptox"
	"github.com/dmitrijs2005/memorymap/internal/logging"
	"github.com/dmitrijs2005/memorymap/internal/models"
	"github.com/dmitrijs2005/memorymap/internal/repositories/repomanager"
	"github.com/dmitrijs2005/memorymap/internal/share"
	"github.com/dmitrijs2005/memorymap/internal/store"
)

// Sessions issues and reads login tokens. *auth.SessionProvider implements it.
type Sessions interface {
	Issue(userID string) (string, error)
	Principal(token string) (models.Principal, error)
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	memories services.MemoryService
	sessions Sessions

	token    string
	userName string
	loc      *time.Location

	reader  lineReader
	out     io.Writer
	closers []func() error
}

// NewApp opens the configured backend, rehydrates the store and wires the
// services.
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
		return nil, fmt.Errorf("open storage: %w", err)
	}

	st := store.Load(ctx, repo, logger)
	ms := services.NewMemoryService(st, share.NewCodec(c.ShareBaseURL), loc)

	reader, closeReader, err := newLineReader(os.Stdin, os.Stdout)
	if err != nil {
		_ = closeRepo()
		return nil, err
	}

	return &App{
		config:   c,
		logger:   logger.With("module", "cli"),
		memories: ms,
		sessions: auth.NewSessionProvider(cryptox.SessionKey(c.SessionSecret), c.SessionTTL),
		loc:      loc,
		reader:   reader,
		out:      os.Stdout,
		closers:  []func() error{closeReader.Close, closeRepo},
	}, nil
}

// Run starts the REPL and blocks until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to memorymap (type 'help' for commands)")
	if err := a.memories.PersistErr(); err != nil {
		fmt.Fprintln(a.out, "Warning: stored memories could not be loaded, starting empty")
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close releases the line reader and the storage backend.
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn(context.Background(), "close failed", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return "(guest)"
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) isLoggedIn() bool {
	_, err := a.sessions.Principal(a.token)
	return err == nil
}

// principal re-reads the session on every call so expiry takes effect.
func (a *App) principal() (models.Principal, error) {
	return a.sessions.Principal(a.token)
}
