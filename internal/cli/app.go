package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/userdir/internal/buildinfo"
	"github.com/dmitrijs2005/userdir/internal/config"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/dmitrijs2005/userdir/internal/models"
	"github.com/dmitrijs2005/userdir/internal/randomuser"
	"github.com/dmitrijs2005/userdir/internal/repositories/repomanager"
	"github.com/dmitrijs2005/userdir/internal/state"
	"github.com/dmitrijs2005/userdir/internal/telemetry"
	"go.opentelemetry.io/otel"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
	ModeManual  Mode = "manual offline"
)

func modeOf(s state.Snapshot) Mode {
	switch {
	case s.IsManualOffline:
		return ModeManual
	case s.IsOffline:
		return ModeOffline
	}
	return ModeOnline
}

type App struct {
	config *config.Config
	store  *state.Store
	repos  repomanager.RepositoryManager
	logger logging.Logger
	out    io.Writer
	width  func() int

	mu       sync.Mutex
	mode     Mode
	lastView []models.User

	shutdown func(context.Context) error
}

// NewApp wires storage, the remote source, telemetry and the store from c.
// Logs go to errOut; user-facing output to out.
func NewApp(ctx context.Context, c *config.Config, out, errOut io.Writer) (*App, error) {
	logger, err := logging.New(errOut, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	shutdown, err := telemetry.Setup(ctx, c.OTelEndpoint, c.ServiceName)
	if err != nil {
		logger.Warn(ctx, "tracing disabled", "err", err)
	}

	repos, err := repomanager.Open(ctx, c.DatabasePath)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("open database: %w", err)
	}

	client, err := randomuser.NewClient(c.APIURL,
		randomuser.WithTimeout(c.RequestTimeout),
		randomuser.WithUserAgent(buildinfo.UserAgent()),
	)
	if err != nil {
		_ = repos.Close()
		_ = shutdown(ctx)
		return nil, fmt.Errorf("init api client: %w", err)
	}

	store := state.New(client, repos,
		state.WithLogger(logger),
		state.WithTracerProvider(otel.GetTracerProvider()),
		state.WithManualOffline(c.StartOffline),
	)

	a := newApp(store, repos, logger, out)
	a.config = c
	a.shutdown = shutdown
	return a, nil
}

func newApp(store *state.Store, repos repomanager.RepositoryManager, logger logging.Logger, out io.Writer) *App {
	return &App{
		store:    store,
		repos:    repos,
		logger:   logger,
		out:      &lockedWriter{w: out},
		width:    terminalWidth,
		mode:     modeOf(store.Snapshot()),
		shutdown: func(context.Context) error { return nil },
	}
}

// Run loads favorites and the first page, then serves the REPL on in until
// EOF, exit or ctx cancellation.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	defer a.Close(context.WithoutCancel(ctx))

	fmt.Fprintln(a.out, "userdir (type 'help' for commands)")

	sigs, unsubscribe := a.store.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.watchMode(ctx, sigs)
	}()
	defer func() {
		unsubscribe()
		<-done
	}()

	a.store.Bootstrap(ctx)
	_ = a.List(ctx, nil)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(in))
	return nil
}

// Close flushes telemetry and closes the database.
func (a *App) Close(ctx context.Context) error {
	return errors.Join(a.shutdown(ctx), a.repos.Close())
}

// setMode reports online/offline transitions.
func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

func (a *App) watchMode(ctx context.Context, sigs <-chan struct{}) {
	for {
		select {
		case _, ok := <-sigs:
			if !ok {
				return
			}
			a.setMode(modeOf(a.store.Snapshot()))
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	snap := a.store.Snapshot()
	s := fmt.Sprintf("%s p%d", modeOf(snap), snap.CurrentPage)
	if snap.SearchTerm != "" {
		s += fmt.Sprintf(" %q", snap.SearchTerm)
	}
	return fmt.Sprintf("(%s) ", s)
}

func terminalWidth() int {
	return termWidth(os.Stdout)
}
