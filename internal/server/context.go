package server

import (
	"context"
	"sync"

	"github.com/teemow/calctl/internal/calendar"
	"github.com/teemow/calctl/internal/instrumentation"
	"github.com/teemow/calctl/internal/store"
)

// ServerContext holds the shared state for the MCP server: the account
// store, the per-account calendar client cache and the metrics recorder.
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	store    *store.Store
	cache    *calendar.Cache
	provider *instrumentation.Provider
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context around the given store.
// The instrumentation provider may be nil, in which case recorders are
// replaced with no-ops.
func NewServerContext(ctx context.Context, st *store.Store, provider *instrumentation.Provider) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		store:    st,
		cache:    calendar.NewCache(st),
		provider: provider,
	}
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Store returns the account store.
func (sc *ServerContext) Store() *store.Store {
	return sc.store
}

// ClientForAccount returns a calendar client for the given account email,
// building and caching it on first use.
func (sc *ServerContext) ClientForAccount(ctx context.Context, email string) (*calendar.Client, error) {
	return sc.cache.Client(ctx, email)
}

// Cache returns the calendar client cache.
func (sc *ServerContext) Cache() *calendar.Cache {
	return sc.cache
}

// Metrics returns the metrics recorder. Never nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	if sc.provider == nil {
		return &instrumentation.Metrics{}
	}
	return sc.provider.Metrics()
}

// IsShutdown returns whether the server has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context. Safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
