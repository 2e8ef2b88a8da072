package calendar

import (
	"context"
	"sync"

	"github.com/teemow/calctl/internal/store"
)

// Cache memoizes one authenticated Client per account email for the lifetime
// of the process. There is no expiry and no cross-process sharing; the cache
// is rebuilt from scratch on every invocation of the program.
type Cache struct {
	store *store.Store

	mu      sync.Mutex
	clients map[string]*Client

	// build is a seam for tests; production code constructs real clients.
	build func(ctx context.Context, account store.Account) (*Client, error)
}

// NewCache creates a cache backed by the given account store.
func NewCache(st *store.Store) *Cache {
	return &Cache{
		store:   st,
		clients: make(map[string]*Client),
		build:   NewClient,
	}
}

// Client returns the cached client for email, constructing and memoizing it
// on first use. An unknown email fails with AccountNotFoundError.
func (c *Cache) Client(ctx context.Context, email string) (*Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.clients[email]; ok {
		return client, nil
	}

	account, ok := c.store.Account(email)
	if !ok {
		return nil, &store.AccountNotFoundError{Email: email}
	}

	client, err := c.build(ctx, account)
	if err != nil {
		return nil, err
	}

	c.clients[email] = client
	return client, nil
}

// Evict removes any cached client for email. Invoked whenever the account is
// deleted from storage so the cache never serves a removed account.
func (c *Cache) Evict(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.clients, email)
}
