package calendar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/calctl/internal/store"
)

func testCache(t *testing.T) (*Cache, *store.Store, *int) {
	t.Helper()

	st, err := store.Open(t.TempDir())
	require.NoError(t, err)

	cache := NewCache(st)
	builds := 0
	cache.build = func(ctx context.Context, account store.Account) (*Client, error) {
		builds++
		return &Client{email: account.Email}, nil
	}
	return cache, st, &builds
}

func TestCacheMemoizesClient(t *testing.T) {
	cache, st, builds := testCache(t)
	require.NoError(t, st.AddAccount(store.Account{
		Email: "alice@example.com",
		OAuth: store.OAuthMaterial{RefreshToken: "rt"},
	}))

	ctx := context.Background()
	first, err := cache.Client(ctx, "alice@example.com")
	require.NoError(t, err)

	second, err := cache.Client(ctx, "alice@example.com")
	require.NoError(t, err)

	// Construction happens at most once per email per process.
	assert.Same(t, first, second)
	assert.Equal(t, 1, *builds)
}

func TestCacheUnknownAccount(t *testing.T) {
	cache, _, builds := testCache(t)

	_, err := cache.Client(context.Background(), "nobody@example.com")
	var notFound *store.AccountNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nobody@example.com", notFound.Email)
	assert.Zero(t, *builds)
}

func TestCacheEvict(t *testing.T) {
	cache, st, builds := testCache(t)
	require.NoError(t, st.AddAccount(store.Account{
		Email: "alice@example.com",
		OAuth: store.OAuthMaterial{RefreshToken: "rt"},
	}))

	ctx := context.Background()
	_, err := cache.Client(ctx, "alice@example.com")
	require.NoError(t, err)

	cache.Evict("alice@example.com")

	// A fresh client is constructed after eviction.
	_, err = cache.Client(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, *builds)
}

func TestCacheEvictedDeletedAccountNotServed(t *testing.T) {
	cache, st, _ := testCache(t)
	require.NoError(t, st.AddAccount(store.Account{
		Email: "alice@example.com",
		OAuth: store.OAuthMaterial{RefreshToken: "rt"},
	}))

	ctx := context.Background()
	_, err := cache.Client(ctx, "alice@example.com")
	require.NoError(t, err)

	// Delete from storage and evict, as the account removal path does.
	removed, err := st.DeleteAccount("alice@example.com")
	require.NoError(t, err)
	require.True(t, removed)
	cache.Evict("alice@example.com")

	_, err = cache.Client(ctx, "alice@example.com")
	var notFound *store.AccountNotFoundError
	require.ErrorAs(t, err, &notFound)
}
