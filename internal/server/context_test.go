package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/calctl/internal/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	return st
}

func TestServerContext_Lifecycle(t *testing.T) {
	sc := NewServerContext(context.Background(), testStore(t), nil)

	assert.False(t, sc.IsShutdown())
	assert.NotNil(t, sc.Store())
	assert.NotNil(t, sc.Cache())

	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())

	select {
	case <-sc.Context().Done():
	default:
		t.Error("expected context to be cancelled after shutdown")
	}

	// Shutdown is idempotent
	require.NoError(t, sc.Shutdown())
}

func TestServerContext_MetricsNeverNil(t *testing.T) {
	sc := NewServerContext(context.Background(), testStore(t), nil)

	m := sc.Metrics()
	require.NotNil(t, m)

	// Zero-value recorder must be callable
	m.RecordToolInvocation(context.Background(), "calendar_list_events", "success", 0)
}

func TestServerContext_ClientForUnknownAccount(t *testing.T) {
	sc := NewServerContext(context.Background(), testStore(t), nil)

	_, err := sc.ClientForAccount(context.Background(), "nobody@example.com")
	var notFound *store.AccountNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nobody@example.com", notFound.Email)
}
