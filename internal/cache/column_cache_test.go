package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/formsync/formsync-api/internal/cache"
	"github.com/formsync/formsync-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func TestColumnCache_Get_ReadThrough(t *testing.T) {
	calls := 0
	c := cache.NewColumnCache(func(ctx context.Context, itemID string, columnIDs []string) (map[string]string, error) {
		calls++
		return map[string]string{"col_a": "value"}, nil
	}, 60)

	values, err := c.Get(context.Background(), "321", []string{"col_a"})
	require.NoError(t, err)
	assert.Equal(t, "value", values["col_a"])

	// Second read is served from the cache
	_, err = c.Get(context.Background(), "321", []string{"col_a"})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestColumnCache_Get_KeyIncludesColumnSet(t *testing.T) {
	calls := 0
	c := cache.NewColumnCache(func(ctx context.Context, itemID string, columnIDs []string) (map[string]string, error) {
		calls++
		return map[string]string{}, nil
	}, 60)

	_, err := c.Get(context.Background(), "321", []string{"col_a"})
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "321", []string{"col_a", "col_b"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	// Column order does not matter
	_, err = c.Get(context.Background(), "321", []string{"col_b", "col_a"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestColumnCache_Get_ErrorsAreNotCached(t *testing.T) {
	calls := 0
	c := cache.NewColumnCache(func(ctx context.Context, itemID string, columnIDs []string) (map[string]string, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("api down")
		}
		return map[string]string{"col_a": "value"}, nil
	}, 60)

	_, err := c.Get(context.Background(), "321", []string{"col_a"})
	assert.Error(t, err)

	values, err := c.Get(context.Background(), "321", []string{"col_a"})
	require.NoError(t, err)
	assert.Equal(t, "value", values["col_a"])
	assert.Equal(t, 2, calls)
}
