package dao_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/subexpiry/dao"
	sub_errors "github.com/dev-mohitbeniwal/subexpiry/errors"
)

func setupCacheDAO(t *testing.T) (*dao.SubscriptionCacheDAO, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return dao.NewSubscriptionCacheDAO(client, 10), mr
}

func TestSubscriptionCacheDAO_ScanKeys(t *testing.T) {
	cacheDAO, mr := setupCacheDAO(t)
	want := make([]string, 0, 25)
	for i := 0; i < 25; i++ {
		id := fmt.Sprintf("fbid-%02d", i)
		require.NoError(t, mr.Set(id, "2099-01-01"))
		want = append(want, id)
	}

	seen := map[string]bool{}
	err := cacheDAO.ScanKeys(context.Background(), func(id string) error {
		seen[id] = true
		return nil
	})
	require.NoError(t, err)

	got := make([]string, 0, len(seen))
	for id := range seen {
		got = append(got, id)
	}
	sort.Strings(got)
	assert.Equal(t, want, got)
}

func TestSubscriptionCacheDAO_ScanKeysEmpty(t *testing.T) {
	cacheDAO, _ := setupCacheDAO(t)
	calls := 0
	err := cacheDAO.ScanKeys(context.Background(), func(string) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestSubscriptionCacheDAO_ScanKeysStopsOnCallbackError(t *testing.T) {
	cacheDAO, mr := setupCacheDAO(t)
	require.NoError(t, mr.Set("a", "E"))
	require.NoError(t, mr.Set("b", "E"))

	stop := errors.New("stop")
	err := cacheDAO.ScanKeys(context.Background(), func(string) error { return stop })
	assert.ErrorIs(t, err, stop)
}

func TestSubscriptionCacheDAO_ScanKeysUnavailable(t *testing.T) {
	cacheDAO, mr := setupCacheDAO(t)
	mr.Close()

	err := cacheDAO.ScanKeys(context.Background(), func(string) error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, sub_errors.ErrCacheOperation)
}

func TestSubscriptionCacheDAO_GetSet(t *testing.T) {
	cacheDAO, mr := setupCacheDAO(t)
	ctx := context.Background()

	_, found, err := cacheDAO.Get(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, mr.Set("bob", "2000-01-01"))
	value, found, err := cacheDAO.Get(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "2000-01-01", value)

	require.NoError(t, cacheDAO.Set(ctx, "bob", "E"))
	mr.CheckGet(t, "bob", "E")
	assert.Zero(t, mr.TTL("bob"))
}

func TestSubscriptionCacheDAO_GetWrongType(t *testing.T) {
	cacheDAO, mr := setupCacheDAO(t)
	_, err := mr.Lpush("list", "x")
	require.NoError(t, err)

	_, _, err = cacheDAO.Get(context.Background(), "list")
	assert.ErrorIs(t, err, sub_errors.ErrCacheOperation)
}
