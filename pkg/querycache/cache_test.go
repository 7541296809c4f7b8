package querycache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stroyhub/backoffice/pkg/querycache"
)

func TestDistinctParamsAreDisjointEntries(t *testing.T) {
	c := querycache.New()
	c.Set(querycache.NewKey("cascade.detail", 1), []string{"a"})
	c.Set(querycache.NewKey("cascade.detail", 2), []string{"b"})

	v, ok := c.Get(querycache.NewKey("cascade.detail", 1))
	require.True(t, ok)
	require.Equal(t, []string{"a"}, v)

	_, ok = c.Get(querycache.NewKey("cascade.detail", 3))
	require.False(t, ok)
}

func TestGetOrLoadCachesOnlySuccess(t *testing.T) {
	c := querycache.New()
	key := querycache.NewKey("sets.list")

	loads := 0
	failing := func(context.Context) (any, error) {
		loads++
		return nil, errors.New("backend down")
	}
	_, err := c.GetOrLoad(context.Background(), key, failing)
	require.Error(t, err)
	require.Equal(t, 0, c.Len())

	ok := func(context.Context) (any, error) {
		loads++
		return 42, nil
	}
	v, err := c.GetOrLoad(context.Background(), key, ok)
	require.NoError(t, err)
	require.Equal(t, 42, v)

	v, err = c.GetOrLoad(context.Background(), key, failing)
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.Equal(t, 2, loads)
}

func TestInvalidateOp(t *testing.T) {
	c := querycache.New()
	c.Set(querycache.NewKey("sets.list"), 1)
	c.Set(querycache.NewKey("sets.rows", 5), 2)
	c.Set(querycache.NewKey("sets.rows", 6), 3)
	c.Set(querycache.NewKey("tags.list"), 4)

	c.InvalidateOp("sets.list", "sets.rows")
	require.Equal(t, 1, c.Len())
	_, ok := c.Get(querycache.NewKey("tags.list"))
	require.True(t, ok)
}
