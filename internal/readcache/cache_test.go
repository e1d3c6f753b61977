package readcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_InvalidateByTag(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)

	require.NoError(t, c.Set(ctx, Key(1, Appointments, "all"), []int{1, 2}, Tag(1, Appointments)))
	require.NoError(t, c.Set(ctx, Key(1, Products, "all"), []int{3}, Tag(1, Products)))
	require.NoError(t, c.Set(ctx, Key(2, Appointments, "all"), []int{9}, Tag(2, Appointments)))

	require.NoError(t, c.Invalidate(ctx, Tag(1, Appointments)))

	var got []int
	found, err := c.Get(ctx, Key(1, Appointments, "all"), &got)
	require.NoError(t, err)
	assert.False(t, found)

	found, _ = c.Get(ctx, Key(1, Products, "all"), &got)
	assert.True(t, found, "other entity untouched")

	found, _ = c.Get(ctx, Key(2, Appointments, "all"), &got)
	assert.True(t, found, "other organization untouched")
	assert.Equal(t, []int{9}, got)
}

func TestMemory_Expires(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v"))
	now = now.Add(2 * time.Minute)

	var got string
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemory_SweepsExpiredOnSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	for day := 1; day <= 3; day++ {
		require.NoError(t, c.Set(ctx, Key(1, Finance, "day", day), day, Tag(1, Finance)))
	}
	require.Len(t, c.entries, 3)

	now = now.Add(2 * time.Minute)
	require.NoError(t, c.Set(ctx, Key(1, Dashboard, "day", 4), 4, Tag(1, Dashboard)))

	assert.Len(t, c.entries, 1)
	assert.NotContains(t, c.tags, Tag(1, Finance))
	assert.Len(t, c.tags[Tag(1, Dashboard)], 1)
}

func TestRemember(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)
	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"a"}, nil
	}

	key, tags := Key(1, Clients, "q"), Tags(1, Clients)

	v, err := Remember(ctx, c, key, tags, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, v)

	_, err = Remember(ctx, c, key, tags, load)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	Forget(ctx, c, 1, Clients)
	_, err = Remember(ctx, c, key, tags, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string, any) (bool, error)     { return false, errors.New("down") }
func (brokenCache) Set(context.Context, string, any, ...string) error { return errors.New("down") }
func (brokenCache) Invalidate(context.Context, ...string) error        { return errors.New("down") }

func TestRemember_CacheErrorsDoNotFailReads(t *testing.T) {
	v, err := Remember(context.Background(), brokenCache{}, "k", nil, func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	Forget(context.Background(), brokenCache{}, 1, Products)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "org:3:appointments", Tag(3, Appointments))
	assert.Equal(t, "org:3:appointments:7:scheduled", Key(3, Appointments, 7, "scheduled"))
}
