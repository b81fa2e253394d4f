package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/recordservice"
	"github.com/ianroy/makerflowPM/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, statuses ...string) (*Cache, *testutil.FakeService, []int64) {
	t.Helper()
	svc := testutil.NewFakeService()
	ids := svc.AddTasks(statuses...)
	c := New("u1:tasks:all", models.KindTasks, recordservice.ListParams{}, svc)
	_, err := c.Load(context.Background())
	require.NoError(t, err)
	return c, svc, ids
}

func TestLoadKeepsOrder(t *testing.T) {
	c, _, ids := newTestCache(t, "Todo", "Done", "Blocked")

	records := c.Records()
	require.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, ids[i], rec.ID)
	}
	assert.True(t, c.Loaded())
	assert.Equal(t, 3, c.Len())
}

func TestLoadFailureIsFetchError(t *testing.T) {
	c, svc, _ := newTestCache(t, "Todo")
	svc.ListErr = recordservice.ErrTransport

	_, err := c.Load(context.Background())
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "u1:tasks:all", fe.BoardKey)
	assert.ErrorIs(t, err, recordservice.ErrTransport)

	// no partial board survives a failed refresh
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Loaded())
}

func TestPatchReturnsPrevious(t *testing.T) {
	c, _, ids := newTestCache(t, "Todo")

	prev, err := c.Patch(ids[0], "priority", "High")
	require.NoError(t, err)
	assert.Equal(t, "Medium", prev)

	rec, ok := c.Get(ids[0])
	require.True(t, ok)
	assert.Equal(t, "High", rec.Get("priority"))

	_, err = c.Patch(999, "priority", "High")
	assert.ErrorIs(t, err, ErrRecordNotCached)
}

func TestGetReturnsSnapshot(t *testing.T) {
	c, _, ids := newTestCache(t, "Todo")

	rec, _ := c.Get(ids[0])
	rec.Set("status", "Done")

	again, _ := c.Get(ids[0])
	assert.Equal(t, "Todo", again.Status())
}

func TestReplaceMergesCanonical(t *testing.T) {
	c, _, ids := newTestCache(t, "Todo")

	require.NoError(t, c.Replace(ids[0], map[string]string{"status": "Done", "score": "12"}))
	rec, _ := c.Get(ids[0])
	assert.Equal(t, "Done", rec.Status())
	assert.Equal(t, "12", rec.Get("score"))
	assert.Equal(t, "Task 1", rec.Title())
}

func TestRemoveAndRestore(t *testing.T) {
	c, _, ids := newTestCache(t, "Todo", "Todo", "Done")

	rec, idx, err := c.Remove(ids[1])
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(ids[1])
	assert.False(t, ok)

	c.Restore(rec, idx)
	records := c.Records()
	require.Len(t, records, 3)
	assert.Equal(t, ids[1], records[1].ID)

	// restoring twice is a no-op
	c.Restore(rec, 0)
	assert.Equal(t, 3, c.Len())
}
