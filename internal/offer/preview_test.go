package offer

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPreviewStore(t *testing.T) (*PreviewStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPreviewStore(client, time.Minute), mr
}

func result(pdf string) Result {
	return Result{DocumentNo: "SO-1", Filename: "SO-1.pdf", PDF: []byte(pdf)}
}

func TestPreviewAcquireAndRead(t *testing.T) {
	store, _ := newTestPreviewStore(t)

	p, err := store.Acquire(t.Context(), "alice", result("%PDF-1"), Polish)
	require.NoError(t, err)
	require.NotEmpty(t, p.Handle)

	got, pdf, err := store.PDF(t.Context(), "alice", p.Handle)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1", string(pdf))
	assert.Equal(t, Polish, got.Language)
	assert.Equal(t, "SO-1.pdf", got.Filename)

	cur, err := store.Current(t.Context(), "alice", "SO-1")
	require.NoError(t, err)
	assert.Equal(t, p.Handle, cur.Handle)
}

func TestPreviewAcquireReleasesPreviousHandle(t *testing.T) {
	store, mr := newTestPreviewStore(t)

	first, err := store.Acquire(t.Context(), "alice", result("%PDF-1"), English)
	require.NoError(t, err)
	second, err := store.Acquire(t.Context(), "alice", result("%PDF-2"), Polish)
	require.NoError(t, err)

	assert.NotEqual(t, first.Handle, second.Handle)
	assert.False(t, mr.Exists(previewKey(first.Handle)))
	_, _, err = store.PDF(t.Context(), "alice", first.Handle)
	assert.ErrorIs(t, err, ErrPreviewNotFound)

	_, pdf, err := store.PDF(t.Context(), "alice", second.Handle)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-2", string(pdf))
}

func TestPreviewIsOwnerScoped(t *testing.T) {
	store, _ := newTestPreviewStore(t)

	p, err := store.Acquire(t.Context(), "alice", result("%PDF-1"), English)
	require.NoError(t, err)

	_, _, err = store.PDF(t.Context(), "bob", p.Handle)
	assert.ErrorIs(t, err, ErrPreviewNotFound)
	_, err = store.Current(t.Context(), "bob", "SO-1")
	assert.ErrorIs(t, err, ErrPreviewNotFound)
}

func TestPreviewRelease(t *testing.T) {
	store, mr := newTestPreviewStore(t)

	p, err := store.Acquire(t.Context(), "alice", result("%PDF-1"), English)
	require.NoError(t, err)

	require.NoError(t, store.Release(t.Context(), "alice", "SO-1"))
	require.NoError(t, store.Release(t.Context(), "alice", "SO-1"))

	assert.False(t, mr.Exists(previewKey(p.Handle)))
	assert.False(t, mr.Exists(ownerKey("alice", "SO-1")))
}

func TestPreviewExpires(t *testing.T) {
	store, mr := newTestPreviewStore(t)

	p, err := store.Acquire(t.Context(), "alice", result("%PDF-1"), English)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, _, err = store.PDF(t.Context(), "alice", p.Handle)
	assert.ErrorIs(t, err, ErrPreviewNotFound)
	_, err = store.Current(t.Context(), "alice", "SO-1")
	assert.ErrorIs(t, err, ErrPreviewNotFound)
}

func TestPreviewConcurrentAcquireLeavesOneHandle(t *testing.T) {
	store, mr := newTestPreviewStore(t)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		acquired int
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Acquire(t.Context(), "alice", result("%PDF"), English)
			if err != nil {
				assert.True(t, errors.Is(err, redis.TxFailedErr), err.Error())
				return
			}
			mu.Lock()
			acquired++
			mu.Unlock()
		}()
	}
	wg.Wait()
	require.Positive(t, acquired)

	var handles []string
	for _, k := range mr.Keys() {
		if strings.HasPrefix(k, "preview:") && !strings.HasPrefix(k, "preview:owner:") {
			handles = append(handles, strings.TrimPrefix(k, "preview:"))
		}
	}
	require.Len(t, handles, 1)

	cur, err := store.Current(t.Context(), "alice", "SO-1")
	require.NoError(t, err)
	assert.Equal(t, handles[0], cur.Handle)
}
