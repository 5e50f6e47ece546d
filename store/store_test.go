package store_test

import (
	"context"
	"crypto/rand"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usherkit/usher/store"
)

var timeNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func timeNowFn() time.Time {
	return timeNow
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	// A unique name per test, to avoid clashing of in-memory SQLite DBs.
	rndName := make([]byte, 12)
	_, err := rand.Read(rndName)
	require.NoError(t, err)

	s, err := store.Open(
		fmt.Sprintf("file:usher-%x?mode=memory&cache=shared", rndName), timeNowFn)
	require.NoError(t, err)
	require.NoError(t, s.Init(context.Background()))
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestCreateAndGetNote(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateNote(ctx, "first", "hello", true)
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, timeNow, created.CreatedAt)

	loaded, err := s.GetNote(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, loaded.ID)
	assert.Equal(t, "first", loaded.Title)
	assert.Equal(t, "hello", loaded.Content)
	assert.True(t, loaded.Pinned)
	assert.True(t, created.CreatedAt.Equal(loaded.CreatedAt))
}

func TestGetNoteNotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.GetNote(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListNotes(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateNote(ctx, "plain", "", false)
	require.NoError(t, err)
	pinned, err := s.CreateNote(ctx, "pinned", "", true)
	require.NoError(t, err)

	notes, err := s.ListNotes(ctx, 10)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	// Pinned notes sort first.
	assert.Equal(t, pinned.ID, notes[0].ID)

	notes, err = s.ListNotes(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestDeleteNote(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateNote(ctx, "doomed", "", false)
	require.NoError(t, err)

	require.NoError(t, s.DeleteNote(ctx, created.ID))
	assert.ErrorIs(t, s.DeleteNote(ctx, created.ID), store.ErrNotFound)
	_, err = s.GetNote(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
