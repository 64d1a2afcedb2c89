// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/coursedoc/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.HistoryConfig{Dir: t.TempDir(), MaxResults: 20})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := newTestStore(t)

	when := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	require.NoError(t, store.Record(Entry{
		InputPath:   "/in/doc.docx",
		OutputPath:  "/out/doc.md",
		Status:      types.ConversionDone,
		Images:      2,
		Warnings:    1,
		ConvertedAt: when,
	}))
	require.NoError(t, store.Record(Entry{
		InputPath: "/in/broken.docx",
		Status:    types.ConversionFailed,
		Err:       "not a valid DOCX file",
	}))

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "/in/broken.docx", entries[0].InputPath)
	assert.Equal(t, types.ConversionFailed, entries[0].Status)
	assert.Equal(t, "not a valid DOCX file", entries[0].Err)
	assert.False(t, entries[0].ConvertedAt.IsZero())

	assert.Equal(t, "/in/doc.docx", entries[1].InputPath)
	assert.Equal(t, "/out/doc.md", entries[1].OutputPath)
	assert.Equal(t, types.ConversionDone, entries[1].Status)
	assert.Equal(t, 2, entries[1].Images)
	assert.Equal(t, 1, entries[1].Warnings)
	assert.True(t, when.Equal(entries[1].ConvertedAt))
}

func TestStore_RecentLimit(t *testing.T) {
	store := newTestStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(Entry{
			InputPath: fmt.Sprintf("/in/doc-%d.docx", i),
			Status:    types.ConversionDone,
		}))
	}

	entries, err := store.Recent(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "/in/doc-4.docx", entries[0].InputPath)
}

func TestStore_RecentDefaultLimit(t *testing.T) {
	store, err := NewStore(types.HistoryConfig{Dir: t.TempDir(), MaxResults: 2})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	for i := 0; i < 4; i++ {
		require.NoError(t, store.Record(Entry{
			InputPath: fmt.Sprintf("/in/doc-%d.docx", i),
			Status:    types.ConversionDone,
		}))
	}

	entries, err := store.Recent(0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStore_Empty(t *testing.T) {
	store := newTestStore(t)
	entries, err := store.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_ReopensExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	cfg := types.HistoryConfig{Dir: dir}

	store, err := NewStore(cfg)
	require.NoError(t, err)
	require.NoError(t, store.Record(Entry{InputPath: "/in/doc.docx", Status: types.ConversionDone}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(cfg)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.Recent(10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
