// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/alert-digest/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir(), types.IndexConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecords() []types.ArticleRecord {
	return []types.ArticleRecord{
		{
			ID: "a1", Title: "Offshore wind farm approved", Link: "https://example.com/wind",
			Source: "example.com", PubDate: "2024-01-02",
			Summary: "- Regulators approved the offshore wind farm.", AddedOn: "2024-01-02",
		},
		{
			ID: "b2", Title: "Solar subsidy extended", Link: "https://example.com/solar",
			Source: "example.com", PubDate: "2024-01-01",
			Summary: "- The solar subsidy was extended by two years.", AddedOn: "2024-01-01",
		},
	}
}

func TestRebuildAndSearch(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Rebuild(sampleRecords()))

	matches, err := store.Search("wind", 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	assert.Equal(t, "a1", matches[0].Record.ID)
	assert.Equal(t, "Offshore wind farm approved", matches[0].Record.Title)
	assert.Contains(t, matches[0].Snippet, "[wind]")
}

func TestRebuildReplacesContents(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Rebuild(sampleRecords()))

	// Rebuild with only one record: the other must be gone.
	require.NoError(t, store.Rebuild(sampleRecords()[:1]))

	matches, err := store.Search("solar", 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearchNoMatches(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Rebuild(sampleRecords()))

	matches, err := store.Search("geothermal", 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearchEmptyQuery(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Search("  ", 0)
	assert.Error(t, err)
}

func TestSearchLimit(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Rebuild(sampleRecords()))

	matches, err := store.Search("extended OR approved", 1)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRebuildEmptyHistory(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Rebuild(sampleRecords()))
	require.NoError(t, store.Rebuild(nil))

	matches, err := store.Search("wind", 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
