// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists the append-only article history and implements
// its merge and ordering rules. The history file is the system of record:
// derived documents are always regenerated from it, never from the current
// run's batch alone.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/pdiddy/alert-digest/internal/fsutil"
	"github.com/pdiddy/alert-digest/pkg/types"
)

// Load reads the history file, a JSON array of article records. A missing
// file yields an empty history and a nil error. Unreadable or malformed
// content yields an empty history with the cause returned, so the caller
// can log it and continue rather than abort the run.
func Load(path string) ([]types.ArticleRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var records []types.ArticleRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}
	return records, nil
}

// MergeAndSort deduplicates existing++batch by record ID and returns the
// result in (pub_date, added_on) descending lexicographic order.
//
// Dedup is last-write-wins by append order: iterating the concatenation in
// order, a later record with the same ID replaces the earlier one in place.
// Records with an empty ID are dropped.
//
// Both date fields are ISO day strings, so lexicographic comparison equals
// chronological comparison. Empty dates are lexicographically smallest and
// sort last under the descending order; undated records end up at the
// bottom. The sort is stable: records with equal keys keep their relative
// input order.
func MergeAndSort(existing, batch []types.ArticleRecord) []types.ArticleRecord {
	position := make(map[string]int)
	merged := make([]types.ArticleRecord, 0, len(existing)+len(batch))

	for _, group := range [][]types.ArticleRecord{existing, batch} {
		for _, r := range group {
			if r.ID == "" {
				continue
			}
			if i, ok := position[r.ID]; ok {
				merged[i] = r
				continue
			}
			position[r.ID] = len(merged)
			merged = append(merged, r)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.PubDate != b.PubDate {
			return a.PubDate > b.PubDate
		}
		return a.AddedOn > b.AddedOn
	})
	return merged
}

// Save writes the history as a JSON array via temp-and-rename. A returned
// error leaves the on-disk history stale; the caller logs it at error level
// and keeps rendering from its in-memory snapshot.
func Save(path string, records []types.ArticleRecord) error {
	if records == nil {
		records = []types.ArticleRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := fsutil.WriteFileAtomic(path, append(data, '\n')); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}
