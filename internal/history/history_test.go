// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdiddy/alert-digest/pkg/types"
)

func rec(id, pubDate, addedOn string) types.ArticleRecord {
	return types.ArticleRecord{ID: id, Title: "t-" + id, PubDate: pubDate, AddedOn: addedOn}
}

func ids(records []types.ArticleRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestMergeAndSortDedup(t *testing.T) {
	existing := []types.ArticleRecord{
		rec("a1", "2024-01-02", "2024-01-02"),
		rec("b2", "2024-01-01", "2024-01-01"),
	}
	batch := []types.ArticleRecord{
		{ID: "b2", Title: "replacement", PubDate: "2024-01-01", AddedOn: "2024-01-03"},
		rec("c3", "2024-01-03", "2024-01-03"),
	}

	merged := MergeAndSort(existing, batch)

	if got, want := ids(merged), []string{"c3", "a1", "b2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("merged order = %v, want %v", got, want)
	}
	// The later-appended b2 wins.
	if merged[2].Title != "replacement" || merged[2].AddedOn != "2024-01-03" {
		t.Errorf("b2 = %+v, want the later-appended record", merged[2])
	}
}

func TestMergeAndSortIdempotent(t *testing.T) {
	existing := []types.ArticleRecord{
		rec("a1", "2024-01-02", "2024-01-02"),
		rec("b2", "2024-01-01", "2024-01-01"),
	}
	once := MergeAndSort(existing, nil)
	twice := MergeAndSort(once, once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("re-merging history with itself changed it:\n%v\n%v", once, twice)
	}
}

func TestMergeAndSortLastWriteWinsWithinBatch(t *testing.T) {
	// Two records with the same id in one batch: the later one wins, even
	// when its added_on is older. Append order decides, not recency.
	batch := []types.ArticleRecord{
		{ID: "a1", Title: "newer", PubDate: "2024-01-05", AddedOn: "2024-01-05"},
		{ID: "a1", Title: "older", PubDate: "2024-01-05", AddedOn: "2024-01-01"},
	}
	merged := MergeAndSort(nil, batch)

	if len(merged) != 1 {
		t.Fatalf("merged has %d records, want 1", len(merged))
	}
	if merged[0].Title != "older" {
		t.Errorf("kept %q, want the last-appended record", merged[0].Title)
	}
}

func TestMergeAndSortOrdering(t *testing.T) {
	batch := []types.ArticleRecord{
		rec("undated", "", "2024-01-04"),
		rec("old", "2024-01-01", "2024-01-01"),
		rec("new", "2024-01-03", "2024-01-03"),
		rec("tieA", "2024-01-02", "2024-01-05"),
		rec("tieB", "2024-01-02", "2024-01-04"),
	}
	merged := MergeAndSort(nil, batch)

	// Descending (pub_date, added_on); empty pub_date sorts last.
	want := []string{"new", "tieA", "tieB", "old", "undated"}
	if got := ids(merged); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestMergeAndSortStability(t *testing.T) {
	// Equal sort keys keep their relative input order.
	batch := []types.ArticleRecord{
		rec("first", "2024-01-02", "2024-01-02"),
		rec("second", "2024-01-02", "2024-01-02"),
		rec("third", "2024-01-02", "2024-01-02"),
	}
	merged := MergeAndSort(nil, batch)

	want := []string{"first", "second", "third"}
	if got := ids(merged); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestMergeAndSortDropsEmptyID(t *testing.T) {
	merged := MergeAndSort(nil, []types.ArticleRecord{
		{Title: "no id"},
		rec("a1", "2024-01-01", "2024-01-01"),
	})
	if got := ids(merged); !reflect.DeepEqual(got, []string{"a1"}) {
		t.Errorf("merged = %v, want only a1", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	records, err := Load(filepath.Join(t.TempDir(), "all_articles.json"))
	if err != nil {
		t.Fatalf("Load of missing file returned error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Load of missing file returned %d records", len(records))
	}
}

func TestLoadMalformedFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "not json at all"},
		{"not an array", `{"id":"a1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "all_articles.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			records, err := Load(path)
			if err == nil {
				t.Error("Load of malformed file returned nil error")
			}
			if len(records) != 0 {
				t.Errorf("Load of malformed file returned %d records, want 0", len(records))
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_articles.json")
	records := []types.ArticleRecord{
		{
			ID: "a1", Title: "First", Link: "https://example.com/1",
			Source: "example.com", PubDate: "2024-01-02",
			Summary: "- One.\n- Two.", AddedOn: "2024-01-02",
		},
		rec("b2", "2024-01-01", "2024-01-01"),
	}

	if err := Save(path, records); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(records, loaded) {
		t.Errorf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", records, loaded)
	}
}

func TestSaveNilHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_articles.json")
	if err := Save(path, nil); err != nil {
		t.Fatalf("Save(nil): %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]\n" {
		t.Errorf("nil history serialized as %q, want empty JSON array", data)
	}
}
