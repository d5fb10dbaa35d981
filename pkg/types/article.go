// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the alert-digest pipeline.
package types

// ArticleRecord is the unit of history: one summarized article, keyed by a
// stable content identity. The history file is a JSON array of these records.
type ArticleRecord struct {
	// ID is a short digest of the canonical article URL, used as the
	// dedup key. Unique within the history; a later-appended record with
	// the same ID overwrites the earlier one.
	ID string `json:"id"`

	// Title is the article title, "(Untitled)" when the feed gave none.
	Title string `json:"title"`

	// Link is the canonical article URL after unwrapping redirect wrappers.
	Link string `json:"link"`

	// Source is the registrable domain of Link, without a leading "www.".
	Source string `json:"source"`

	// PubDate is the publication date as "YYYY-MM-DD", or empty when the
	// feed did not provide a parseable date.
	PubDate string `json:"pub_date"`

	// Summary is the pre-rendered bullet text, or the literal fallback
	// sentence when no text could be summarized.
	Summary string `json:"summary"`

	// AddedOn is the "YYYY-MM-DD" date the record was first persisted.
	AddedOn string `json:"added_on"`
}

// Candidate is a feed entry that survived link and identity gating and is
// waiting for body resolution and summarization.
type Candidate struct {
	ID      string
	Title   string
	Link    string
	Source  string
	Hint    string
	PubDate string
}
