// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index maintains a full-text search index over the article
// history. The index is derived data: it is rebuilt wholesale from the
// history file and can always be discarded and regenerated.
package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/alert-digest/pkg/types"
)

const dbFile = "articles.db"

// Store manages the SQLite search index.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Match is one search hit: the stored record plus a highlighted summary
// fragment around the matched terms.
type Match struct {
	Record  types.ArticleRecord
	Snippet string
}

// Open opens or creates the search index in dir, creating the schema when
// missing.
func Open(dir string, cfg types.IndexConfig) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			title TEXT,
			link TEXT,
			source TEXT,
			pub_date TEXT,
			summary TEXT,
			added_on TEXT
		)`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS articles_fts
			USING fts5(id UNINDEXED, title, summary)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Rebuild replaces the index contents with the given records in one
// transaction. The previous contents stay intact if anything fails.
func (s *Store) Rebuild(records []types.ArticleRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"articles", "articles_fts"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	insertArticle, err := tx.Prepare(
		`INSERT INTO articles (id, title, link, source, pub_date, summary, added_on)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer insertArticle.Close()

	insertFTS, err := tx.Prepare(
		`INSERT INTO articles_fts (id, title, summary) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing FTS insert: %w", err)
	}
	defer insertFTS.Close()

	for _, r := range records {
		if _, err := insertArticle.Exec(r.ID, r.Title, r.Link, r.Source, r.PubDate, r.Summary, r.AddedOn); err != nil {
			return fmt.Errorf("inserting article %s: %w", r.ID, err)
		}
		if _, err := insertFTS.Exec(r.ID, r.Title, r.Summary); err != nil {
			return fmt.Errorf("indexing article %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing rebuild: %w", err)
	}
	return nil
}

// Search runs a full-text query over titles and summaries and returns up
// to limit matches ranked by relevance. A limit of 0 uses the configured
// default.
func (s *Store) Search(query string, limit int) ([]Match, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.Query(
		`SELECT a.id, a.title, a.link, a.source, a.pub_date, a.summary, a.added_on,
		        snippet(articles_fts, 2, '[', ']', '...', 12)
		 FROM articles_fts f
		 JOIN articles a ON a.id = f.id
		 WHERE articles_fts MATCH ?
		 ORDER BY bm25(articles_fts)
		 LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.Record.ID, &m.Record.Title, &m.Record.Link,
			&m.Record.Source, &m.Record.PubDate, &m.Record.Summary,
			&m.Record.AddedOn, &m.Snippet); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading matches: %w", err)
	}
	return matches, nil
}
