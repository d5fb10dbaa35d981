// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives the reconciliation run: load persisted state,
// collect new records, merge them into history, persist, and regenerate
// every derived document from the full history. Each stage receives the
// prior stage's output explicitly; nothing is shared through globals.
//
// Only a configuration error escapes Run. Collaborator failures degrade
// individual items, persistence failures are logged at the store boundary,
// and rendering always proceeds from the best in-memory snapshot so a disk
// fault never blocks delivering output for the current run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/alert-digest/internal/collect"
	"github.com/pdiddy/alert-digest/internal/history"
	"github.com/pdiddy/alert-digest/internal/identity"
	"github.com/pdiddy/alert-digest/internal/index"
	"github.com/pdiddy/alert-digest/internal/render"
	"github.com/pdiddy/alert-digest/pkg/types"
)

const (
	// SeenFile persists the identity set under the output directory.
	SeenFile = "seen.json"

	// HistoryFile persists the article history under the output directory.
	HistoryFile = "all_articles.json"

	// IndexDir holds the derived search index under the output directory.
	IndexDir = "index"

	// FallbackSummary replaces an empty summarization result so degraded
	// records are kept, not dropped.
	FallbackSummary = "- (Summary unavailable - no text detected)."

	defaultMaxPerFeed = 20
	defaultSentences  = 4
)

// ErrNoFeeds is returned when a collection run is started with zero feed
// sources configured. This is a configuration error: the run aborts before
// any side effects with a distinct exit status.
var ErrNoFeeds = errors.New("no feed sources configured")

// Config groups the settings for one run.
type Config struct {
	Collect types.CollectConfig
	Index   types.IndexConfig

	// OutDir is the root for all persisted and rendered files.
	OutDir string
}

// Collector reads feeds and resolves article bodies. collect.Client is the
// production implementation; tests substitute fakes.
type Collector interface {
	ReadFeed(ctx context.Context, feedURL string, maxItems int) ([]collect.Entry, error)
	FetchBody(ctx context.Context, pageURL string) string
}

// Summarizer turns plain text into at most n bullet sentences, or "" when
// there is nothing to summarize.
type Summarizer func(text string, n int) string

// Deps carries the external collaborators a run needs.
type Deps struct {
	Collector Collector
	Summarize Summarizer

	// Now supplies the processing time; defaults to time.Now.
	Now func() time.Time

	// Log receives warnings and errors; defaults to a discard logger.
	Log *slog.Logger

	// Out receives per-item progress output; defaults to io.Discard.
	Out io.Writer
}

func (d Deps) withDefaults() Deps {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Log == nil {
		d.Log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	if d.Out == nil {
		d.Out = io.Discard
	}
	return d
}

// Run executes a full reconciliation: LOAD, COLLECT, MERGE, PERSIST,
// RENDER_ALL, then an index rebuild. It returns ErrNoFeeds before any side
// effect when no feed sources are configured; every other failure is
// handled inside the run.
func Run(ctx context.Context, cfg Config, deps Deps) error {
	if len(cfg.Collect.Feeds) == 0 {
		return ErrNoFeeds
	}
	deps = deps.withDefaults()
	applyDefaults(&cfg)

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	seen, hist := loadState(cfg, deps.Log)
	today := deps.Now().Format("2006-01-02")

	batch := collectBatch(ctx, cfg, deps, seen, today)
	merged := history.MergeAndSort(hist, batch)

	if err := identity.Save(filepath.Join(cfg.OutDir, SeenFile), seen); err != nil {
		deps.Log.Warn("identity set not saved; next run may reprocess items", "error", err)
	}
	if err := history.Save(filepath.Join(cfg.OutDir, HistoryFile), merged); err != nil {
		deps.Log.Error("history not saved; on-disk history is stale", "error", err)
	}

	renderAll(cfg, merged, today, deps)
	rebuildIndex(cfg, merged, deps.Log)
	return nil
}

// Render executes replay mode: regenerate every derived output strictly
// from the persisted history, with no collection, no merge, and no
// requirement that any feeds are configured.
func Render(cfg Config, deps Deps) error {
	deps = deps.withDefaults()

	hist, err := history.Load(filepath.Join(cfg.OutDir, HistoryFile))
	if err != nil {
		deps.Log.Warn("history unreadable, rendering empty", "error", err)
	}

	renderAll(cfg, hist, deps.Now().Format("2006-01-02"), deps)
	rebuildIndex(cfg, hist, deps.Log)
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Collect.MaxPerFeed <= 0 {
		cfg.Collect.MaxPerFeed = defaultMaxPerFeed
	}
	if cfg.Collect.Sentences <= 0 {
		cfg.Collect.Sentences = defaultSentences
	}
}

// loadState reads the identity set and history, degrading each to empty on
// failure. A corrupt identity set only risks reprocessing; a corrupt
// history is logged and the run rebuilds from what it collects.
func loadState(cfg Config, log *slog.Logger) (identity.Set, []types.ArticleRecord) {
	seen, err := identity.Load(filepath.Join(cfg.OutDir, SeenFile))
	if err != nil {
		log.Warn("identity set unreadable, starting empty", "error", err)
	}
	hist, err := history.Load(filepath.Join(cfg.OutDir, HistoryFile))
	if err != nil {
		log.Warn("history unreadable, starting empty", "error", err)
	}
	return seen, hist
}

// collectBatch reads every configured feed and builds the batch of new
// records. Failures are isolated per feed and per item: an unreadable feed
// is skipped, an unsummarizable article becomes a degraded record with the
// fallback summary. Every processed candidate is marked seen and appended.
func collectBatch(ctx context.Context, cfg Config, deps Deps, seen identity.Set, today string) []types.ArticleRecord {
	var batch []types.ArticleRecord
	for _, feedURL := range cfg.Collect.Feeds {
		deps.Log.Info("reading feed", "url", feedURL)
		entries, err := deps.Collector.ReadFeed(ctx, feedURL, cfg.Collect.MaxPerFeed)
		if err != nil {
			deps.Log.Warn("feed unreadable, skipped", "url", feedURL, "error", err)
			continue
		}

		for _, e := range entries {
			c := candidate(e)
			if !cfg.Collect.ForceAll && seen.Contains(c.ID) {
				continue
			}

			body := deps.Collector.FetchBody(ctx, c.Link)
			summary := deps.Summarize(firstNonEmpty(body, c.Hint, c.Title), cfg.Collect.Sentences)
			if summary == "" {
				deps.Log.Warn("no summarizable text, keeping degraded record", "url", c.Link)
				summary = FallbackSummary
			}

			seen.Add(c.ID)
			batch = append(batch, types.ArticleRecord{
				ID:      c.ID,
				Title:   c.Title,
				Link:    c.Link,
				Source:  c.Source,
				PubDate: c.PubDate,
				Summary: summary,
				AddedOn: today,
			})
			fmt.Fprintf(deps.Out, "ok: %s [%s]\n", c.Title, c.Source)
		}
	}
	fmt.Fprintf(deps.Out, "Collected %d new article(s).\n", len(batch))
	return batch
}

// candidate derives the identity-bearing candidate from a feed entry.
func candidate(e collect.Entry) types.Candidate {
	link := identity.CanonicalURL(e.Link)
	if link == "" {
		link = e.Link
	}
	title := e.Title
	if title == "" {
		title = "(Untitled)"
	}
	return types.Candidate{
		ID:      identity.HashID(link),
		Title:   title,
		Link:    link,
		Source:  identity.Domain(link),
		Hint:    e.Snippet,
		PubDate: e.PubDate,
	}
}

func renderAll(cfg Config, records []types.ArticleRecord, today string, deps Deps) {
	if err := render.WriteAll(cfg.OutDir, records, today, deps.Out); err != nil {
		deps.Log.Error("writing rendered outputs", "error", err)
	}
}

// rebuildIndex refreshes the derived search index, best-effort.
func rebuildIndex(cfg Config, records []types.ArticleRecord, log *slog.Logger) {
	store, err := index.Open(filepath.Join(cfg.OutDir, IndexDir), cfg.Index)
	if err != nil {
		log.Warn("search index unavailable", "error", err)
		return
	}
	defer store.Close()
	if err := store.Rebuild(records); err != nil {
		log.Warn("search index not rebuilt", "error", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
