// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect reads configured feeds and resolves article bodies for
// summarization. Feed parsing and body extraction are external concerns
// consumed through narrow contracts; everything here degrades per item
// rather than failing the run.
package collect

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/pdiddy/alert-digest/internal/httputil"
	"github.com/pdiddy/alert-digest/pkg/types"
)

// browserUserAgent is sent when fetching article pages. Alert targets are
// ordinary news sites and many of them refuse obvious bot agents.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Entry is one usable feed item: a link plus whatever metadata the feed
// supplied. Entries without a link are dropped during parsing.
type Entry struct {
	Title   string
	Link    string
	Snippet string
	PubDate string
}

// Client reads feeds and fetches article bodies over HTTP.
type Client struct {
	HTTP *http.Client
}

// NewClient returns a Client with the given request timeout.
func NewClient(cfg types.HTTPConfig) *Client {
	return &Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
	}
}

// ReadFeed fetches and parses one feed URL, returning at most maxItems
// usable entries in feed order. Entries lacking a link are skipped.
func (c *Client) ReadFeed(ctx context.Context, feedURL string, maxItems int) ([]Entry, error) {
	parser := gofeed.NewParser()
	parser.Client = c.HTTP
	parser.UserAgent = browserUserAgent

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", feedURL, err)
	}

	items := feed.Items
	if maxItems > 0 && len(items) > maxItems {
		items = items[:maxItems]
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}
		entries = append(entries, Entry{
			Title:   strings.TrimSpace(item.Title),
			Link:    link,
			Snippet: snippetText(item),
			PubDate: entryDate(item),
		})
	}
	return entries, nil
}

// snippetText extracts a plain-text hint from the feed's own summary or
// content markup, in that preference order.
func snippetText(item *gofeed.Item) string {
	if text := HTMLToText(item.Description); text != "" {
		return text
	}
	return HTMLToText(item.Content)
}

// entryDate resolves an entry's publication day as "YYYY-MM-DD". Parsed
// timestamps are preferred; raw date strings are accepted when their first
// ten characters form an ISO day. Unknown dates yield "".
func entryDate(item *gofeed.Item) string {
	for _, t := range []*time.Time{item.PublishedParsed, item.UpdatedParsed} {
		if t != nil {
			return t.Format("2006-01-02")
		}
	}
	for _, raw := range []string{item.Published, item.Updated} {
		if len(raw) >= 10 {
			if d, err := time.Parse("2006-01-02", raw[:10]); err == nil {
				return d.Format("2006-01-02")
			}
		}
	}
	return ""
}

// FetchBody retrieves an article page and extracts its readable plain text.
// Any failure (network, non-200, unextractable markup) yields ""; the
// caller falls back to the feed snippet or the bare title.
func (c *Client) FetchBody(ctx context.Context, pageURL string) string {
	html, err := httputil.FetchHTML(ctx, c.HTTP, pageURL, browserUserAgent)
	if err != nil {
		return ""
	}
	return ExtractText(html, pageURL)
}
