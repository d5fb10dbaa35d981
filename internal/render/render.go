// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render groups history records into day buckets and emits the
// markdown documents derived from them.
package render

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/alert-digest/internal/fsutil"
	"github.com/pdiddy/alert-digest/pkg/types"
)

const (
	// LatestFile is the alias document equal to the most recent day bucket.
	LatestFile = "latest.md"

	// AllFile is the full-history document, all day buckets concatenated in
	// descending day order under the most recent day's heading.
	AllFile = "all_articles.md"
)

// emptyMarker is emitted instead of entries so an empty day never produces
// an empty document.
const emptyMarker = "_No articles._\n"

// dayPattern is the strict day format a pub_date must match to be used as a
// bucket key.
var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// bucketDay resolves the day bucket for a record: a well-formed pub_date,
// else the date portion of added_on, else today. Every record gets a bucket.
func bucketDay(r types.ArticleRecord, today string) string {
	if d := strings.TrimSpace(r.PubDate); dayPattern.MatchString(d) {
		return d
	}
	d := strings.TrimSpace(r.AddedOn)
	if len(d) > 10 {
		d = d[:10]
	}
	if dayPattern.MatchString(d) {
		return d
	}
	return today
}

// GroupByDay partitions records into day buckets. The partition is complete
// (every record lands in exactly one bucket) and order-preserving: within a
// bucket, records keep the relative order they were supplied in, so an
// already recency-sorted history stays recency-sorted per day.
func GroupByDay(records []types.ArticleRecord, today string) map[string][]types.ArticleRecord {
	byDay := make(map[string][]types.ArticleRecord)
	for _, r := range records {
		day := bucketDay(r, today)
		byDay[day] = append(byDay[day], r)
	}
	return byDay
}

// Document renders one markdown document for a day label and its records,
// in the order given. It never reorders or mutates its input; callers own
// the ordering, which lets the per-day and full-history documents share
// this one code path. An empty record list yields a header plus an explicit
// empty-state marker, never an empty document.
func Document(dayLabel string, records []types.ArticleRecord) string {
	header := fmt.Sprintf("# Summaries - %s\n\n", dayLabel)
	if len(records) == 0 {
		return header + emptyMarker
	}

	parts := make([]string, 0, len(records)+1)
	parts = append(parts, header)
	for _, r := range records {
		title := r.Title
		if title == "" {
			title = "(Untitled)"
		}
		parts = append(parts, fmt.Sprintf("## [%s](%s)  \n%s\n\n%s\n",
			title, r.Link, metaLine(r), r.Summary))
	}
	return strings.Join(parts, "\n")
}

// metaLine combines source and publication date into one emphasized line,
// omitted entirely when both are empty.
func metaLine(r types.ArticleRecord) string {
	var fields []string
	if r.Source != "" {
		fields = append(fields, "Source: "+r.Source)
	}
	if r.PubDate != "" {
		fields = append(fields, "Published: "+r.PubDate)
	}
	if len(fields) == 0 {
		return ""
	}
	return "*" + strings.Join(fields, " | ") + "*"
}

// WriteAll regenerates every derived document under outDir from the full
// history: one <day>.md per bucket, latest.md aliasing the most recent day,
// and the full-history document. An empty history writes explicit sentinel
// outputs instead of leaving stale documents or writing nothing.
//
// Write failures do not stop the remaining documents; the accumulated
// errors are returned joined for the caller to log.
func WriteAll(outDir string, records []types.ArticleRecord, today string, w io.Writer) error {
	byDay := GroupByDay(records, today)

	if len(byDay) == 0 {
		var errs []error
		if err := fsutil.WriteFileAtomic(filepath.Join(outDir, AllFile), []byte("# History (empty)\n\n")); err != nil {
			errs = append(errs, err)
		}
		if err := fsutil.WriteFileAtomic(filepath.Join(outDir, LatestFile), []byte(Document("(empty)", nil))); err != nil {
			errs = append(errs, err)
		}
		fmt.Fprintln(w, "History is empty; wrote minimal outputs.")
		return errors.Join(errs...)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	latest := days[len(days)-1]

	var errs []error
	for _, day := range days {
		path := filepath.Join(outDir, day+".md")
		if err := fsutil.WriteFileAtomic(path, []byte(Document(day, byDay[day]))); err != nil {
			errs = append(errs, err)
		}
	}

	if err := fsutil.WriteFileAtomic(filepath.Join(outDir, LatestFile), []byte(Document(latest, byDay[latest]))); err != nil {
		errs = append(errs, err)
	}

	// Full history: all buckets flattened day-descending, rendered under
	// the latest day's heading.
	var flat []types.ArticleRecord
	for i := len(days) - 1; i >= 0; i-- {
		flat = append(flat, byDay[days[i]]...)
	}
	if err := fsutil.WriteFileAtomic(filepath.Join(outDir, AllFile), []byte(Document(latest, flat))); err != nil {
		errs = append(errs, err)
	}

	fmt.Fprintf(w, "Days generated: %s | Latest: %s\n", strings.Join(days, ", "), latest)
	return errors.Join(errs...)
}
