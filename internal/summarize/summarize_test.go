// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"strings"
	"testing"
)

func TestBulletsEmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", "  \n\t  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bullets(tt.input, 4); got != "" {
				t.Errorf("Bullets(%q) = %q, want \"\"", tt.input, got)
			}
		})
	}
}

func TestBulletsShortText(t *testing.T) {
	// Fewer sentences than requested: all of them come back.
	got := Bullets("The reactor design was approved. Construction starts in March.", 4)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d bullets, want 2:\n%s", len(lines), got)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "- ") || !strings.HasSuffix(line, ".") {
			t.Errorf("malformed bullet %q", line)
		}
	}
	if lines[0] != "- The reactor design was approved." {
		t.Errorf("first bullet = %q", lines[0])
	}
}

func TestBulletsCapsSentenceCount(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat(
		"The offshore wind farm project advanced another regulatory stage this quarter. ", 8))
	got := Bullets(text, 3)
	if n := len(strings.Split(got, "\n")); n != 3 {
		t.Errorf("got %d bullets, want 3:\n%s", n, got)
	}
}

func TestBulletsPreservesOriginalOrder(t *testing.T) {
	text := "Energy prices rose sharply across European energy markets this winter. " +
		"Completely unrelated filler sentence about gardening hobbies and tulips. " +
		"Analysts expect energy markets to stay volatile while energy prices climb. " +
		"European regulators responded to rising energy prices in volatile markets."
	got := Bullets(text, 2)

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d bullets, want 2:\n%s", len(lines), got)
	}
	// Whatever was picked must appear in original text order.
	first := strings.Index(text, strings.TrimSuffix(strings.TrimPrefix(lines[0], "- "), "."))
	second := strings.Index(text, strings.TrimSuffix(strings.TrimPrefix(lines[1], "- "), "."))
	if first < 0 || second < 0 || first > second {
		t.Errorf("bullets not in original order:\n%s", got)
	}
}

func TestBulletsDeterministic(t *testing.T) {
	text := "Solar output doubled last year. Wind capacity grew as solar output rose. " +
		"Grid operators adapted to growing solar and wind capacity. " +
		"Storage deployment lagged behind solar growth."
	if Bullets(text, 2) != Bullets(text, 2) {
		t.Error("identical calls produced different summaries")
	}
}

func TestBulletsZeroCount(t *testing.T) {
	if got := Bullets("Some text here.", 0); got != "" {
		t.Errorf("Bullets with n=0 = %q, want \"\"", got)
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain", "One sentence. Another one. A third!", 3},
		{"question", "Is it done? It is.", 2},
		{"no terminator", "a fragment without punctuation", 1},
		{"collapsed whitespace", "First.   \n\n  Second.", 2},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.input)
			if len(got) != tt.want {
				t.Errorf("SplitSentences(%q) = %v, want %d sentences", tt.input, got, tt.want)
			}
		})
	}
}
