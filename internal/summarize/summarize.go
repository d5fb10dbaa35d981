// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize implements an extractive TextRank summarizer: sentences
// are scored by their similarity to the rest of the text and the top-ranked
// ones are returned in original order as bullet lines.
package summarize

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

const (
	dampingFactor = 0.85
	iterations    = 30
)

// sentenceEnd matches a sentence boundary: terminal punctuation followed by
// whitespace. Abbreviation handling is deliberately naive; over-splitting
// costs a little summary quality, not correctness.
var sentenceEnd = regexp.MustCompile(`([.!?])\s+`)

// Bullets summarizes text into at most n sentences, each rendered as a
// "- sentence." line. Empty or whitespace-only input yields "". When the
// text has n or fewer sentences they are all returned.
func Bullets(text string, n int) string {
	if n <= 0 {
		return ""
	}
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return ""
	}

	picked := sentences
	if len(sentences) > n {
		picked = topRanked(sentences, n)
	}

	lines := make([]string, 0, len(picked))
	for _, s := range picked {
		s = strings.TrimRight(collapse(s), " .")
		if s == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s.", s))
	}
	return strings.Join(lines, "\n")
}

// SplitSentences breaks text into trimmed, non-empty sentences.
func SplitSentences(text string) []string {
	text = collapse(text)
	if text == "" {
		return nil
	}

	marked := sentenceEnd.ReplaceAllString(text, "$1\x00")
	var sentences []string
	for _, s := range strings.Split(marked, "\x00") {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// topRanked scores sentences with TextRank and returns the n best in their
// original order.
func topRanked(sentences []string, n int) []string {
	tokens := make([][]string, len(sentences))
	for i, s := range sentences {
		tokens[i] = contentWords(s)
	}

	scores := pageRank(similarityMatrix(tokens))

	order := make([]int, len(sentences))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	keep := make(map[int]bool, n)
	for _, i := range order[:n] {
		keep[i] = true
	}

	picked := make([]string, 0, n)
	for i, s := range sentences {
		if keep[i] {
			picked = append(picked, s)
		}
	}
	return picked
}

// similarityMatrix computes pairwise sentence similarity: shared content
// words normalized by the log lengths of both sentences.
func similarityMatrix(tokens [][]string) [][]float64 {
	n := len(tokens)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := similarity(tokens[i], tokens[j])
			sim[i][j] = s
			sim[j][i] = s
		}
	}
	return sim
}

func similarity(a, b []string) float64 {
	if len(a) < 2 || len(b) < 2 {
		return 0
	}
	inA := make(map[string]bool, len(a))
	for _, w := range a {
		inA[w] = true
	}
	shared := 0
	counted := make(map[string]bool, len(b))
	for _, w := range b {
		if inA[w] && !counted[w] {
			shared++
			counted[w] = true
		}
	}
	if shared == 0 {
		return 0
	}
	return float64(shared) / (math.Log(float64(len(a))) + math.Log(float64(len(b))))
}

// pageRank runs the standard power iteration over the similarity graph.
func pageRank(sim [][]float64) []float64 {
	n := len(sim)
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}

	outWeight := make([]float64, n)
	for i := range sim {
		for _, w := range sim[i] {
			outWeight[i] += w
		}
	}

	for iter := 0; iter < iterations; iter++ {
		next := make([]float64, n)
		for i := 0; i < n; i++ {
			rank := 0.0
			for j := 0; j < n; j++ {
				if j == i || sim[j][i] == 0 || outWeight[j] == 0 {
					continue
				}
				rank += scores[j] * sim[j][i] / outWeight[j]
			}
			next[i] = (1-dampingFactor)/float64(n) + dampingFactor*rank
		}
		scores = next
	}
	return scores
}

// contentWords tokenizes a sentence into lowercase words with stopwords and
// very short tokens removed.
func contentWords(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if len(w) < 3 || stopwords[w] {
			continue
		}
		words = append(words, w)
	}
	return words
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
