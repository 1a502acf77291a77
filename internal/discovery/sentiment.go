// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package discovery

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
)

// Sentiment is the polarity of a set of comments.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentMixed    Sentiment = "mixed"
)

// EmptySummaryText is returned when there are no comments at all.
const EmptySummaryText = "No reviews yet. Be the first to share your thoughts and shape the audience buzz."

const topKeywordCount = 3

var positiveWords = []string{
	"amazing", "great", "excellent", "awesome", "fantastic", "love", "loved", "brilliant",
	"masterpiece", "incredible", "fun", "thrilling", "emotional", "beautiful", "strong",
}

var negativeWords = []string{
	"boring", "bad", "poor", "weak", "slow", "dull", "mess", "confusing",
	"predictable", "forgettable", "disappointing", "waste", "flat",
}

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "if": {}, "then": {},
	"so": {}, "to": {}, "of": {}, "in": {}, "on": {}, "for": {}, "with": {}, "at": {},
	"by": {}, "from": {}, "as": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "it": {}, "this": {}, "that": {}, "these": {}, "those": {}, "i": {},
	"you": {}, "we": {}, "they": {}, "he": {}, "she": {}, "my": {}, "our": {}, "your": {},
	"their": {},
}

var sentimentText = map[Sentiment]string{
	SentimentPositive: "Overall sentiment is strongly positive with plenty of praise.",
	SentimentNegative: "Overall sentiment trends negative with repeated concerns.",
	SentimentMixed:    "Overall sentiment is balanced with mixed reactions.",
}

// SentimentSummary is the summarizer output.
type SentimentSummary struct {
	Sentiment     Sentiment `json:"sentiment"`
	TopKeywords   []string  `json:"top_keywords"`
	PositiveCount int       `json:"positive_count"`
	NegativeCount int       `json:"negative_count"`
	SummaryText   string    `json:"summary_text"`
	Empty         bool      `json:"empty,omitempty"`
}

// Summarize extracts keywords and polarity from review comments.
//
// Polarity counts how many listed positive and negative words appear as
// substrings of the joined text, not how often. Keywords are the most
// frequent non-stop-word tokens, ties in first-seen order.
func Summarize(comments []string) SentimentSummary {
	if len(comments) == 0 {
		return SentimentSummary{
			Sentiment:   SentimentMixed,
			TopKeywords: []string{},
			SummaryText: EmptySummaryText,
			Empty:       true,
		}
	}

	text := strings.ToLower(strings.Join(comments, " "))

	pos := countPresent(text, positiveWords)
	neg := countPresent(text, negativeWords)
	sentiment := SentimentMixed
	switch {
	case pos > neg:
		sentiment = SentimentPositive
	case pos < neg:
		sentiment = SentimentNegative
	}

	keywords := topKeywords(tokenize(text), topKeywordCount)
	themes := "Themes are still emerging."
	if len(keywords) > 0 {
		themes = "Common themes include " + strings.Join(keywords, ", ") + "."
	}

	return SentimentSummary{
		Sentiment:     sentiment,
		TopKeywords:   keywords,
		PositiveCount: pos,
		NegativeCount: neg,
		SummaryText:   sentimentText[sentiment] + " " + themes,
	}
}

func countPresent(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

// tokenize keeps only a-z runs of already-lowercased text and drops stop words.
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)

	fields := strings.Fields(cleaned)
	out := fields[:0]
	for _, f := range fields {
		if _, stop := stopWords[f]; !stop {
			out = append(out, f)
		}
	}
	return out
}

func topKeywords(tokens []string, n int) []string {
	type entry struct {
		word  string
		count int
		first int
	}
	index := make(map[string]int)
	var entries []entry
	for _, tok := range tokens {
		if i, ok := index[tok]; ok {
			entries[i].count++
			continue
		}
		index[tok] = len(entries)
		entries = append(entries, entry{word: tok, count: 1, first: len(entries)})
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.first, b.first)
	})

	out := make([]string, 0, n)
	for i := 0; i < len(entries) && i < n; i++ {
		out = append(out, entries[i].word)
	}
	return out
}
