// Package search widens loose multi-concept queries into several catalog
// lookups. A single literal-phrase search against a title index under-matches
// descriptions like "silver adjustable ring for women"; per-token search
// widens recall, and dedup plus truncation bound the cost.
package search

import (
	"context"
	"strings"

	contractx "github.com/shelook/storebot/agent/contract"
)

// Searcher is satisfied by gateway.Gateway.
type Searcher interface {
	SearchProducts(ctx context.Context, keyword string) []contractx.Product
}

const (
	defaultFallbackKeyword = "jewelry"
	defaultMaxResults      = 10
	minTokenLength         = 3
)

// Connectives and occasion words that match everything and nothing in a
// title index.
var defaultStopWords = []string{
	"a", "an", "and", "for", "of", "the", "to", "with",
	"gift", "gifts", "present", "presents", "birthday", "anniversary",
}

type Aggregator struct {
	searcher   Searcher
	stopWords  map[string]struct{}
	fallback   string
	maxResults int
}

type Option func(*Aggregator)

func WithStopWords(words ...string) Option {
	return func(a *Aggregator) {
		a.stopWords = make(map[string]struct{}, len(words))
		for _, w := range words {
			a.stopWords[strings.ToLower(w)] = struct{}{}
		}
	}
}

func WithFallbackKeyword(keyword string) Option {
	return func(a *Aggregator) {
		if strings.TrimSpace(keyword) != "" {
			a.fallback = keyword
		}
	}
}

func WithMaxResults(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.maxResults = n
		}
	}
}

func New(searcher Searcher, opts ...Option) *Aggregator {
	a := &Aggregator{
		searcher:   searcher,
		stopWords:  make(map[string]struct{}, len(defaultStopWords)),
		fallback:   defaultFallbackKeyword,
		maxResults: defaultMaxResults,
	}
	for _, w := range defaultStopWords {
		a.stopWords[w] = struct{}{}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Search expands rawQuery into one lookup per significant token plus one for
// the full phrase, merges the results first-seen first, and falls back to a
// fixed always-stocked category when everything comes back empty.
func (a *Aggregator) Search(ctx context.Context, rawQuery string) []contractx.Product {
	merged := newProductSet()

	for _, token := range a.significantTokens(rawQuery) {
		merged.addAll(a.searcher.SearchProducts(ctx, token))
	}

	if phrase := strings.TrimSpace(rawQuery); phrase != "" {
		merged.addAll(a.searcher.SearchProducts(ctx, phrase))
	}

	if merged.len() == 0 {
		merged.addAll(a.searcher.SearchProducts(ctx, a.fallback))
	}

	return merged.take(a.maxResults)
}

func (a *Aggregator) significantTokens(rawQuery string) []string {
	fields := strings.Fields(rawQuery)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < minTokenLength {
			continue
		}
		if _, stop := a.stopWords[strings.ToLower(f)]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// productSet is an ordered set: first-seen wins and insertion order is
// preserved. Products are keyed by id when present, else by title.
type productSet struct {
	seen  map[string]struct{}
	items []contractx.Product
}

func newProductSet() *productSet {
	return &productSet{seen: make(map[string]struct{})}
}

func (s *productSet) addAll(products []contractx.Product) {
	for _, p := range products {
		key := p.ID
		if key == "" {
			key = p.Title
		}
		if _, dup := s.seen[key]; dup {
			continue
		}
		s.seen[key] = struct{}{}
		s.items = append(s.items, p)
	}
}

func (s *productSet) len() int {
	return len(s.items)
}

func (s *productSet) take(n int) []contractx.Product {
	if len(s.items) <= n {
		return s.items
	}
	return s.items[:n]
}
