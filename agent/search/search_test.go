package search

import (
	"context"
	"testing"

	contractx "github.com/shelook/storebot/agent/contract"
)

type fakeSearcher struct {
	results map[string][]contractx.Product
	queries []string
}

func (f *fakeSearcher) SearchProducts(ctx context.Context, keyword string) []contractx.Product {
	f.queries = append(f.queries, keyword)
	return f.results[keyword]
}

func (f *fakeSearcher) searched(keyword string) bool {
	for _, q := range f.queries {
		if q == keyword {
			return true
		}
	}
	return false
}

func TestSearchExpandsTokensAndPhrase(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{
		results: map[string][]contractx.Product{
			"Modern": {{ID: "1", Title: "Modern Pendant"}},
			"Women":  {{ID: "2", Title: "Women Bracelet"}},
		},
	}
	agg := New(searcher)

	got := agg.Search(context.Background(), "Modern Women Birthday Gift")

	for _, want := range []string{"Modern", "Women", "Modern Women Birthday Gift"} {
		if !searcher.searched(want) {
			t.Fatalf("expected a search for %q, got %v", want, searcher.queries)
		}
	}
	for _, stop := range []string{"Birthday", "Gift"} {
		if searcher.searched(stop) {
			t.Fatalf("stop word %q must not be searched", stop)
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 merged products, got %d", len(got))
	}
}

func TestSearchDropsShortTokens(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{results: map[string][]contractx.Product{
		"earrings": {{ID: "1", Title: "Hoop Earrings"}},
	}}
	agg := New(searcher)

	agg.Search(context.Background(), "up to earrings")

	if searcher.searched("up") || searcher.searched("to") {
		t.Fatalf("tokens of length <= 2 must be dropped: %v", searcher.queries)
	}
	if !searcher.searched("earrings") {
		t.Fatalf("significant token must be searched: %v", searcher.queries)
	}
}

func TestSearchDeduplicatesByIDFirstSeen(t *testing.T) {
	t.Parallel()

	dup := contractx.Product{ID: "9", Title: "Silver Ring"}
	searcher := &fakeSearcher{
		results: map[string][]contractx.Product{
			"silver": {dup, {ID: "2", Title: "Silver Chain"}},
			"ring":   {dup, {ID: "3", Title: "Gold Ring"}},
		},
	}
	agg := New(searcher)

	got := agg.Search(context.Background(), "silver ring")

	seen := map[string]int{}
	for _, p := range got {
		seen[p.ID]++
	}
	if seen["9"] != 1 {
		t.Fatalf("duplicate id must appear once, got %d", seen["9"])
	}
	if got[0].ID != "9" {
		t.Fatalf("first-seen order must be preserved, got %v", got)
	}
}

func TestSearchDeduplicatesByTitleWhenNoID(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{
		results: map[string][]contractx.Product{
			"silver": {{Title: "Silver Ring"}},
			"ring":   {{Title: "Silver Ring"}},
		},
	}
	agg := New(searcher)

	got := agg.Search(context.Background(), "silver ring")
	if len(got) != 1 {
		t.Fatalf("title-keyed dedup failed, got %d products", len(got))
	}
}

func TestSearchFallbackWhenEmpty(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{
		results: map[string][]contractx.Product{
			"jewelry": {{ID: "1", Title: "Classic Necklace"}},
		},
	}
	agg := New(searcher)

	got := agg.Search(context.Background(), "spaceship parts")
	if !searcher.searched("jewelry") {
		t.Fatalf("fallback keyword must be searched: %v", searcher.queries)
	}
	if len(got) != 1 {
		t.Fatalf("fallback results must be returned, got %d", len(got))
	}
}

func TestSearchTruncatesToMax(t *testing.T) {
	t.Parallel()

	many := make([]contractx.Product, 0, 15)
	for i := 0; i < 15; i++ {
		many = append(many, contractx.Product{ID: string(rune('a' + i)), Title: "P"})
	}
	searcher := &fakeSearcher{results: map[string][]contractx.Product{"rings": many}}
	agg := New(searcher)

	got := agg.Search(context.Background(), "rings")
	if len(got) != 10 {
		t.Fatalf("expected truncation to 10, got %d", len(got))
	}
}

func TestSearchOptions(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{results: map[string][]contractx.Product{
		"necklace": {{ID: "1", Title: "N1"}, {ID: "2", Title: "N2"}},
	}}
	agg := New(searcher,
		WithStopWords("necklace"),
		WithFallbackKeyword("necklace"),
		WithMaxResults(1),
	)

	got := agg.Search(context.Background(), "necklace")
	// The only token is now a stop word, but the full phrase is always
	// searched, so results come from the phrase lookup.
	if len(got) != 1 {
		t.Fatalf("expected max 1 result, got %d", len(got))
	}
}
