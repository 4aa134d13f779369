package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dossier-ai/dossier/tools/web_search/models"
)

// recordingSearcher remembers every query and the per-query cap it was given.
type recordingSearcher struct {
	mu      sync.Mutex
	queries []string
	caps    []int
	rows    map[string][]models.Result
}

func (r *recordingSearcher) Name() string { return "recording" }

func (r *recordingSearcher) Search(_ context.Context, q string, k int) ([]models.Result, error) {
	r.mu.Lock()
	r.queries = append(r.queries, q)
	r.caps = append(r.caps, k)
	r.mu.Unlock()
	rows := r.rows[q]
	if len(rows) > k {
		rows = rows[:k]
	}
	return rows, nil
}

func newTestFetcher(rec *recordingSearcher) *Fetcher {
	return NewFetcher(NewAggregator(nil, rec), 0, nil)
}

func TestCompanyQueriesFixedSet(t *testing.T) {
	qs := CompanyQueries("Acme")
	want := []string{
		"Acme company overview profile",
		"Acme latest news",
		"Acme products services",
		"Acme leadership team executives",
		"Acme funding revenue",
	}
	if len(qs) != len(want) {
		t.Fatalf("expected %d queries, got %d", len(want), len(qs))
	}
	for i := range want {
		if qs[i] != want[i] {
			t.Fatalf("query %d: want %q, got %q", i, want[i], qs[i])
		}
	}
}

func TestPersonQueriesConditionalCompanyRole(t *testing.T) {
	without := PersonQueries("Jane Doe", "")
	if len(without) != 7 {
		t.Fatalf("expected 7 queries without company, got %d", len(without))
	}
	with := PersonQueries("Jane Doe", "Acme")
	if len(with) != 8 {
		t.Fatalf("expected 8 queries with company, got %d", len(with))
	}
	if with[7] != "Jane Doe Acme role" {
		t.Fatalf("unexpected conditional query %q", with[7])
	}
}

func TestNewsQueriesConditionalSource(t *testing.T) {
	base := NewsQueries("AI agents", 7, "")
	if len(base) != 3 {
		t.Fatalf("expected 3 queries, got %d", len(base))
	}
	scoped := NewsQueries("AI agents", 7, "reuters.com")
	if len(scoped) != 4 {
		t.Fatalf("expected 4 queries with source, got %d", len(scoped))
	}
	if scoped[3] != "site:reuters.com AI agents past 7 days" {
		t.Fatalf("unexpected source query %q", scoped[3])
	}
}

func TestFetchNewsScenario(t *testing.T) {
	rec := &recordingSearcher{rows: map[string][]models.Result{}}
	f := newTestFetcher(rec)

	out := f.FetchNews(context.Background(), "AI agents", 7, "", 8)

	want := []string{
		"AI agents news past 7 days",
		"latest updates AI agents",
		"AI agents headlines",
	}
	if len(rec.queries) != 3 {
		t.Fatalf("expected exactly 3 queries, got %v", rec.queries)
	}
	for i := range want {
		if rec.queries[i] != want[i] {
			t.Fatalf("query %d: want %q, got %q", i, want[i], rec.queries[i])
		}
	}
	// per-query cap = max(3, 8/3) = 3
	for i, k := range rec.caps {
		if k != 3 {
			t.Fatalf("query %d: per-query cap %d, want 3", i, k)
		}
	}
	if len(out) > 8 {
		t.Fatalf("news output exceeds cap: %d", len(out))
	}
}

func TestFetchNewsDeduplicatesAcrossQueriesAndCaps(t *testing.T) {
	shared := models.Result{URL: "https://n/shared", Title: "shared", Content: "x"}
	rows := map[string][]models.Result{}
	for i, q := range NewsQueries("t", 7, "") {
		batch := []models.Result{shared}
		for j := 0; j < 5; j++ {
			batch = append(batch, models.Result{URL: fmt.Sprintf("https://n/%d-%d", i, j), Title: "r"})
		}
		rows[q] = batch
	}
	rec := &recordingSearcher{rows: rows}
	f := newTestFetcher(rec)

	out := f.FetchNews(context.Background(), "t", 7, "", 8)
	if len(out) > 8 {
		t.Fatalf("output exceeds overall cap: %d", len(out))
	}
	count := 0
	for _, r := range out {
		if r.URL == "https://n/shared" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("shared url kept %d times, want 1", count)
	}
}

func TestFetchCompanyRunsAllQueries(t *testing.T) {
	rec := &recordingSearcher{rows: map[string][]models.Result{}}
	f := newTestFetcher(rec)

	f.FetchCompany(context.Background(), "Acme", 5)
	if len(rec.queries) != 5 {
		t.Fatalf("expected 5 company queries, got %v", rec.queries)
	}
	for _, q := range rec.queries {
		if !strings.HasPrefix(q, "Acme") {
			t.Fatalf("query missing subject: %q", q)
		}
	}
}

func TestFetchPersonIncludesCompanyRoleQuery(t *testing.T) {
	rec := &recordingSearcher{rows: map[string][]models.Result{}}
	f := newTestFetcher(rec)

	f.FetchPerson(context.Background(), "Jane Doe", "Acme", 4)
	if len(rec.queries) != 8 {
		t.Fatalf("expected 8 person queries, got %v", rec.queries)
	}
	if rec.queries[7] != "Jane Doe Acme role" {
		t.Fatalf("conditional role query missing: %v", rec.queries)
	}
}

// floodSearcher ignores the per-query cap and cancels the run context during
// its second call, so the fetch aborts with more rows collected than the
// overall cap allows.
type floodSearcher struct {
	mu     sync.Mutex
	calls  int
	cancel context.CancelFunc
}

func (f *floodSearcher) Name() string { return "flood" }

func (f *floodSearcher) Search(_ context.Context, q string, _ int) ([]models.Result, error) {
	f.mu.Lock()
	f.calls++
	if f.calls == 2 {
		f.cancel()
	}
	call := f.calls
	f.mu.Unlock()
	rows := make([]models.Result, 6)
	for i := range rows {
		rows[i] = models.Result{URL: fmt.Sprintf("https://n/%d-%d", call, i), Title: "r", Content: "c"}
	}
	return rows, nil
}

func TestFetchNewsCapHoldsWhenCanceledMidRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flood := &floodSearcher{cancel: cancel}
	f := NewFetcher(NewAggregator(nil, flood), 5*time.Millisecond, nil)

	out := f.FetchNews(ctx, "topic", 7, "", 8)
	if flood.calls != 2 {
		t.Fatalf("expected fetch to stop after the second query, got %d calls", flood.calls)
	}
	if len(out) > 8 {
		t.Fatalf("news output exceeds cap after cancellation: %d rows", len(out))
	}
}

func TestFetcherStopsOnCanceledContext(t *testing.T) {
	rec := &recordingSearcher{rows: map[string][]models.Result{}}
	f := NewFetcher(NewAggregator(nil, rec), DefaultQueryDelay, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f.FetchCompany(ctx, "Acme", 5)
	if len(rec.queries) != 1 {
		t.Fatalf("expected fetch to stop after the first query, got %v", rec.queries)
	}
}
