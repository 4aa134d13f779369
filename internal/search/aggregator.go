package search

import (
	"context"
	"log"
	"sync"

	"github.com/dossier-ai/dossier/internal/telemetry"
	"github.com/dossier-ai/dossier/tools/web_search"
	"github.com/dossier-ai/dossier/tools/web_search/models"
)

// Aggregator fans one query out to every registered provider, merges the
// results in fixed provider order, deduplicates by URL and bounds the output.
// Provider failures degrade to an empty contribution; they never surface.
type Aggregator struct {
	searchers []web_search.Searcher
	logger    *log.Logger
}

func NewAggregator(logger *log.Logger, searchers ...web_search.Searcher) *Aggregator {
	if logger == nil {
		logger = log.New(log.Writer(), "[SEARCH] ", log.LstdFlags)
	}
	return &Aggregator{searchers: searchers, logger: logger}
}

// Aggregate runs the query on all providers concurrently and joins the
// results. Output order is provider registration order regardless of which
// call finishes first; the first occurrence of a URL wins; length is capped
// at 2*maxResults.
func (a *Aggregator) Aggregate(ctx context.Context, q string, maxResults int) []models.Result {
	if maxResults < 1 {
		maxResults = 1
	}

	batches := make([][]models.Result, len(a.searchers))
	var wg sync.WaitGroup
	for i, s := range a.searchers {
		wg.Add(1)
		go func(i int, s web_search.Searcher) {
			defer wg.Done()
			rows, err := s.Search(ctx, q, maxResults)
			if err != nil {
				a.logger.Printf("%s search error for %q: %v", s.Name(), q, err)
				telemetry.ProviderSearches.WithLabelValues(s.Name(), "error").Inc()
				return
			}
			telemetry.ProviderSearches.WithLabelValues(s.Name(), "ok").Inc()
			batches[i] = rows
		}(i, s)
	}
	wg.Wait()

	seen := make(map[string]struct{})
	out := make([]models.Result, 0, 2*maxResults)
	for _, batch := range batches {
		for _, r := range batch {
			if r.URL == "" {
				continue
			}
			if _, dup := seen[r.URL]; dup {
				continue
			}
			seen[r.URL] = struct{}{}
			out = append(out, r)
		}
	}
	if len(out) > 2*maxResults {
		out = out[:2*maxResults]
	}
	return out
}
