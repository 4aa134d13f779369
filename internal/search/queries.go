package search

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dossier-ai/dossier/tools/web_search/models"
)

// DefaultNewsCap bounds the consolidated news result set.
const DefaultNewsCap = 8

// DefaultQueryDelay paces sequential queries to respect provider rate limits.
// It is a tunable default, not a load-tested constant.
const DefaultQueryDelay = 250 * time.Millisecond

// Fetcher expands one research subject into several queries, runs them
// against the Aggregator sequentially with a pacing delay, and consolidates
// the results.
type Fetcher struct {
	agg    *Aggregator
	delay  time.Duration
	logger *log.Logger
}

func NewFetcher(agg *Aggregator, delay time.Duration, logger *log.Logger) *Fetcher {
	if delay < 0 {
		delay = DefaultQueryDelay
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[FETCH] ", log.LstdFlags)
	}
	return &Fetcher{agg: agg, delay: delay, logger: logger}
}

// CompanyQueries is the fixed query set for a company subject.
func CompanyQueries(name string) []string {
	return []string{
		fmt.Sprintf("%s company overview profile", name),
		fmt.Sprintf("%s latest news", name),
		fmt.Sprintf("%s products services", name),
		fmt.Sprintf("%s leadership team executives", name),
		fmt.Sprintf("%s funding revenue", name),
	}
}

// PersonQueries is the fixed query set for a person, with one extra query
// when their company is known.
func PersonQueries(person, company string) []string {
	qs := []string{
		fmt.Sprintf("%s %s", person, company),
		fmt.Sprintf("%s speaking conferences", person),
		fmt.Sprintf("%s articles posts", person),
		fmt.Sprintf("%s education background", person),
		fmt.Sprintf("%s work experience resume", person),
		fmt.Sprintf("%s skills and expertise", person),
		fmt.Sprintf("%s linkedin posts 2025", person),
	}
	if company != "" {
		qs = append(qs, fmt.Sprintf("%s %s role", person, company))
	}
	return qs
}

// NewsQueries is the fixed query set for a news topic, with a site-scoped
// query appended when a source filter is supplied.
func NewsQueries(topic string, days int, source string) []string {
	qs := []string{
		fmt.Sprintf("%s news past %d days", topic, days),
		fmt.Sprintf("latest updates %s", topic),
		fmt.Sprintf("%s headlines", topic),
	}
	if source != "" {
		qs = append(qs, fmt.Sprintf("site:%s %s past %d days", source, topic, days))
	}
	return qs
}

// FetchCompany consolidates results for the company query set.
func (f *Fetcher) FetchCompany(ctx context.Context, name string, perQuery int) []models.Result {
	return f.run(ctx, CompanyQueries(name), perQuery, 0)
}

// FetchPerson consolidates results for the person query set.
func (f *Fetcher) FetchPerson(ctx context.Context, person, company string, perQuery int) []models.Result {
	return f.run(ctx, PersonQueries(person, company), perQuery, 0)
}

// FetchNews consolidates recent news for a topic. Each query is capped at
// max(3, maxResults/len(queries)) and the merged output at maxResults.
func (f *Fetcher) FetchNews(ctx context.Context, topic string, days int, source string, maxResults int) []models.Result {
	if maxResults < 1 {
		maxResults = DefaultNewsCap
	}
	queries := NewsQueries(topic, days, source)
	perQuery := maxResults / len(queries)
	if perQuery < 3 {
		perQuery = 3
	}
	return f.run(ctx, queries, perQuery, maxResults)
}

// run executes the queries in order with the pacing delay between them,
// flattens the batches and deduplicates by URL. limit=0 means unbounded.
func (f *Fetcher) run(ctx context.Context, queries []string, perQuery, limit int) []models.Result {
	seen := make(map[string]struct{})
	var out []models.Result
loop:
	for i, q := range queries {
		for _, r := range f.agg.Aggregate(ctx, q, perQuery) {
			if r.URL == "" {
				continue
			}
			if _, dup := seen[r.URL]; dup {
				continue
			}
			seen[r.URL] = struct{}{}
			out = append(out, r)
		}
		if i < len(queries)-1 && f.delay > 0 {
			select {
			case <-ctx.Done():
				f.logger.Printf("fetch canceled after %d/%d queries", i+1, len(queries))
				break loop
			case <-time.After(f.delay):
			}
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
