package research

import (
	"context"

	"github.com/dossier-ai/dossier/internal/extract"
	"github.com/dossier-ai/dossier/internal/pipeline"
	"github.com/dossier-ai/dossier/internal/telemetry"
	"github.com/dossier-ai/dossier/models"
	searchmodels "github.com/dossier-ai/dossier/tools/web_search/models"
)

// News builds a digest of recent coverage for a topic. Mode defaults to
// briefing and days to 7; source, when set, biases one query to that site.
func (s *Service) News(ctx context.Context, topic, mode string, days int, source string) (models.NewsDigest, error) {
	if mode == "" {
		mode = extract.ModeBriefing
	}
	if days <= 0 {
		days = 7
	}

	steps := []pipeline.Step{
		{Name: "search", Run: func(ctx context.Context, _ pipeline.Context) (interface{}, error) {
			return s.fetcher.FetchNews(ctx, topic, days, source, s.NewsResults), nil
		}},
		{Name: "summarize", Run: func(ctx context.Context, sc pipeline.Context) (interface{}, error) {
			rows := sc["search"].([]searchmodels.Result)
			return s.extractor.SummarizeNews(ctx, topic, mode, rows)
		}},
	}

	sc, err := s.runner().Run(ctx, steps)
	if err != nil {
		telemetry.ResearchRequests.WithLabelValues("news", "error").Inc()
		return models.NewsDigest{}, err
	}
	telemetry.ResearchRequests.WithLabelValues("news", "ok").Inc()
	return sc["summarize"].(models.NewsDigest), nil
}
