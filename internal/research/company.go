package research

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dossier-ai/dossier/internal/extract"
	"github.com/dossier-ai/dossier/internal/pipeline"
	"github.com/dossier-ai/dossier/internal/telemetry"
	"github.com/dossier-ai/dossier/models"
	searchmodels "github.com/dossier-ai/dossier/tools/web_search/models"
)

// Company researches a company by name: multi-query web search, then
// schema-constrained analysis.
func (s *Service) Company(ctx context.Context, name string) (models.CompanyProfile, error) {
	steps := []pipeline.Step{
		{Name: "search", Run: func(ctx context.Context, _ pipeline.Context) (interface{}, error) {
			return s.fetcher.FetchCompany(ctx, name, s.CompanyResults), nil
		}},
		{Name: "analyze", Run: func(ctx context.Context, sc pipeline.Context) (interface{}, error) {
			rows := sc["search"].([]searchmodels.Result)
			var profile models.CompanyProfile
			if err := s.extractor.Extract(ctx, rows, extract.KindCompany, name, extract.CompanySchema(), &profile); err != nil {
				return nil, err
			}
			profile.ID = uuid.NewString()
			profile.LastUpdated = time.Now()
			profile.Normalize()
			return profile, nil
		}},
	}

	sc, err := s.runner().Run(ctx, steps)
	if err != nil {
		telemetry.ResearchRequests.WithLabelValues("company", "error").Inc()
		return models.CompanyProfile{}, err
	}
	telemetry.ResearchRequests.WithLabelValues("company", "ok").Inc()
	return sc["analyze"].(models.CompanyProfile), nil
}
