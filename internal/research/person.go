package research

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dossier-ai/dossier/internal/extract"
	"github.com/dossier-ai/dossier/internal/pipeline"
	"github.com/dossier-ai/dossier/internal/telemetry"
	"github.com/dossier-ai/dossier/models"
)

// Person researches a person from their LinkedIn profile URL: identity
// extraction, follow-up web search, then schema-constrained analysis.
// An invalid URL short-circuits before the pipeline starts.
func (s *Service) Person(ctx context.Context, linkedinURL string) (models.PersonProfile, error) {
	if ProfileUsername(linkedinURL) == "" {
		telemetry.ResearchRequests.WithLabelValues("person", "invalid").Inc()
		return models.PersonProfile{}, models.ErrInvalidProfileURL
	}

	steps := []pipeline.Step{
		{Name: "extract", Run: func(ctx context.Context, _ pipeline.Context) (interface{}, error) {
			return s.ExtractIdentity(ctx, linkedinURL)
		}},
		{Name: "search", Run: func(ctx context.Context, sc pipeline.Context) (interface{}, error) {
			li := sc["extract"].(models.Identity)
			rows := s.fetcher.FetchPerson(ctx, li.Name, li.Company, s.PersonResults)
			return extract.IdentityContent{Identity: li, Web: rows}, nil
		}},
		{Name: "analyze", Run: func(ctx context.Context, sc pipeline.Context) (interface{}, error) {
			data := sc["search"].(extract.IdentityContent)
			name := data.Identity.Name
			if name == "" {
				name = "Unknown"
			}
			var profile models.PersonProfile
			if err := s.extractor.Extract(ctx, data, extract.KindPerson, name, extract.PersonSchema(), &profile); err != nil {
				return nil, err
			}
			profile.ID = uuid.NewString()
			if profile.LinkedinURL == "" {
				profile.LinkedinURL = data.Identity.LinkedinURL
			}
			profile.LastUpdated = time.Now()
			profile.Normalize()
			return profile, nil
		}},
	}

	sc, err := s.runner().Run(ctx, steps)
	if err != nil {
		telemetry.ResearchRequests.WithLabelValues("person", "error").Inc()
		return models.PersonProfile{}, err
	}
	telemetry.ResearchRequests.WithLabelValues("person", "ok").Inc()
	return sc["analyze"].(models.PersonProfile), nil
}
