package research

import (
	"context"
	"log"

	"github.com/dossier-ai/dossier/internal/extract"
	"github.com/dossier-ai/dossier/internal/pipeline"
	"github.com/dossier-ai/dossier/internal/search"
	"github.com/dossier-ai/dossier/provider"
	searchmodels "github.com/dossier-ai/dossier/tools/web_search/models"
)

// PageFetcher pulls the text content of a single page. The semantic search
// provider doubles as the page fetcher for LinkedIn profiles.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) (searchmodels.Result, error)
}

// Service drives the research pipelines behind the HTTP endpoints.
type Service struct {
	fetcher   *search.Fetcher
	extractor *extract.Extractor
	pages     PageFetcher
	llm       provider.Provider
	logger    *log.Logger

	// retry budget per pipeline step
	Retries int
	// per-query result caps
	CompanyResults int
	PersonResults  int
	NewsResults    int
	// OnEvent observes step outcomes, mostly for tests and debug logging
	OnEvent func(pipeline.Event)
}

func NewService(fetcher *search.Fetcher, extractor *extract.Extractor, pages PageFetcher, llm provider.Provider, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(log.Writer(), "[RESEARCH] ", log.LstdFlags)
	}
	return &Service{
		fetcher:        fetcher,
		extractor:      extractor,
		pages:          pages,
		llm:            llm,
		logger:         logger,
		Retries:        1,
		CompanyResults: 5,
		PersonResults:  4,
		NewsResults:    search.DefaultNewsCap,
	}
}

func (s *Service) runner() *pipeline.Runner {
	r := pipeline.NewRunner(s.Retries, s.OnEvent)
	r.Logger = s.logger
	return r
}
