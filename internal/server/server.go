package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appconfig "github.com/dossier-ai/dossier/config"
	"github.com/dossier-ai/dossier/internal/extract"
	"github.com/dossier-ai/dossier/internal/research"
	"github.com/dossier-ai/dossier/internal/search"
	"github.com/dossier-ai/dossier/provider"
	"github.com/dossier-ai/dossier/tools/web_search"
	"github.com/dossier-ai/dossier/tools/web_search/exa"
)

// Run wires the research service from config and serves the HTTP API.
func Run(cfg *appconfig.Config, addr string) error {
	svc, err := buildService(cfg)
	if err != nil {
		return err
	}
	e := newRouter(cfg)

	h := &ResearchHandler{Service: svc}
	h.Register(e.Group("/api"))

	if addr == "" {
		addr = cfg.Server.Address
	}
	return e.Start(addr)
}

// newRouter builds the echo instance with middleware, the unified error
// handler, health and metrics endpoints.
func newRouter(cfg *appconfig.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	if cfg.Telemetry.Enabled {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}
	return e
}

// buildService assembles searchers, the aggregator, the generative provider
// and the research pipelines from config (top-level DI).
func buildService(cfg *appconfig.Config) (*research.Service, error) {
	timeout := cfg.General.DefaultTimeout

	var searchers []web_search.Searcher
	var pages research.PageFetcher
	for _, name := range cfg.Providers.SearchProviders() {
		switch name {
		case "exa":
			s, err := web_search.NewSearcher(web_search.ExaProvider, cfg.Providers.Exa.APIKey, timeout)
			if err != nil {
				return nil, err
			}
			searchers = append(searchers, s)
			pages = s.(exa.Search)
		case "tavily":
			s, err := web_search.NewSearcher(web_search.TavilyProvider, cfg.Providers.Tavily.APIKey, timeout)
			if err != nil {
				return nil, err
			}
			searchers = append(searchers, s)
		}
	}
	if pages == nil {
		return nil, fmt.Errorf("profile extraction needs the exa provider configured (providers.exa.api_key)")
	}

	llm, err := provider.NewProvider(provider.Gemini, provider.Options{
		APIKey:     cfg.Providers.Gemini.APIKey,
		Model:      cfg.Providers.Gemini.Model,
		ImageModel: cfg.Providers.Gemini.ImageModel,
		Timeout:    cfg.Providers.Gemini.Timeout,
	})
	if err != nil {
		return nil, err
	}

	agg := search.NewAggregator(nil, searchers...)
	fetcher := search.NewFetcher(agg, cfg.Search.QueryDelay, nil)
	extractor := extract.NewExtractor(llm, nil)

	svc := research.NewService(fetcher, extractor, pages, llm, nil)
	svc.Retries = cfg.Search.Retries
	svc.CompanyResults = cfg.Search.CompanyResults
	svc.PersonResults = cfg.Search.PersonResults
	svc.NewsResults = cfg.Search.NewsResults
	return svc, nil
}
