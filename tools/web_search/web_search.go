package web_search

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dossier-ai/dossier/tools/web_search/exa"
	"github.com/dossier-ai/dossier/tools/web_search/models"
	"github.com/dossier-ai/dossier/tools/web_search/tavily"
)

// Searcher is one external web-search capability normalized to a common shape.
type Searcher interface {
	Search(ctx context.Context, q string, k int) ([]models.Result, error)
	Name() string
}

type Provider string

const (
	ExaProvider    Provider = "exa"
	TavilyProvider Provider = "tavily"
)

var ErrUnsupportedProvider = errors.New("unsupported search provider")

func NewSearcher(provider Provider, apiKey string, timeout time.Duration) (Searcher, error) {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	httpc := &http.Client{Timeout: timeout}
	switch provider {
	case ExaProvider:
		return exa.Search{ApiKey: apiKey, Client: httpc}, nil
	case TavilyProvider:
		return tavily.Search{ApiKey: apiKey, Client: httpc}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
