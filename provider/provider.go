package provider

import (
	"context"
	"errors"
	"time"

	"github.com/dossier-ai/dossier/models"
	gemini_provider "github.com/dossier-ai/dossier/provider/gemini"
)

// Client represents different generative providers
type Client string

const (
	Gemini    Client = "gemini"
	OpenAI    Client = "openai"
	Anthropic Client = "anthropic"
)

// Provider is the interface that all generative implementations must satisfy
type Provider interface {
	// GenerateJSON invokes the model in JSON-constrained output mode. The
	// schema is a JSON-Schema descriptor already stripped of keys the
	// structured-output mode rejects.
	GenerateJSON(ctx context.Context, prompt string, schema map[string]interface{}) (string, error)
	GenerateImages(ctx context.Context, prompt string, n int) (models.ImageResponse, error)
	EditImage(ctx context.Context, prompt string, image []byte, mime string, n int) (models.ImageResponse, error)
}

// Options carries provider construction settings from config.
type Options struct {
	APIKey     string
	Model      string
	ImageModel string
	Timeout    time.Duration
}

// NewProvider creates a generative client based on the provided configuration
func NewProvider(client Client, opts Options) (Provider, error) {
	if opts.APIKey == "" {
		return nil, errors.New("provider api key not set")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 45 * time.Second
	}
	switch client {
	case Gemini:
		model := opts.Model
		if model == "" {
			model = "gemini-2.0-flash"
		}
		imageModel := opts.ImageModel
		if imageModel == "" {
			imageModel = "gemini-2.0-flash-preview-image-generation"
		}
		return gemini_provider.NewGeminiClient(opts.APIKey, model, imageModel, opts.Timeout), nil
	case OpenAI:
		return nil, errors.New("openai client not implemented yet")
	case Anthropic:
		return nil, errors.New("anthropic client not implemented yet")
	default:
		return nil, errors.New("unsupported generative provider")
	}
}
