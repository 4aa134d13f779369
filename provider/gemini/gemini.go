package gemini_provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dossier-ai/dossier/models"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// client implements the provider interface using the Gemini REST API
type client struct {
	apiKey     string
	model      string
	imageModel string
	baseURL    string
	httpClient *http.Client
}

// part is one content part of a Gemini request or response
type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Parts []part `json:"parts"`
}

// request represents a generateContent request
type request struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string                 `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]interface{} `json:"responseSchema,omitempty"`
}

// response represents a generateContent response
type response struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(apiKey, model, imageModel string, timeout time.Duration) *client {
	return &client{
		apiKey:     apiKey,
		model:      model,
		imageModel: imageModel,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewGeminiClientWithBaseURL is a constructor for tests pointing at a fake server.
func NewGeminiClientWithBaseURL(apiKey, model, imageModel, baseURL string, httpc *http.Client) *client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &client{apiKey: apiKey, model: model, imageModel: imageModel, baseURL: baseURL, httpClient: httpc}
}

// GenerateJSON asks the completion model for output constrained to the given
// JSON schema and returns the raw JSON text.
func (c *client) GenerateJSON(ctx context.Context, prompt string, schema map[string]interface{}) (string, error) {
	req := request{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	}
	resp, err := c.sendRequest(ctx, c.model, req)
	if err != nil {
		return "", err
	}
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text, nil
			}
		}
	}
	return "", fmt.Errorf("no text candidates in response")
}

// GenerateImages produces up to n images for the prompt on the image model.
func (c *client) GenerateImages(ctx context.Context, prompt string, n int) (models.ImageResponse, error) {
	req := request{Contents: []content{{Parts: []part{{Text: prompt}}}}}
	resp, err := c.sendRequest(ctx, c.imageModel, req)
	if err != nil {
		return models.ImageResponse{}, err
	}
	imgs := c.inlineImages(resp, n)
	if len(imgs) == 0 {
		return models.ImageResponse{}, fmt.Errorf("image generation returned no images")
	}
	return models.ImageResponse{Model: c.imageModel, Images: imgs}, nil
}

// EditImage sends the source image as an inline part ahead of the prompt.
func (c *client) EditImage(ctx context.Context, prompt string, image []byte, mime string, n int) (models.ImageResponse, error) {
	parts := []part{{InlineData: &inlineData{
		MimeType: mime,
		Data:     base64.StdEncoding.EncodeToString(image),
	}}}
	if strings.TrimSpace(prompt) != "" {
		parts = append(parts, part{Text: strings.TrimSpace(prompt)})
	}
	req := request{Contents: []content{{Parts: parts}}}
	resp, err := c.sendRequest(ctx, c.imageModel, req)
	if err != nil {
		return models.ImageResponse{}, err
	}
	imgs := c.inlineImages(resp, n)
	if len(imgs) == 0 {
		return models.ImageResponse{}, fmt.Errorf("image edit returned no images")
	}
	return models.ImageResponse{Model: c.imageModel, Images: imgs}, nil
}

// inlineImages collects up to n inline image parts as data URLs. Gemini does
// not return image URLs, only inline base64 payloads.
func (c *client) inlineImages(resp *response, n int) []models.ImageResult {
	if n < 1 {
		n = 1
	}
	var out []models.ImageResult
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData == nil || p.InlineData.Data == "" {
				continue
			}
			mime := p.InlineData.MimeType
			if mime == "" {
				mime = "image/png"
			}
			out = append(out, models.ImageResult{
				DataURL:  fmt.Sprintf("data:%s;base64,%s", mime, p.InlineData.Data),
				MimeType: mime,
			})
			if len(out) >= n {
				return out
			}
		}
	}
	return out
}

// sendRequest posts a generateContent request to the given model
func (c *client) sendRequest(ctx context.Context, model string, body request) (*response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status: %d", resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}
	return &out, nil
}
