package exa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dossier-ai/dossier/tools/web_search/models"
	"github.com/dossier-ai/dossier/utils"
)

const defaultBaseURL = "https://api.exa.ai"

// Search is the Exa neural-search adapter.
type Search struct {
	ApiKey  string
	BaseURL string // overridable for tests
	Client  *http.Client
}

func (s Search) Name() string { return "exa" }

func (s Search) Search(ctx context.Context, q string, k int) ([]models.Result, error) {
	// https://docs.exa.ai/reference/search
	payload := map[string]any{
		"query":      q,
		"numResults": k,
		"type":       "auto",
		"contents":   map[string]any{"text": true},
	}
	body, _ := json.Marshal(payload)

	base := s.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, "POST", base+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.ApiKey)

	httpc := s.Client
	if httpc == nil {
		httpc = http.DefaultClient
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exa search returned status %d", resp.StatusCode)
	}

	var raw struct {
		Results []struct {
			Title string `json:"title"`
			URL   string `json:"url"`
			Text  string `json:"text"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	var out []models.Result
	for i, r := range raw.Results {
		if i >= k {
			break
		}
		out = append(out, models.Result{
			Title:   r.Title,
			URL:     r.URL,
			Content: utils.Truncate(r.Text, models.ContentBudget),
		})
	}
	return out, nil
}

// FetchPage retrieves the text content of a single page through the search
// endpoint. The person pipeline uses it to pull a LinkedIn profile.
func (s Search) FetchPage(ctx context.Context, pageURL string) (models.Result, error) {
	rows, err := s.Search(ctx, pageURL, 1)
	if err != nil {
		return models.Result{}, err
	}
	if len(rows) == 0 {
		return models.Result{}, fmt.Errorf("no content found for %s", pageURL)
	}
	return rows[0], nil
}
