package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dossier-ai/dossier/tools/web_search/models"
	"github.com/dossier-ai/dossier/utils"
)

const defaultBaseURL = "https://api.tavily.com"

// Search is the Tavily keyword/answer-engine adapter.
type Search struct {
	ApiKey  string
	BaseURL string // overridable for tests
	Client  *http.Client
}

func (s Search) Name() string { return "tavily" }

func (s Search) Search(ctx context.Context, q string, k int) ([]models.Result, error) {
	// https://docs.tavily.com/documentation/api-reference/endpoint/search
	payload := map[string]any{
		"query":           q,
		"max_results":     k,
		"include_answer":  false,
		"auto_parameters": true,
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
	req.Header.Set("Authorization", "Bearer "+s.ApiKey)

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
		return nil, fmt.Errorf("tavily search returned status %d", resp.StatusCode)
	}

	var raw struct {
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
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
			Content: utils.Truncate(r.Content, models.ContentBudget),
		})
	}
	return out, nil
}
