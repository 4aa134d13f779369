package models

// ContentBudget bounds how much page text a single result may carry into
// downstream prompts.
const ContentBudget = 1000

// Result is the normalized shape shared by every search provider.
// Identity key is URL.
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
