package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dossier-ai/dossier/internal/helpers"
	"github.com/dossier-ai/dossier/models"
	searchmodels "github.com/dossier-ai/dossier/tools/web_search/models"
	"github.com/dossier-ai/dossier/utils"
)

const (
	maxPromptResults  = 10
	promptContentChar = 800
)

// IdentityContent pairs an extracted identity with follow-up web results for
// the person analysis prompt.
type IdentityContent struct {
	Identity models.Identity
	Web      []searchmodels.Result
}

// FormatResults renders at most the first 10 results as Title/URL/Content
// blocks joined by a separator line, with content clipped to 800 characters.
func FormatResults(results []searchmodels.Result) string {
	rows := make([]string, 0, maxPromptResults)
	for i, r := range results {
		if i >= maxPromptResults {
			break
		}
		content := utils.Truncate(helpers.CleanSnippet(r.Content), promptContentChar)
		rows = append(rows, fmt.Sprintf("Title: %s\nURL: %s\nContent: %s\n", r.Title, r.URL, content))
	}
	return strings.Join(rows, "\n---\n")
}

// FormatContent renders arbitrary pipeline content into bounded prompt text.
// Result lists use FormatResults; identity+web blobs render the identity
// verbatim followed by the web results; anything else becomes compact JSON,
// falling back to %v when it cannot be serialized.
func FormatContent(content interface{}) string {
	switch v := content.(type) {
	case []searchmodels.Result:
		return FormatResults(v)
	case IdentityContent:
		return fmt.Sprintf("LinkedIn Data:\n%+v\n\nWeb Results:\n%s", v.Identity, FormatResults(v.Web))
	case string:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
