package research

import (
	"context"
	"fmt"
	"regexp"

	"github.com/dossier-ai/dossier/internal/extract"
	"github.com/dossier-ai/dossier/models"
)

var profilePatterns = []*regexp.Regexp{
	regexp.MustCompile(`linkedin\.com/in/([^/?#]+)`),
	regexp.MustCompile(`linkedin\.com/pub/([^/?#]+)`),
}

// ProfileUsername parses the username out of a LinkedIn profile URL.
// Returns "" when the URL does not look like a profile.
func ProfileUsername(url string) string {
	for _, p := range profilePatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

// ExtractIdentity builds a structured identity from a LinkedIn profile URL:
// fetch the page text through the semantic search provider, then run the
// structured extractor over it. An unparseable URL fails before any network
// call with models.ErrInvalidProfileURL.
func (s *Service) ExtractIdentity(ctx context.Context, linkedinURL string) (models.Identity, error) {
	username := ProfileUsername(linkedinURL)
	if username == "" {
		return models.Identity{}, models.ErrInvalidProfileURL
	}

	page, err := s.pages.FetchPage(ctx, linkedinURL)
	if err != nil {
		return models.Identity{}, fmt.Errorf("profile fetch for %s: %w", username, err)
	}
	canonical := page.URL
	if canonical == "" {
		canonical = linkedinURL
	}

	content := fmt.Sprintf("Title: %s\nURL: %s\n\nContent:\n%s", page.Title, canonical, page.Content)
	var identity models.Identity
	if err := s.extractor.Extract(ctx, content, extract.KindPerson, username, extract.IdentitySchema(), &identity); err != nil {
		return models.Identity{}, err
	}

	identity.LinkedinURL = canonical
	if u := ProfileUsername(canonical); u != "" {
		username = u
	}
	identity.Username = username
	return identity, nil
}
