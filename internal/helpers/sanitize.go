package helpers

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

// StrictHTMLPolicy returns a singleton bluemonday policy that strips every
// HTML element and attribute. Search providers occasionally return snippets
// with markup; the prompt should only ever see plain text.
func StrictHTMLPolicy() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// CleanSnippet removes every HTML tag from s and collapses runs of
// whitespace, producing a compact plain-text value safe to embed in a prompt.
func CleanSnippet(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = StrictHTMLPolicy().Sanitize(s)
	return strings.Join(strings.Fields(s), " ")
}
