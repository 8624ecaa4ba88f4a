package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policiesOnce   sync.Once
	textPolicy     *bluemonday.Policy
	basicPolicy    *bluemonday.Policy
	markdownPolicy *bluemonday.Policy
)

func policies() {
	policiesOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()

		basicPolicy = bluemonday.NewPolicy()
		basicPolicy.AllowStandardURLs()
		basicPolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		basicPolicy.AllowAttrs("href").OnElements("a")
		basicPolicy.RequireNoFollowOnLinks(true)

		markdownPolicy = bluemonday.UGCPolicy()
		markdownPolicy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")
		markdownPolicy.AllowAttrs("id").Matching(bluemonday.Paragraph).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	})
}

// StripHTML removes every tag and returns the text content, HTML escaped.
func StripHTML(s string) string {
	policies()
	return textPolicy.Sanitize(s)
}

// SanitizeHTML keeps paragraphs, emphasis, lists, code and nofollow links.
// It backs the sanitize view function for user supplied snippets.
func SanitizeHTML(s string) string {
	policies()
	return basicPolicy.Sanitize(s)
}

// SanitizeMarkdownHTML cleans HTML rendered from markdown. Headings with
// ids, tables, images and code blocks with language classes survive.
func SanitizeMarkdownHTML(s string) string {
	policies()
	return markdownPolicy.Sanitize(s)
}
