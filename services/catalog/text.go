package catalog

import (
	"html"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy      = bluemonday.StrictPolicy()
	descriptionPolicy = newDescriptionPolicy()
	nonWordPattern    = regexp.MustCompile(`[^\w\s-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	dashesPattern     = regexp.MustCompile(`-+`)
)

func newDescriptionPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// StripHTML returns the plain text of an html fragment.
func StripHTML(fragment string) string {
	if fragment == "" {
		return ""
	}
	return html.UnescapeString(strictPolicy.Sanitize(fragment))
}

// SafeDescription sanitises partner supplied html so it can be rendered as is.
func SafeDescription(fragment string) template.HTML {
	return template.HTML(descriptionPolicy.Sanitize(fragment))
}

// Truncate shortens text to at most maxLength runes, marking the cut with "...".
func Truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return strings.TrimSpace(string(runes[:maxLength])) + "..."
}

// Slugify turns a label into a lower-case, dash separated token usable as a css class.
func Slugify(text string) string {
	slug := strings.ToLower(text)
	slug = nonWordPattern.ReplaceAllString(slug, "")
	slug = whitespacePattern.ReplaceAllString(slug, "-")
	slug = dashesPattern.ReplaceAllString(slug, "-")
	return strings.TrimSpace(slug)
}
