package cricket

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonSlugRe    = regexp.MustCompile(`[^a-z0-9]+`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9]`)
)

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&#x27;", "'",
	"&#39;", "'",
	"&quot;", `"`,
	"&lt;", "<",
	"&gt;", ">",
)

// decodeEntities resolves the handful of HTML entities the source pages
// actually emit. Full entity decoding is not needed and would touch the
// embedded JSON payloads.
func decodeEntities(value string) string {
	return entityReplacer.Replace(value)
}

// cleanText decodes entities, collapses whitespace and trims.
func cleanText(value string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(decodeEntities(value), " "))
}

// safeText trims a value that may come from a missing raw field.
func safeText(value any) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// slugify builds a URL path segment. Empty input slugs to "match" so URL
// construction never produces a double slash.
func slugify(value string) string {
	slug := nonSlugRe.ReplaceAllString(strings.ToLower(value), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "match"
	}
	return slug
}

// normalizeKey lowercases and strips everything non-alphanumeric, the
// canonical form for fuzzy team name matching.
func normalizeKey(value string) string {
	return nonAlnumRe.ReplaceAllString(strings.ToLower(value), "")
}
