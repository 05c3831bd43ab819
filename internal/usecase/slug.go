package usecase

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators   = regexp.MustCompile(`[\s_-]+`)
)

// GenerateSlug derives the URL identifier from a post title: lowercase,
// trim, drop anything that is not a word character, whitespace or hyphen,
// then collapse separator runs into single hyphens. It is deterministic,
// so titles differing only in case or punctuation produce the same slug
// and collide.
func GenerateSlug(title string) string {
	slug := strings.TrimSpace(strings.ToLower(title))
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugSeparators.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
