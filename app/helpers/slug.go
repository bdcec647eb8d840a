package helpers

import (
	"regexp"
	"strings"
)

var turkishToASCII = strings.NewReplacer(
	"ğ", "g", "Ğ", "G",
	"ü", "u", "Ü", "U",
	"ş", "s", "Ş", "S",
	"ı", "i", "İ", "I",
	"ö", "o", "Ö", "O",
	"ç", "c", "Ç", "C",
)

var (
	slugInvalidRe = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRe   = regexp.MustCompile(`\s+`)
	slugDashRe    = regexp.MustCompile(`-+`)
)

// GenerateSlug derives a URL-safe identifier from a display name: Turkish
// letters are transliterated, everything outside [a-z0-9 -] is stripped,
// whitespace runs become single hyphens. The result is only a suggestion;
// the database unique index is what actually enforces identity.
func GenerateSlug(s string) string {
	s = turkishToASCII.Replace(s)
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalidRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
