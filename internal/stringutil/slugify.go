package stringutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// đ has no decomposition, so it is mapped by hand.
var stroke = strings.NewReplacer("đ", "d", "Đ", "d")

// FoldDiacritics strips combining marks, turning "Xe Số 1" into "Xe So 1".
func FoldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, stroke.Replace(s))
	if err != nil {
		return s
	}
	return folded
}

// Slugify converts a string to a URL-friendly slug.
// It folds diacritics, lowercases the input, replaces non-alphanumeric
// characters with hyphens, collapses consecutive hyphens, and trims
// leading/trailing hyphens.
func Slugify(name string) string {
	s := strings.ToLower(FoldDiacritics(name))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return s
}
