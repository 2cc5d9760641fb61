package youtube

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxFilenameLength caps sanitized names, counted in runes.
const MaxFilenameLength = 100

// FallbackFilename is returned when nothing usable is left.
const FallbackFilename = "video"

var (
	reservedCharsRe = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// SanitizeFilename strips characters that are invalid in filenames on common
// filesystems, collapses whitespace and caps the length. It never returns an
// empty string.
func SanitizeFilename(name string) string {
	result := reservedCharsRe.ReplaceAllString(name, "")
	result = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, result)
	result = whitespaceRe.ReplaceAllString(result, " ")
	result = strings.TrimSpace(result)

	if runes := []rune(result); len(runes) > MaxFilenameLength {
		result = strings.TrimSpace(string(runes[:MaxFilenameLength]))
	}

	if result == "" {
		return FallbackFilename
	}
	return result
}
