package composer

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"offerdesk/internal/utils"
)

const (
	FilenameSuffix   = "_Offer_Letter_"
	FilenameExt      = ".pdf"
	fallbackBaseName = "Employee"
)

var (
	disallowedNameChars = regexp.MustCompile(`[^A-Za-z0-9_\s\v\x{FEFF}\p{Z}]`)
	whitespaceRuns      = regexp.MustCompile(`[\s\v\x{FEFF}\p{Z}]+`)
)

// SanitizeName turns an employee name into a filename stem: trimmed, every
// character outside letters, digits, underscores and whitespace removed, and
// whitespace runs collapsed to one underscore. Applying it twice is a no-op.
func SanitizeName(name string) string {
	name = strings.TrimFunc(name, isNameSpace)
	name = disallowedNameChars.ReplaceAllString(name, "")
	return whitespaceRuns.ReplaceAllString(name, "_")
}

// Filename builds "<name>_Offer_Letter_<YYYY-MM-DD>.pdf" using the UTC date
// of at.
func Filename(employeeName string, at time.Time) string {
	base := SanitizeName(employeeName)
	if base == "" {
		base = fallbackBaseName
	}
	return base + FilenameSuffix + utils.ISODate(at.UTC()) + FilenameExt
}

// isNameSpace is unicode whitespace plus the byte order mark.
func isNameSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
