package pathutil

import (
	"strings"
	"unicode"
)

// Slugify turns a path template or name into a URL-safe identifier.
// Slashes, braces and whitespace become hyphens, runs of hyphens collapse
// to one, and leading or trailing hyphens are dropped.
//
//	Slugify("/pets/{petId}") // "pets-petId"
//	Slugify("/")             // ""
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	lastHyphen := false
	for _, r := range name {
		if r == '/' || r == '{' || r == '}' || r == '-' || unicode.IsSpace(r) {
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
			continue
		}
		b.WriteRune(r)
		lastHyphen = false
	}
	return strings.Trim(b.String(), "-")
}
