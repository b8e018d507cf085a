// Package content holds the pure write-time derivations: URL slugs and
// estimated read times. No I/O, same input always yields same output.
package content

import (
	"fmt"
	"strings"
	"unicode"
)

const wordsPerMinute = 200

// Slugify lower-cases the title, collapses every run of
// non-alphanumeric characters into a single hyphen and strips leading
// and trailing hyphens. Uniqueness is the storage layer's problem.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	return b.String()
}

// ReadTime estimates reading time from the word count at 200 wpm,
// rounded up, never below one minute.
func ReadTime(body string) string {
	words := len(strings.Fields(body))

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
