// Package textnorm provides the pure text normalisation functions the
// pipeline applies before filtering. Every function is total: it never
// fails, and unrecognised input passes through best-effort.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	tagPattern = regexp.MustCompile(`<[^>]*?>`)
	// Any whitespace run containing a newline is one paragraph break.
	newlineRuns    = regexp.MustCompile(`[ \t\r]*\n[\s]*`)
	spaceOrTabRuns = regexp.MustCompile(`[ \t\r]+`)
)

// StripTags removes remnant wiki-style and HTML-like tags, such as
// <templatestyles> blocks the upstream dump extractor missed. Anything
// enclosed in <...> is dropped.
func StripTags(text string) string {
	return tagPattern.ReplaceAllString(text, "")
}

// StrictMalayalam drops every rune outside the Malayalam block
// (U+0D00 to U+0D7F) except whitespace, digits and the punctuation
// set ".,?!-". This is an aggressive cleaning step applied before the
// script-ratio filter.
func StrictMalayalam(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if keepRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func keepRune(r rune) bool {
	switch {
	case r >= 0x0D00 && r <= 0x0D7F:
		return true
	case unicode.IsSpace(r):
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '.' || r == ',' || r == '?' || r == '!' || r == '-':
		return true
	}
	return false
}

// CollapseWhitespace trims the text, collapses any whitespace run that
// contains a newline to a single newline (paragraph break) and runs of
// spaces or tabs to a single space.
func CollapseWhitespace(text string) string {
	text = strings.TrimSpace(text)
	text = newlineRuns.ReplaceAllString(text, "\n")
	text = spaceOrTabRuns.ReplaceAllString(text, " ")
	return text
}

// RemoveRepeatedTitle drops the first line when it repeats the title.
// Many wiki articles start with the article title, which is redundant
// next to the record metadata.
func RemoveRepeatedTitle(text, title string) string {
	first, rest, found := strings.Cut(text, "\n")
	if strings.TrimSpace(first) != strings.TrimSpace(title) || title == "" {
		return text
	}
	if !found {
		return ""
	}
	return rest
}

// Normalize runs the full normalisation chain: tag stripping, strict
// Malayalam filtering, then whitespace collapsing. It is idempotent:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	return CollapseWhitespace(StrictMalayalam(StripTags(text)))
}
