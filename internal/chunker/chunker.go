// Package chunker splits normalised document text into scoring-sized
// chunks along paragraph and sentence boundaries.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
)

// DefaultMaxChars is the default chunk size in runes.
const DefaultMaxChars = 4000

// Splitter cuts clean text into ordered chunks. Chunks are contiguous
// substrings of the input, so concatenating them in order reproduces
// the text byte-for-byte. Splitting is a pure function of the text and
// the configured size: identical input yields identical chunks.
type Splitter struct {
	maxChars int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithMaxChars sets the chunk size limit in runes.
func WithMaxChars(n int) Option {
	return func(s *Splitter) {
		if n > 0 {
			s.maxChars = n
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{maxChars: DefaultMaxChars}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Split cuts cleanText into chunks for the document with the given ID.
// Paragraph boundaries are tried first; a paragraph over the limit is
// further cut at sentence boundaries; a single sentence over the limit
// is emitted as its own oversized chunk rather than truncated, since
// truncation would corrupt scoring. Empty input yields no chunks.
func (s *Splitter) Split(docID, cleanText string) []domain.Chunk {
	if cleanText == "" {
		return nil
	}

	var pieces []string
	for _, para := range splitAfter(cleanText, '\n') {
		if utf8.RuneCountInString(para) <= s.maxChars {
			pieces = append(pieces, para)
			continue
		}
		pieces = append(pieces, splitSentences(para)...)
	}

	chunks := make([]domain.Chunk, 0, len(pieces))
	var b strings.Builder
	pending := 0
	flush := func() {
		if b.Len() == 0 {
			return
		}
		chunks = append(chunks, domain.Chunk{
			DocumentID: docID,
			Index:      len(chunks),
			Text:       b.String(),
		})
		b.Reset()
		pending = 0
	}

	for _, piece := range pieces {
		n := utf8.RuneCountInString(piece)
		if pending+n > s.maxChars {
			flush()
		}
		b.WriteString(piece)
		pending += n
		if pending >= s.maxChars {
			flush()
		}
	}
	flush()

	return chunks
}

// splitAfter cuts text into segments each ending with sep (except
// possibly the last). The segments tile the input exactly.
func splitAfter(text string, sep byte) []string {
	var segs []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == sep {
			segs = append(segs, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		segs = append(segs, text[start:])
	}
	return segs
}

// splitSentences cuts a paragraph at sentence terminators. The pieces
// tile the paragraph; a piece with no terminator at all (one giant
// sentence) is returned whole.
func splitSentences(text string) []string {
	var pieces []string
	start := 0
	for i, r := range text {
		if isSentenceEnd(r) {
			end := i + utf8.RuneLen(r)
			pieces = append(pieces, text[start:end])
			start = end
		}
	}
	if start < len(text) {
		pieces = append(pieces, text[start:])
	}
	return pieces
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
