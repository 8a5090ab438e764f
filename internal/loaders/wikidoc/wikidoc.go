// Package wikidoc extracts documents from wiki-dump style content.
// Dump extractors wrap each article in a <doc id url title> block; a
// single file can carry many articles. Files without <doc> blocks are
// one document, named after the file.
package wikidoc

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
)

var (
	docBlock = regexp.MustCompile(`(?s)<doc\s+([^>]*)>(.*?)</doc>`)
	attr     = regexp.MustCompile(`(\w+)="([^"]*)"`)
)

// Extract returns the documents in content. When <doc> blocks are
// present each complete block (id, title and non-empty text) yields
// one document; otherwise the whole content is a single document with
// ID the file name and title the file stem.
func Extract(content, path string) []domain.Document {
	matches := docBlock.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return wholeFile(content, path)
	}

	var docs []domain.Document
	for _, m := range matches {
		attrs := parseAttrs(m[1])
		text := strings.TrimSpace(m[2])
		if attrs["id"] == "" || attrs["title"] == "" || text == "" {
			continue
		}
		docs = append(docs, domain.Document{
			ID:         attrs["id"],
			SourcePath: path,
			Title:      attrs["title"],
			RawText:    text,
		})
	}
	return docs
}

func wholeFile(content, path string) []domain.Document {
	text := strings.TrimSpace(content)
	if text == "" {
		return nil
	}
	name := filepath.Base(path)
	return []domain.Document{{
		ID:         name,
		SourcePath: path,
		Title:      strings.TrimSuffix(name, filepath.Ext(name)),
		RawText:    text,
	}}
}

func parseAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attr.FindAllStringSubmatch(s, -1) {
		attrs[m[1]] = m[2]
	}
	return attrs
}
