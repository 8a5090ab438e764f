package markdown

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_StripsFormatting(t *testing.T) {
	content := `# Heading

Some **bold** and *italic* text with a [link](https://example.org).

- item one
- item two

` + "```\ncode block\n```\n"

	path := filepath.Join(t.TempDir(), "note.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	docs, err := New().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	text := docs[0].RawText
	assert.NotContains(t, text, "#")
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "](")
	assert.NotContains(t, text, "code block")
	assert.Contains(t, text, "Heading")
	assert.Contains(t, text, "Some bold and italic text with a link.")
	assert.Contains(t, text, "item one")
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"heading", "## Title", "Title"},
		{"link keeps text", "[text](url)", "text"},
		{"image removed", "![alt](url)", ""},
		{"blockquote", "> quoted", "quoted"},
		{"numbered list", "1. first", "first"},
		{"plain text untouched", "nothing fancy", "nothing fancy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripMarkdown(tt.in))
		})
	}
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".md"}, New().Extensions())
}
