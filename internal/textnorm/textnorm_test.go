package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTags(t *testing.T) {
	t.Run("removes html-like tags", func(t *testing.T) {
		assert.Equal(t, "hello world", StripTags("hello <b>world</b>"))
	})

	t.Run("removes wiki template tags", func(t *testing.T) {
		got := StripTags(`<templatestyles src="x"/>text`)
		assert.Equal(t, "text", got)
	})

	t.Run("leaves plain text alone", func(t *testing.T) {
		assert.Equal(t, "no tags here", StripTags("no tags here"))
	})

	t.Run("unclosed angle bracket is kept", func(t *testing.T) {
		assert.Equal(t, "a < b", StripTags("a < b"))
	})
}

func TestStrictMalayalam(t *testing.T) {
	t.Run("keeps malayalam runes", func(t *testing.T) {
		in := "മലയാളം"
		assert.Equal(t, in, StrictMalayalam(in))
	})

	t.Run("drops latin letters", func(t *testing.T) {
		got := StrictMalayalam("abc അ def")
		assert.Equal(t, " അ ", got)
	})

	t.Run("keeps digits punctuation and whitespace", func(t *testing.T) {
		in := "12, 3.\n?! -"
		assert.Equal(t, in, StrictMalayalam(in))
	})
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"multiple spaces", "a  \t b", "a b"},
		{"multiple newlines", "a\n\n\nb", "a\nb"},
		{"spaces around newline", "a  \n  b", "a\nb"},
		{"leading and trailing", "  a b \n", "a b"},
		{"empty", "", ""},
		{"whitespace only", " \n\t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CollapseWhitespace(tt.in))
		})
	}
}

func TestRemoveRepeatedTitle(t *testing.T) {
	t.Run("drops repeated first line", func(t *testing.T) {
		got := RemoveRepeatedTitle("Title\nbody text", "Title")
		assert.Equal(t, "body text", got)
	})

	t.Run("keeps unrelated first line", func(t *testing.T) {
		got := RemoveRepeatedTitle("Other\nbody", "Title")
		assert.Equal(t, "Other\nbody", got)
	})

	t.Run("title-only document becomes empty", func(t *testing.T) {
		assert.Equal(t, "", RemoveRepeatedTitle("Title", "Title"))
	})

	t.Run("empty title is never stripped", func(t *testing.T) {
		assert.Equal(t, "\nbody", RemoveRepeatedTitle("\nbody", ""))
	})
}

func TestNormalize(t *testing.T) {
	t.Run("full chain", func(t *testing.T) {
		in := "<doc>കഥ   abc\n\n\nകഥ</doc>"
		assert.Equal(t, "കഥ\nകഥ", Normalize(in))
	})

	t.Run("never fails on arbitrary input", func(t *testing.T) {
		inputs := []string{"", "<", ">", "<<>>", "\x00\xff", "a\r\nb"}
		for _, in := range inputs {
			_ = Normalize(in)
		}
	})
}

// Normalize must be idempotent: a second pass never changes the text.
func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"<b>അആ</b>  x\n\ny",
		"  മലയാളം \t text \n\n more ",
		"a < b > c",
		"1, 2. 3!\n\n\n4?",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
