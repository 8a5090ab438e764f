package scorer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt_ContainsText(t *testing.T) {
	text := "ഇതൊരു പരീക്ഷണ വാചകമാണ്."
	prompt := Prompt(text)

	assert.Contains(t, prompt, text)
	assert.Contains(t, prompt, "SCORING RUBRIC")
	assert.Contains(t, prompt, "JSON")
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantScore  float64
		wantReason string
		wantErr    bool
	}{
		{
			name:       "clean JSON",
			raw:        `{"score": 8, "reason": "fluent and coherent"}`,
			wantScore:  8,
			wantReason: "fluent and coherent",
		},
		{
			name:       "JSON wrapped in prose",
			raw:        "Here is my evaluation:\n{\"score\": 4, \"reason\": \"broken grammar\"}\nThat is all.",
			wantScore:  4,
			wantReason: "broken grammar",
		},
		{
			name:       "fractional score",
			raw:        `{"score": 6.5, "reason": "ok"}`,
			wantScore:  6.5,
			wantReason: "ok",
		},
		{
			name:       "missing reason gets placeholder",
			raw:        `{"score": 7}`,
			wantScore:  7,
			wantReason: "no reason provided",
		},
		{
			name:    "no JSON object",
			raw:     "I cannot evaluate this text.",
			wantErr: true,
		},
		{
			name:    "empty output",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			raw:     `{"score": eight}`,
			wantErr: true,
		},
		{
			name:    "score below range",
			raw:     `{"score": 0, "reason": "x"}`,
			wantErr: true,
		},
		{
			name:    "score above range",
			raw:     `{"score": 11, "reason": "x"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParseResponse(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, resp.Score)
			assert.Equal(t, tt.wantReason, resp.Reason)
		})
	}
}

func TestParseResponse_TruncatesLongOutputInError(t *testing.T) {
	_, err := ParseResponse(strings.Repeat("x", 500))
	require.Error(t, err)
	assert.Less(t, len(err.Error()), 200)
}
