package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScorer(t *testing.T, handler http.HandlerFunc) *Scorer {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	s, err := New(Config{
		APIKey:            "test-key",
		BaseURL:           server.URL,
		Model:             "gemini-1.5-flash",
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)
	return s
}

func candidateBody(text string) string {
	body := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	}
	b, _ := json.Marshal(body)
	return string(b)
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestScore_Success(t *testing.T) {
	s := newTestScorer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "some malayalam text")
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)
		assert.Zero(t, req.GenerationConfig.Temperature)

		w.Write([]byte(candidateBody(`{"score": 8, "reason": "coherent prose"}`)))
	})

	result, err := s.Score(context.Background(), "some malayalam text")
	require.NoError(t, err)
	assert.Equal(t, 8.0, result.Score)
	assert.Equal(t, "coherent prose", result.Rationale)
}

func TestScore_HTTPError(t *testing.T) {
	s := newTestScorer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := s.Score(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestScore_EmptyCandidates(t *testing.T) {
	s := newTestScorer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})

	_, err := s.Score(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestScore_UnparsableModelOutput(t *testing.T) {
	s := newTestScorer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateBody("I refuse to answer in JSON.")))
	})

	_, err := s.Score(context.Background(), "text")
	require.Error(t, err)
}

func TestName(t *testing.T) {
	s, err := New(Config{APIKey: "k", Model: "gemini-1.5-pro"})
	require.NoError(t, err)
	assert.Equal(t, "gemini/gemini-1.5-pro", s.Name())
}
