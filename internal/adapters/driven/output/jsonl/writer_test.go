package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
)

func readLines(t *testing.T, path string) []domain.CorpusRecord {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []domain.CorpusRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		var rec domain.CorpusRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestWriter_SplitsStreams(t *testing.T) {
	dir := t.TempDir()
	acceptedPath := filepath.Join(dir, "corpus.jsonl")
	rejectedPath := filepath.Join(dir, "corpus.rejected.jsonl")

	w, err := NewWriter(acceptedPath, rejectedPath)
	require.NoError(t, err)

	score := 8.0
	reason := "coherent"
	require.NoError(t, w.Accept(domain.CorpusRecord{
		ID:         "1",
		SourcePath: "a.txt",
		Title:      "One",
		Text:       "മലയാളം",
		LLMScore:   &score,
		LLMReason:  &reason,
	}))
	require.NoError(t, w.Reject(domain.CorpusRecord{
		ID:     "2",
		Title:  "Two",
		Text:   "short",
		Reason: domain.ReasonMinWordCount,
	}))
	require.NoError(t, w.Close())

	accepted := readLines(t, acceptedPath)
	require.Len(t, accepted, 1)
	assert.Equal(t, "1", accepted[0].ID)
	assert.Equal(t, "മലയാളം", accepted[0].Text)
	require.NotNil(t, accepted[0].LLMScore)
	assert.Equal(t, 8.0, *accepted[0].LLMScore)
	assert.Empty(t, accepted[0].Reason)

	rejected := readLines(t, rejectedPath)
	require.Len(t, rejected, 1)
	assert.Equal(t, "2", rejected[0].ID)
	assert.Equal(t, domain.ReasonMinWordCount, rejected[0].Reason)
	assert.Nil(t, rejected[0].LLMScore)
}

func TestWriter_OmitsScoreFieldsWhenUnset(t *testing.T) {
	dir := t.TempDir()
	acceptedPath := filepath.Join(dir, "out.jsonl")

	w, err := NewWriter(acceptedPath, filepath.Join(dir, "out.rejected.jsonl"))
	require.NoError(t, err)
	require.NoError(t, w.Accept(domain.CorpusRecord{ID: "1", Text: "x"}))
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(acceptedPath)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "llm_score")
	assert.NotContains(t, string(raw), "llm_reason")
	assert.NotContains(t, string(raw), "reason")
}

func TestWriter_CreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	acceptedPath := filepath.Join(dir, "nested", "deep", "out.jsonl")

	w, err := NewWriter(acceptedPath, filepath.Join(dir, "nested", "deep", "out.rejected.jsonl"))
	require.NoError(t, err)
	require.NoError(t, w.Accept(domain.CorpusRecord{ID: "1"}))
	require.NoError(t, w.Close())

	assert.FileExists(t, acceptedPath)
}

func TestWriter_ConcurrentWritesDoNotInterleave(t *testing.T) {
	dir := t.TempDir()
	acceptedPath := filepath.Join(dir, "out.jsonl")

	w, err := NewWriter(acceptedPath, filepath.Join(dir, "out.rejected.jsonl"))
	require.NoError(t, err)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			rec := domain.CorpusRecord{
				ID:   fmt.Sprintf("doc-%d", n),
				Text: "ചില മലയാളം ഉള്ളടക്കം",
			}
			assert.NoError(t, w.Accept(rec))
		}(i)
	}
	wg.Wait()
	require.NoError(t, w.Close())

	records := readLines(t, acceptedPath)
	assert.Len(t, records, workers)
	seen := make(map[string]bool)
	for _, rec := range records {
		seen[rec.ID] = true
	}
	assert.Len(t, seen, workers)
}
