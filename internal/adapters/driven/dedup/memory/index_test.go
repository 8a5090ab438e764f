package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_FirstSeenWins(t *testing.T) {
	idx := NewIndex()

	first, err := idx.Add("abc123")
	require.NoError(t, err)
	assert.True(t, first)

	first, err = idx.Add("abc123")
	require.NoError(t, err)
	assert.False(t, first)

	first, err = idx.Add("def456")
	require.NoError(t, err)
	assert.True(t, first)

	assert.Equal(t, 2, idx.Len())
}

func TestIndex_ConcurrentAdd(t *testing.T) {
	idx := NewIndex()

	const workers = 16
	var wg sync.WaitGroup
	firsts := make(chan bool, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			first, err := idx.Add("same-hash")
			assert.NoError(t, err)
			firsts <- first
		}()
	}
	wg.Wait()
	close(firsts)

	count := 0
	for first := range firsts {
		if first {
			count++
		}
	}
	assert.Equal(t, 1, count, "exactly one worker should see the hash first")
	assert.Equal(t, 1, idx.Len())
}

func TestIndex_DistinctHashes(t *testing.T) {
	idx := NewIndex()
	for i := 0; i < 100; i++ {
		first, err := idx.Add(fmt.Sprintf("hash-%d", i))
		require.NoError(t, err)
		assert.True(t, first)
	}
	assert.Equal(t, 100, idx.Len())
	require.NoError(t, idx.Close())
}
