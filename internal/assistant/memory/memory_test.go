package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndHistory(t *testing.T) {
	s := NewStore()

	s.Append(1, "berapa stok gula?", "Stok gula tersisa 12 unit.")

	history := s.History(1)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "berapa stok gula?", history[0].Content)
	assert.Equal(t, "assistant", history[1].Role)
}

func TestHistoryIsolatedPerUser(t *testing.T) {
	s := NewStore()

	s.Append(1, "q1", "a1")
	s.Append(2, "q2", "a2")

	assert.Len(t, s.History(1), 2)
	assert.Len(t, s.History(2), 2)
	assert.Equal(t, "q1", s.History(1)[0].Content)
	assert.Equal(t, "q2", s.History(2)[0].Content)
}

func TestAppendEvictsOldestPair(t *testing.T) {
	s := NewStore()

	for i := 1; i <= 5; i++ {
		s.Append(1, fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	history := s.History(1)
	require.Len(t, history, MaxEntries)
	// Oldest pairs dropped, newest three remain.
	assert.Equal(t, "q3", history[0].Content)
	assert.Equal(t, "a5", history[5].Content)
}

func TestClear(t *testing.T) {
	s := NewStore()

	s.Append(1, "q", "a")
	s.Clear(1)

	assert.Empty(t, s.History(1))
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := NewStore()

	s.Append(1, "q", "a")
	history := s.History(1)
	history[0].Content = "mutated"

	assert.Equal(t, "q", s.History(1)[0].Content)
}

func TestConcurrentAppends(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := uint(i % 5)
			unlock := s.Acquire(userID)
			defer unlock()
			s.Append(userID, "q", "a")
		}(i)
	}
	wg.Wait()

	for userID := uint(0); userID < 5; userID++ {
		history := s.History(userID)
		assert.Len(t, history, MaxEntries)
		// Entries must stay paired after concurrent writes.
		for j := 0; j < len(history); j += 2 {
			assert.Equal(t, "user", history[j].Role)
			assert.Equal(t, "assistant", history[j+1].Role)
		}
	}
}
