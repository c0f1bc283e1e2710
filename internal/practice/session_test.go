package practice

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysmarter/studysmarter/internal/model"
)

func cards(n int) []model.Flashcard {
	out := make([]model.Flashcard, n)
	for i := range out {
		out[i] = model.Flashcard{ID: fmt.Sprintf("f%d", i), Question: fmt.Sprintf("q%d", i), Answer: fmt.Sprintf("a%d", i)}
	}
	return out
}

func TestSession_EmptyDeck(t *testing.T) {
	s := NewSession(nil)
	_, ok := s.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Position())
	assert.False(t, s.Next())
	assert.False(t, s.Prev())
}

func TestSession_NavigationHidesAnswer(t *testing.T) {
	s := NewSession(cards(3))

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "f0", cur.ID)
	assert.False(t, s.Revealed())

	s.Reveal()
	assert.True(t, s.Revealed())

	require.True(t, s.Next())
	assert.False(t, s.Revealed(), "advancing hides the answer")
	cur, _ = s.Current()
	assert.Equal(t, "f1", cur.ID)
	assert.Equal(t, 2, s.Position())

	s.Reveal()
	require.True(t, s.Prev())
	assert.False(t, s.Revealed(), "stepping back hides the answer")
	cur, _ = s.Current()
	assert.Equal(t, "f0", cur.ID)
}

func TestSession_NavigationClamps(t *testing.T) {
	s := NewSession(cards(2))
	assert.False(t, s.Prev(), "cannot step before first card")
	require.True(t, s.Next())
	assert.False(t, s.Next(), "cannot step past last card")
	cur, _ := s.Current()
	assert.Equal(t, "f1", cur.ID)
}

func TestSession_Restart(t *testing.T) {
	s := NewSession(cards(3))
	s.Next()
	s.Next()
	s.Reveal()

	s.Restart()
	assert.Equal(t, 1, s.Position())
	assert.False(t, s.Revealed())
}

func TestSession_ShuffleKeepsAllCards(t *testing.T) {
	s := NewShuffledSession(cards(20), 42)
	assert.True(t, s.Shuffled())
	assert.Equal(t, 20, s.Len())

	seen := make(map[string]bool)
	for {
		cur, ok := s.Current()
		require.True(t, ok)
		seen[cur.ID] = true
		if !s.Next() {
			break
		}
	}
	assert.Len(t, seen, 20, "shuffle must be a permutation")
}

func TestSession_ToggleShuffleRestoresOrder(t *testing.T) {
	s := NewShuffledSession(cards(10), 7)
	require.True(t, s.Shuffled())

	s.ToggleShuffle()
	assert.False(t, s.Shuffled())
	assert.Equal(t, 1, s.Position(), "toggling restarts the session")

	for i := 0; i < 10; i++ {
		cur, ok := s.Current()
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("f%d", i), cur.ID, "insertion order restored")
		s.Next()
	}
}

func TestSession_SnapshotIsolatedFromCaller(t *testing.T) {
	src := cards(2)
	s := NewSession(src)
	src[0].Question = "mutated"

	cur, _ := s.Current()
	assert.Equal(t, "q0", cur.Question)
}
