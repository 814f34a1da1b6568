package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/hanabi/internal/deck"
)

// stackedDeck returns a full deck that deals the given cards first, followed
// by the rest of the standard deck in canonical order.
func stackedDeck(t *testing.T, top ...string) []deck.Card {
	t.Helper()
	prefix := deck.MustParseCards(top...)
	remaining := deck.FullCounts()
	for _, c := range prefix {
		remaining.Remove(c)
	}
	cards := append([]deck.Card(nil), prefix...)
	for _, c := range deck.Standard() {
		if remaining.Get(c) > 0 {
			cards = append(cards, c)
			remaining.Remove(c)
		}
	}
	require.Len(t, cards, deck.Size)
	return cards
}

func newStacked(t *testing.T, opts Options, top ...string) *State {
	t.Helper()
	s, err := New(0, opts, WithDeck(stackedDeck(t, top...)))
	require.NoError(t, err)
	return s
}

func mustApply(t *testing.T, s *State, a Action) Record {
	t.Helper()
	rec, err := s.Apply(a)
	require.NoError(t, err)
	require.NoError(t, s.Validate())
	return rec
}
