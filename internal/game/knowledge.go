package game

import (
	"strings"

	"github.com/lox/hanabi/internal/deck"
)

// Knowledge is the public information about one slot: what every player can
// deduce from the literal hints the slot has received.
type Knowledge struct {
	Suits deck.SuitSet
	Ranks deck.RankSet

	// SuitHinted and RankHinted record that a hint named the attribute
	// directly, as opposed to it being narrowed down by elimination.
	SuitHinted bool
	RankHinted bool
}

// NewKnowledge returns knowledge for a freshly drawn card
func NewKnowledge() Knowledge {
	return Knowledge{Suits: deck.AllSuits, Ranks: deck.AllRanks}
}

// Apply narrows the knowledge by a hint that did or did not match the slot.
func (k *Knowledge) Apply(h Hint, matched bool) {
	switch h.Kind {
	case SuitHint:
		if matched {
			k.Suits = deck.SuitSetOf(h.Suit)
			k.SuitHinted = true
		} else {
			k.Suits = k.Suits.Without(h.Suit)
		}
	case RankHint:
		if matched {
			k.Ranks = deck.RankSetOf(h.Rank)
			k.RankHinted = true
		} else {
			k.Ranks = k.Ranks.Without(h.Rank)
		}
	}
}

// Possible returns every identity consistent with the knowledge
func (k Knowledge) Possible() deck.Set {
	return deck.Product(k.Suits, k.Ranks)
}

// Touched reports whether any hint has named an attribute of this slot
func (k Knowledge) Touched() bool {
	return k.SuitHinted || k.RankHinted
}

// Suit returns the suit if it is known
func (k Knowledge) Suit() (deck.Suit, bool) { return k.Suits.Single() }

// Rank returns the rank if it is known
func (k Knowledge) Rank() (deck.Rank, bool) { return k.Ranks.Single() }

// String renders candidate suits and ranks, e.g. "ry 12"
func (k Knowledge) String() string {
	var b strings.Builder
	for _, s := range deck.Suits {
		if k.Suits.Has(s) {
			b.WriteString(s.String())
		}
	}
	b.WriteByte(' ')
	for _, r := range deck.Ranks {
		if k.Ranks.Has(r) {
			b.WriteString(r.String())
		}
	}
	return b.String()
}
