package deck

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/hanabi/internal/randutil"
)

// Size is the number of cards in a full Hanabi deck
const Size = 50

// Deck represents the draw pile
type Deck struct {
	cards []Card
	next  int
}

// Standard returns the canonical 50 cards in suit/rank order
func Standard() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			for range rank.Copies() {
				cards = append(cards, NewCard(suit, rank))
			}
		}
	}
	return cards
}

// NewDeck creates a new shuffled deck with explicit RNG
func NewDeck(rng *rand.Rand) *Deck {
	cards := Standard()
	randutil.Shuffle(rng, cards)
	return &Deck{cards: cards}
}

// NewDeckFromSeed creates a deck shuffled deterministically from seed
func NewDeckFromSeed(seed int64) *Deck {
	return NewDeck(randutil.New(seed))
}

// NewOrderedDeck creates a deck that deals cards in exactly the given order.
// The cards must be a permutation of the standard deck.
func NewOrderedDeck(cards []Card) (*Deck, error) {
	if len(cards) != Size {
		return nil, fmt.Errorf("deck must contain %d cards, got %d", Size, len(cards))
	}
	if CountsOf(cards...) != FullCounts() {
		return nil, fmt.Errorf("deck is not a permutation of the standard deck")
	}
	return &Deck{cards: append([]Card(nil), cards...)}, nil
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, bool) {
	if d.next >= len(d.cards) {
		return Card{}, false
	}
	card := d.cards[d.next]
	d.next++
	return card, true
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return d.Remaining() == 0
}

// Cards returns a copy of the undrawn cards, top first
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards[d.next:]...)
}
