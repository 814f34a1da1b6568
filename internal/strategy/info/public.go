package info

import (
	"slices"

	"github.com/lox/hanabi/internal/deck"
	"github.com/lox/hanabi/internal/game"
)

// Slot is what every player publicly knows about one card in someone's hand.
type Slot struct {
	// Knowledge is the literal content of the hints the slot received
	Knowledge game.Knowledge
	// Allowed is the narrowing implied by the convention
	Allowed deck.Set
	// Touched is set once any hint has matched the slot
	Touched bool
	// Rec is the recommendation attached by the last hint that focused it
	Rec Recommendation
}

func newSlot() Slot {
	return Slot{Knowledge: game.NewKnowledge(), Allowed: deck.FullSet}
}

// Belief is the set of identities the public information allows
func (s Slot) Belief() deck.Set {
	return s.Knowledge.Possible().And(s.Allowed)
}

// Public is the state of the convention: a pure function of the public
// history, so every player that observes the same records holds an equal
// Public.
type Public struct {
	Piles    game.Piles
	Hands    [][]Slot
	DeckSize int
}

// NewPublic returns the public state before the first turn
func NewPublic(opts game.Options) *Public {
	p := &Public{
		Hands:    make([][]Slot, opts.Players),
		DeckSize: deck.Size - opts.Players*opts.HandSize,
	}
	for player := range p.Hands {
		p.Hands[player] = make([]Slot, opts.HandSize)
		for slot := range p.Hands[player] {
			p.Hands[player][slot] = newSlot()
		}
	}
	return p
}

// Replay rebuilds the public state from a history
func Replay(opts game.Options, history *game.History) *Public {
	p := NewPublic(opts)
	for _, rec := range history.Records() {
		p.Observe(rec)
	}
	return p
}

// Clone returns a deep copy
func (p *Public) Clone() *Public {
	c := &Public{Piles: p.Piles, DeckSize: p.DeckSize, Hands: make([][]Slot, len(p.Hands))}
	for player := range p.Hands {
		c.Hands[player] = slices.Clone(p.Hands[player])
	}
	return c
}

// Observe folds one record into the public state. A revealed card that
// contradicts the public belief about its slot means some player broke the
// convention, which panics with a *game.InvariantError.
func (p *Public) Observe(rec game.Record) {
	switch rec.Action.Kind {
	case game.HintAction:
		p.observeHint(rec.Action.Target, rec.Action.Hint, rec.Matched)

	case game.PlayAction, game.DiscardAction:
		hand := p.Hands[rec.Player]
		slot := hand[rec.Action.Slot]
		if !slot.Belief().Has(rec.Card) {
			game.Invariantf("player %d slot %d revealed %s outside its public belief %s",
				rec.Player, rec.Action.Slot, rec.Card, slot.Belief())
		}

		if rec.Action.Kind == game.PlayAction {
			if p.Piles.Playable(rec.Card) != rec.Success {
				game.Invariantf("play of %s on turn %d disagrees with the tracked fireworks", rec.Card, rec.Turn)
			}
			p.Piles.Play(rec.Card)
		} else {
			p.Piles.Discard(rec.Card)
		}

		hand = slices.Delete(hand, rec.Action.Slot, rec.Action.Slot+1)
		if rec.Drew {
			hand = append(hand, newSlot())
			p.DeckSize--
		}
		p.Hands[rec.Player] = hand
	}
}

func (p *Public) observeHint(target int, h game.Hint, matched []int) {
	reading := p.Interpret(target, h, matched)
	hand := p.Hands[target]
	for slot := range hand {
		touched := slices.Contains(matched, slot)
		hand[slot].Knowledge.Apply(h, touched)
		if touched {
			hand[slot].Touched = true
		}
	}
	if reading.Focus >= 0 {
		hand[reading.Focus].Allowed = reading.Allowed
		hand[reading.Focus].Rec = reading.Rec
	}
}

// Chop returns the slot player discards when nothing better is known: the
// oldest untouched slot, or -1 if every slot has been touched.
func (p *Public) Chop(player int) int {
	for slot, s := range p.Hands[player] {
		if !s.Touched {
			return slot
		}
	}
	return -1
}

// KnownPlayable reports whether the public belief about the slot contains
// only playable cards
func (p *Public) KnownPlayable(player, slot int) bool {
	belief := p.Hands[player][slot].Belief()
	return !belief.Empty() && belief.SubsetOf(p.Piles.PlayableSet())
}

// KnownTrash reports whether the public belief about the slot contains only
// cards that can never score
func (p *Public) KnownTrash(player, slot int) bool {
	belief := p.Hands[player][slot].Belief()
	return !belief.Empty() && belief.SubsetOf(p.Piles.DeadSet())
}
