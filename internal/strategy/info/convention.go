package info

import (
	"github.com/lox/hanabi/internal/deck"
	"github.com/lox/hanabi/internal/game"
)

// Recommendation is the meaning the convention attaches to a focused slot
type Recommendation uint8

const (
	None    Recommendation = iota
	PlayNow                // the card is playable right now
	Keep                   // the card is still needed; do not discard it
	Trash                  // the card can never score
)

func (r Recommendation) String() string {
	switch r {
	case None:
		return "none"
	case PlayNow:
		return "play"
	case Keep:
		return "keep"
	case Trash:
		return "trash"
	default:
		return "unknown"
	}
}

// Reading is how every player interprets one hint
type Reading struct {
	Target  int
	Focus   int // -1 when the hint matched nothing
	Rec     Recommendation
	Allowed deck.Set
}

// Interpret decodes a hint to target that matched the given slots, using
// only the public state before the hint.
//
// The focus is the newest matched slot that was untouched; failing that the
// newest whose belief after the hint still has several identities; failing
// that the newest matched slot. With B the focus belief after the literal
// hint, the hint says PlayNow if B holds a playable card, Keep if B holds a
// card that can still score, and Trash otherwise. Allowed is B narrowed to
// the cards consistent with that recommendation.
func (p *Public) Interpret(target int, h game.Hint, matched []int) Reading {
	r := Reading{Target: target, Focus: -1}
	if len(matched) == 0 {
		return r
	}
	hand := p.Hands[target]

	after := func(slot int) deck.Set {
		k := hand[slot].Knowledge
		k.Apply(h, true)
		return k.Possible().And(hand[slot].Allowed)
	}

	for i := len(matched) - 1; i >= 0 && r.Focus < 0; i-- {
		if !hand[matched[i]].Touched {
			r.Focus = matched[i]
		}
	}
	for i := len(matched) - 1; i >= 0 && r.Focus < 0; i-- {
		if after(matched[i]).Len() > 1 {
			r.Focus = matched[i]
		}
	}
	if r.Focus < 0 {
		r.Focus = matched[len(matched)-1]
	}

	belief := after(r.Focus)
	if playable := belief.And(p.Piles.PlayableSet()); !playable.Empty() {
		r.Rec, r.Allowed = PlayNow, playable
	} else if live := belief.AndNot(p.Piles.DeadSet()); !live.Empty() {
		r.Rec, r.Allowed = Keep, live
	} else {
		r.Rec, r.Allowed = Trash, belief
	}
	return r
}
