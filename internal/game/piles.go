package game

import "github.com/lox/hanabi/internal/deck"

// Piles holds the played fireworks and the discard counts. Everything here is
// public, and every playability question in the game is answered from it.
type Piles struct {
	Fireworks [deck.NumSuits]int
	Discarded deck.Counts
}

// Height returns the top rank played on suit s (0 when empty)
func (p *Piles) Height(s deck.Suit) int {
	return p.Fireworks[s]
}

// Score is the sum of firework heights
func (p *Piles) Score() int {
	score := 0
	for _, h := range p.Fireworks {
		score += h
	}
	return score
}

// Complete reports whether every firework reached 5
func (p *Piles) Complete() bool {
	return p.Score() == MaxScore
}

// Playable reports whether c can be played successfully right now
func (p *Piles) Playable(c deck.Card) bool {
	return p.Fireworks[c.Suit] == int(c.Rank)-1
}

// Dead reports whether c can never be played: it is already on the firework,
// or a lower card of its suit has had every copy discarded.
func (p *Piles) Dead(c deck.Card) bool {
	height := p.Fireworks[c.Suit]
	if int(c.Rank) <= height {
		return true
	}
	for r := deck.Rank(height + 1); r < c.Rank; r++ {
		lower := deck.NewCard(c.Suit, r)
		if p.Discarded.Get(lower) >= lower.Copies() {
			return true
		}
	}
	return false
}

// Critical reports whether c is still needed and is the last copy in play
func (p *Piles) Critical(c deck.Card) bool {
	if p.Dead(c) {
		return false
	}
	return p.Discarded.Get(c) == c.Copies()-1
}

// PlayableSet returns every identity that is playable right now
func (p *Piles) PlayableSet() deck.Set {
	var s deck.Set
	for _, suit := range deck.Suits {
		if h := p.Fireworks[suit]; h < deck.NumRanks {
			s = s.With(deck.NewCard(suit, deck.Rank(h+1)))
		}
	}
	return s
}

// DeadSet returns every identity that can no longer score
func (p *Piles) DeadSet() deck.Set {
	var s deck.Set
	for i := range deck.NumCards {
		if c := deck.CardAt(i); p.Dead(c) {
			s = s.With(c)
		}
	}
	return s
}

// CriticalSet returns every identity whose last live copy is unplayed
func (p *Piles) CriticalSet() deck.Set {
	var s deck.Set
	for i := range deck.NumCards {
		if c := deck.CardAt(i); p.Critical(c) {
			s = s.With(c)
		}
	}
	return s
}

// Play puts c on its firework if it is playable. A misplayed card goes to
// the discard pile instead. It reports whether the play succeeded.
func (p *Piles) Play(c deck.Card) bool {
	if p.Playable(c) {
		p.Fireworks[c.Suit]++
		return true
	}
	p.Discarded.Add(c)
	return false
}

// Discard adds c to the discard pile
func (p *Piles) Discard(c deck.Card) {
	p.Discarded.Add(c)
}

// Played returns the composition of the fireworks
func (p *Piles) Played() deck.Counts {
	var c deck.Counts
	for _, suit := range deck.Suits {
		for r := 1; r <= p.Fireworks[suit]; r++ {
			c.Add(deck.NewCard(suit, deck.Rank(r)))
		}
	}
	return c
}
