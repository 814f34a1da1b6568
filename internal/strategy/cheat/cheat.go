// Package cheat implements the cheating baseline. The players of one game
// share a mutable table of hands: every player records the hands it can see,
// and reads its own hand from what its teammates recorded. The result is an
// upper bound for fair strategies and is always reported separately.
package cheat

import (
	"github.com/lox/hanabi/internal/deck"
	"github.com/lox/hanabi/internal/game"
	"github.com/lox/hanabi/internal/strategy"
)

// Factory builds cheating players
type Factory struct{}

var (
	_ strategy.Factory = Factory{}
	_ strategy.Cheater = Factory{}
)

func (Factory) Name() string { return "cheat" }

func (Factory) Cheats() bool { return true }

func (Factory) NewGame(opts game.Options, _ int64) []strategy.Player {
	table := &handTable{hands: make([][]deck.Card, opts.Players)}
	players := make([]strategy.Player, opts.Players)
	for seat := range players {
		players[seat] = &Player{seat: seat, table: table}
	}
	return players
}

// handTable is the side channel shared by the players of one game
type handTable struct {
	hands [][]deck.Card
}

func (t *handTable) record(v game.View) {
	for p := range v.NumPlayers() {
		if p != v.Viewer() {
			t.hands[p] = v.Hand(p)
		}
	}
}

// Player plays with full knowledge of its own hand
type Player struct {
	seat  int
	table *handTable
}

func (p *Player) Start(view *game.BorrowedView) { p.table.record(view) }

func (p *Player) Observe(view *game.BorrowedView, _ game.Record) { p.table.record(view) }

func (p *Player) Decide(view *game.BorrowedView, _ *game.History) game.Action {
	p.table.record(view)
	hand := p.table.hands[p.seat]
	board := view.Board()
	piles := board.Piles()
	opts := board.Options()

	if slot, ok := p.bestPlay(hand, &piles); ok {
		return game.Play(slot)
	}

	// keep enough cards in the deck to finish every firework
	threshold := deck.Size - game.MaxScore - opts.Players*opts.HandSize
	useless, hasUseless := p.uselessCard(hand, &piles)
	canRefund := board.Hints() < opts.Hints

	if hasUseless && canRefund && len(board.Discards()) <= threshold {
		return game.Discard(useless)
	}
	if board.Hints() > 0 && p.teammateCanPlay(&piles) {
		if a, ok := stallHint(view); ok {
			return a
		}
	}
	if hasUseless && canRefund {
		return game.Discard(useless)
	}
	if board.Hints() > 0 {
		if a, ok := stallHint(view); ok {
			return a
		}
	}
	return game.Discard(leastUseful(hand, &piles))
}

// bestPlay prefers playable cards that unlock a card someone holds, then
// fives for the refunded hint, then low ranks.
func (p *Player) bestPlay(hand []deck.Card, piles *game.Piles) (int, bool) {
	best, bestKey := -1, 0
	for slot, c := range hand {
		if !piles.Playable(c) {
			continue
		}
		key := int(c.Rank)
		if c.Rank == deck.Five {
			key = 0
		} else if p.anyoneHolds(deck.NewCard(c.Suit, c.Rank+1)) {
			key = -10 + int(c.Rank)
		}
		if best < 0 || key < bestKey {
			best, bestKey = slot, key
		}
	}
	return best, best >= 0
}

// uselessCard finds a card that can never score or is duplicated elsewhere
func (p *Player) uselessCard(hand []deck.Card, piles *game.Piles) (int, bool) {
	for slot, c := range hand {
		if piles.Dead(c) {
			return slot, true
		}
	}
	for slot, c := range hand {
		for other, d := range hand {
			if other != slot && d == c {
				return slot, true
			}
		}
		if p.anyoneElseHolds(c) {
			return slot, true
		}
	}
	return 0, false
}

func (p *Player) teammateCanPlay(piles *game.Piles) bool {
	for q, hand := range p.table.hands {
		if q == p.seat {
			continue
		}
		for _, c := range hand {
			if piles.Playable(c) {
				return true
			}
		}
	}
	return false
}

func (p *Player) anyoneHolds(c deck.Card) bool {
	for _, hand := range p.table.hands {
		for _, d := range hand {
			if d == c {
				return true
			}
		}
	}
	return false
}

func (p *Player) anyoneElseHolds(c deck.Card) bool {
	for q, hand := range p.table.hands {
		if q == p.seat {
			continue
		}
		for _, d := range hand {
			if d == c {
				return true
			}
		}
	}
	return false
}

// leastUseful picks the discard that hurts least: a non-critical card as far
// from playable as possible.
func leastUseful(hand []deck.Card, piles *game.Piles) int {
	best, bestKey := 0, -1
	for slot, c := range hand {
		key := int(c.Rank) - piles.Height(c.Suit)
		if !piles.Critical(c) {
			key += 10
		}
		if key > bestKey {
			best, bestKey = slot, key
		}
	}
	return best
}

// stallHint spends a token without caring what it says
func stallHint(view game.View) (game.Action, bool) {
	for _, a := range view.LegalActions() {
		if a.Kind == game.HintAction {
			return a, true
		}
	}
	return game.Action{}, false
}
