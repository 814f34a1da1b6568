package game

import (
	"slices"

	"github.com/lox/hanabi/internal/deck"
)

// View is the information available to one seat: every other player's
// cards, all public counters, and only the public knowledge of the viewer's
// own slots. There is no method that yields the viewer's own card
// identities; the data is not held by the view at all.
type View interface {
	Viewer() int
	NumPlayers() int
	Options() Options
	Board() *Board

	// Hand returns another player's cards. It panics for the viewer.
	Hand(player int) []deck.Card
	HandSize(player int) int
	Knowledge(player int) []Knowledge
	OwnKnowledge() []Knowledge

	// Matches returns the slots of target's hand that hint h would touch
	Matches(target int, h Hint) []int

	// Unseen is the composition of every card the viewer cannot see:
	// its own hand plus the draw pile.
	Unseen() deck.Counts
	Belief(slot int) deck.Set
	Weights(slot int) []Weighted

	LegalActions() []Action
	IsLegal(a Action) error
}

// Weighted is a candidate identity with the number of unseen copies
type Weighted struct {
	Card   deck.Card
	Weight int
}

type viewData struct {
	viewer  int
	board   *Board
	cards   [][]deck.Card // nil at the viewer's seat
	info    [][]Knowledge
	scratch []deck.Set // owned views only: private narrowing of own slots

	epoch *uint64 // borrowed views only
	at    uint64
}

// BorrowedView references the live state for the duration of one decision.
type BorrowedView struct {
	viewData
}

// OwnedView is a detached snapshot a strategy may keep across turns. It
// carries private scratch beliefs about the viewer's own slots that the
// strategy can narrow as it reasons.
type OwnedView struct {
	viewData
}

var (
	_ View = (*BorrowedView)(nil)
	_ View = (*OwnedView)(nil)
)

func (v *viewData) live() {
	if v.epoch != nil && *v.epoch != v.at {
		panic("game: borrowed view used after the state changed")
	}
}

// Viewer returns the seat this view belongs to
func (v *viewData) Viewer() int { return v.viewer }

// NumPlayers returns the number of seats
func (v *viewData) NumPlayers() int { return len(v.info) }

// Options returns the rules of the game
func (v *viewData) Options() Options { return v.board.opts }

// Board returns the public board
func (v *viewData) Board() *Board {
	v.live()
	return v.board
}

func (v *viewData) Hand(player int) []deck.Card {
	v.live()
	if player == v.viewer {
		panic("game: a player's own cards are hidden")
	}
	return slices.Clone(v.cards[player])
}

func (v *viewData) HandSize(player int) int {
	v.live()
	return len(v.info[player])
}

func (v *viewData) Knowledge(player int) []Knowledge {
	v.live()
	return slices.Clone(v.info[player])
}

func (v *viewData) OwnKnowledge() []Knowledge {
	return v.Knowledge(v.viewer)
}

func (v *viewData) Matches(target int, h Hint) []int {
	var slots []int
	for slot, c := range v.Hand(target) {
		if h.Matches(c) {
			slots = append(slots, slot)
		}
	}
	return slots
}

func (v *viewData) Unseen() deck.Counts {
	v.live()
	unseen := deck.FullCounts()
	played := v.board.piles.Played()
	for i := range deck.NumCards {
		for range played[i] {
			unseen.Remove(deck.CardAt(i))
		}
	}
	for _, c := range v.board.discards {
		unseen.Remove(c)
	}
	for p, hand := range v.cards {
		if p == v.viewer {
			continue
		}
		for _, c := range hand {
			unseen.Remove(c)
		}
	}
	return unseen
}

// Belief returns the identities the viewer's slot may still hold: its public
// knowledge, any private narrowing, and only cards with unseen copies.
func (v *viewData) Belief(slot int) deck.Set {
	v.live()
	unseen := v.Unseen()
	belief := v.info[v.viewer][slot].Possible().And(unseen.Present())
	if v.scratch != nil {
		belief = belief.And(v.scratch[slot])
	}
	return belief
}

// Weights returns each candidate for slot weighted by its unseen copies
func (v *viewData) Weights(slot int) []Weighted {
	unseen := v.Unseen()
	belief := v.Belief(slot)
	out := make([]Weighted, 0, belief.Len())
	for _, c := range belief.Cards() {
		out = append(out, Weighted{Card: c, Weight: unseen.Get(c)})
	}
	return out
}

// LegalActions enumerates the viewer's legal actions in a fixed order:
// plays, discards, then hints by seat offset and hint index.
func (v *viewData) LegalActions() []Action {
	v.live()
	if v.board.Over() {
		return nil
	}
	size := len(v.info[v.viewer])
	actions := make([]Action, 0, 2*size)
	for slot := range size {
		actions = append(actions, Play(slot))
	}
	for slot := range size {
		actions = append(actions, Discard(slot))
	}
	if v.board.hints == 0 {
		return actions
	}
	n := v.NumPlayers()
	for off := 1; off < n; off++ {
		target := (v.viewer + off) % n
		for _, h := range AllHints() {
			if v.board.opts.AllowEmptyHints || v.matchCount(target, h) > 0 {
				actions = append(actions, Give(target, h))
			}
		}
	}
	return actions
}

// IsLegal reports why a would be rejected if the viewer took it
func (v *viewData) IsLegal(a Action) error {
	v.live()
	handSize := func(p int) int { return len(v.info[p]) }
	return checkAction(v.board, v.viewer, handSize, v.matchCount, a)
}

func (v *viewData) matchCount(target int, h Hint) int {
	if target == v.viewer {
		return 0
	}
	n := 0
	for _, c := range v.cards[target] {
		if h.Matches(c) {
			n++
		}
	}
	return n
}

func (v *viewData) clone() viewData {
	c := viewData{
		viewer: v.viewer,
		board:  v.board.clone(),
		cards:  make([][]deck.Card, len(v.cards)),
		info:   make([][]Knowledge, len(v.info)),
	}
	for p := range v.info {
		if p != v.viewer {
			c.cards[p] = slices.Clone(v.cards[p])
		}
		c.info[p] = slices.Clone(v.info[p])
	}
	if v.scratch != nil {
		c.scratch = slices.Clone(v.scratch)
	} else {
		c.scratch = make([]deck.Set, len(v.info[v.viewer]))
		for i := range c.scratch {
			c.scratch[i] = deck.FullSet
		}
	}
	return c
}

// Snapshot detaches a deep copy of the view. The copy applies the same
// restriction: the viewer's cards are not part of it.
func (v *BorrowedView) Snapshot() *OwnedView {
	v.live()
	return &OwnedView{v.clone()}
}

// Clone returns an independent copy of the owned view
func (o *OwnedView) Clone() *OwnedView {
	return &OwnedView{o.clone()}
}

// Narrow restricts the private belief about the viewer's slot to allowed
func (o *OwnedView) Narrow(slot int, allowed deck.Set) {
	o.scratch[slot] = o.scratch[slot].And(allowed)
}

// Beliefs returns Belief for every own slot
func (o *OwnedView) Beliefs() []deck.Set {
	out := make([]deck.Set, len(o.scratch))
	for slot := range out {
		out[slot] = o.Belief(slot)
	}
	return out
}
