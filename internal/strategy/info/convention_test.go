package info

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/hanabi/internal/deck"
	"github.com/lox/hanabi/internal/game"
)

func ranks(r deck.Rank) deck.Set { return deck.Product(deck.AllSuits, deck.RankSetOf(r)) }

func TestInterpretFocusesNewestUntouchedSlot(t *testing.T) {
	pub := NewPublic(game.DefaultOptions(2))

	r := pub.Interpret(1, game.RankOf(deck.One), []int{0, 2})
	assert.Equal(t, 2, r.Focus)
	assert.Equal(t, PlayNow, r.Rec)
	assert.Equal(t, ranks(deck.One), r.Allowed)

	pub.Hands[1][2].Touched = true
	r = pub.Interpret(1, game.RankOf(deck.One), []int{0, 2})
	assert.Equal(t, 0, r.Focus)
}

func TestInterpretFallsBackToAmbiguousSlot(t *testing.T) {
	pub := NewPublic(game.DefaultOptions(2))
	for slot := range pub.Hands[1] {
		pub.Hands[1][slot].Touched = true
	}
	// slot 3 is already known to be the red two, slot 1 is not
	pub.Hands[1][3].Knowledge.Apply(game.SuitOf(deck.Red), true)
	pub.Hands[1][3].Knowledge.Apply(game.RankOf(deck.Two), true)

	r := pub.Interpret(1, game.RankOf(deck.Two), []int{1, 3})
	assert.Equal(t, 1, r.Focus)

	pub.Hands[1][1].Knowledge.Apply(game.SuitOf(deck.Blue), true)
	pub.Hands[1][1].Allowed = deck.SetOf(deck.NewCard(deck.Blue, deck.Two))
	r = pub.Interpret(1, game.RankOf(deck.Two), []int{1, 3})
	assert.Equal(t, 3, r.Focus)
}

func TestInterpretRecommendations(t *testing.T) {
	pub := NewPublic(game.DefaultOptions(2))

	// nothing is playable among fives at the start, so a five hint saves
	r := pub.Interpret(1, game.RankOf(deck.Five), []int{4})
	assert.Equal(t, Keep, r.Rec)
	assert.Equal(t, ranks(deck.Five), r.Allowed)

	// a colour hint on a fresh slot says the playable card of that colour
	r = pub.Interpret(1, game.SuitOf(deck.Green), []int{3})
	assert.Equal(t, PlayNow, r.Rec)
	assert.Equal(t, deck.SetOf(deck.NewCard(deck.Green, deck.One)), r.Allowed)

	// with every one played, a one hint marks trash
	for _, s := range deck.Suits {
		pub.Piles.Play(deck.NewCard(s, deck.One))
	}
	r = pub.Interpret(1, game.RankOf(deck.One), []int{0, 1})
	assert.Equal(t, Trash, r.Rec)
	assert.Equal(t, ranks(deck.One), r.Allowed)

	// keep excludes cards that can no longer score
	pub.Piles.Discard(deck.NewCard(deck.Red, deck.Three))
	pub.Piles.Discard(deck.NewCard(deck.Red, deck.Three))
	r = pub.Interpret(1, game.RankOf(deck.Four), []int{2})
	assert.Equal(t, Keep, r.Rec)
	assert.False(t, r.Allowed.Has(deck.NewCard(deck.Red, deck.Four)))
	assert.True(t, r.Allowed.Has(deck.NewCard(deck.Blue, deck.Four)))
}

func TestInterpretEmptyHint(t *testing.T) {
	pub := NewPublic(game.DefaultOptions(2))
	r := pub.Interpret(1, game.SuitOf(deck.White), nil)
	assert.Equal(t, -1, r.Focus)
	assert.Equal(t, None, r.Rec)
}

func TestObserveAppliesHintAndMoves(t *testing.T) {
	pub := NewPublic(game.DefaultOptions(2))
	assert.Equal(t, 40, pub.DeckSize)
	assert.Equal(t, 0, pub.Chop(1))

	pub.Observe(game.Record{
		Turn:    0,
		Player:  0,
		Action:  game.HintRank(1, deck.One),
		Matched: []int{0, 3},
	})
	hand := pub.Hands[1]
	assert.True(t, hand[0].Touched)
	assert.True(t, hand[3].Touched)
	assert.False(t, hand[1].Touched)
	assert.Equal(t, PlayNow, hand[3].Rec)
	assert.Equal(t, None, hand[0].Rec)
	assert.False(t, hand[1].Knowledge.Ranks.Has(deck.One))
	assert.Equal(t, 1, pub.Chop(1))
	assert.True(t, pub.KnownPlayable(1, 3))
	assert.True(t, pub.KnownPlayable(1, 0))

	pub.Observe(game.Record{
		Turn:    1,
		Player:  1,
		Action:  game.Play(3),
		Card:    deck.NewCard(deck.Yellow, deck.One),
		Success: true,
		Drew:    true,
	})
	assert.Equal(t, 1, pub.Piles.Height(deck.Yellow))
	assert.Len(t, pub.Hands[1], 5)
	assert.False(t, pub.Hands[1][4].Touched)
	assert.Equal(t, deck.FullSet, pub.Hands[1][4].Allowed)
	assert.Equal(t, 39, pub.DeckSize)
}

func TestObservePanicsOnContradiction(t *testing.T) {
	pub := NewPublic(game.DefaultOptions(2))
	pub.Observe(game.Record{Player: 0, Action: game.HintRank(1, deck.One), Matched: []int{4}})

	assert.PanicsWithError(t, "invariant violation: player 1 slot 4 revealed r3 outside its public belief {r1 y1 g1 b1 w1}", func() {
		pub.Observe(game.Record{
			Turn:   1,
			Player: 1,
			Action: game.Discard(4),
			Card:   deck.NewCard(deck.Red, deck.Three),
		})
	})
}

func TestCloneIsIndependent(t *testing.T) {
	pub := NewPublic(game.DefaultOptions(3))
	c := pub.Clone()
	c.Hands[2][0].Touched = true
	c.Piles.Play(deck.NewCard(deck.Red, deck.One))

	assert.False(t, pub.Hands[2][0].Touched)
	assert.Equal(t, 0, pub.Piles.Height(deck.Red))
}
