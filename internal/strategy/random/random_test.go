package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/hanabi/internal/game"
)

func playOut(t *testing.T, f *Factory, seed int64, players int) *game.State {
	t.Helper()
	opts := game.DefaultOptions(players)
	state, err := game.New(seed, opts)
	require.NoError(t, err)

	seats := f.NewGame(opts, seed)
	for s, p := range seats {
		p.Start(state.Borrow(s))
	}
	for !state.Over() {
		seat := state.CurrentPlayer()
		a := seats[seat].Decide(state.Borrow(seat), state.History())
		rec, err := state.Apply(a)
		require.NoError(t, err)
		for s, p := range seats {
			p.Observe(state.Borrow(s), rec)
		}
	}
	return state
}

func TestRandomPlayersOnlyTakeLegalActions(t *testing.T) {
	for seed := range int64(30) {
		players := 2 + int(seed)%4
		state := playOut(t, &Factory{}, seed, players)
		assert.NotEqual(t, game.InProgress, state.Board().Status())
	}
}

func TestRandomPlayersAreSeeded(t *testing.T) {
	a := playOut(t, &Factory{}, 9, 3)
	b := playOut(t, &Factory{}, 9, 3)
	assert.Equal(t, a.History().Actions(), b.History().Actions())
}

func TestProbabilitiesShapeActions(t *testing.T) {
	state := playOut(t, NewFactory(1, 0), 5, 2)

	hints := 0
	for _, rec := range state.History().Records() {
		switch rec.Action.Kind {
		case game.HintAction:
			hints++
		case game.PlayAction:
			t.Fatalf("turn %d played with zero play probability", rec.Turn)
		}
	}
	assert.Positive(t, hints)
}
