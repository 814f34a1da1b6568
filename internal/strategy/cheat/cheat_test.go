package cheat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/hanabi/internal/game"
	"github.com/lox/hanabi/internal/simulator"
	"github.com/lox/hanabi/internal/strategy"
	"github.com/lox/hanabi/internal/strategy/cheat"
)

func TestFactoryIsMarkedCheating(t *testing.T) {
	assert.True(t, strategy.IsCheating(cheat.Factory{}))
	assert.Equal(t, "cheat", cheat.Factory{}.Name())
}

func TestTwoPlayerSeedZero(t *testing.T) {
	res, err := simulator.RunGame(0, game.DefaultOptions(2), cheat.Factory{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Score, 20)
}

func TestCheatScoresHighAcrossPlayerCounts(t *testing.T) {
	for players := game.MinPlayers; players <= game.MaxPlayers; players++ {
		total := 0
		for seed := range int64(20) {
			res, err := simulator.RunGame(seed, game.DefaultOptions(players), cheat.Factory{})
			require.NoError(t, err, "players %d seed %d", players, seed)
			assert.NotEqual(t, game.InProgress, res.Status)
			total += res.Score
		}
		assert.GreaterOrEqual(t, float64(total)/20, 15.0, "players %d", players)
	}
}

func TestPlayersShareOneTable(t *testing.T) {
	state, err := game.New(4, game.DefaultOptions(3))
	require.NoError(t, err)

	players := cheat.Factory{}.NewGame(state.Options(), 4)
	for seat, p := range players {
		p.Start(state.Borrow(seat))
	}

	// player 0 only knows its hand through what seats 1 and 2 recorded
	action := players[0].Decide(state.Borrow(0), state.History())
	require.NoError(t, state.Borrow(0).IsLegal(action))
	if action.Kind == game.PlayAction {
		assert.True(t, state.Board().Playable(state.Hand(0)[action.Slot]))
	}
}
