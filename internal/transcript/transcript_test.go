package transcript

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/hanabi/internal/deck"
	"github.com/lox/hanabi/internal/game"
	"github.com/lox/hanabi/internal/simulator"
	"github.com/lox/hanabi/internal/strategy/random"
)

func newPrinter(level log.Level) (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: level})
	return New(logger, lipgloss.NewRenderer(&buf)), &buf
}

func TestDescribesEveryActionKind(t *testing.T) {
	p, buf := newPrinter(log.InfoLevel)

	// canonical order: player 0 holds r1 r1 r1 r2 r2, player 1 r3 r3 r4 r4 r5
	state, err := game.New(0, game.DefaultOptions(2), game.WithDeck(deck.Standard()))
	require.NoError(t, err)
	p.OnStart(state)

	for _, a := range []game.Action{
		game.Play(0),
		game.Play(0),
		game.Discard(4),
		game.HintSuit(0, deck.Red),
	} {
		rec, err := state.Apply(a)
		require.NoError(t, err)
		p.OnRecord(state, rec)
	}

	out := buf.String()
	assert.Contains(t, out, "Game started")
	assert.Contains(t, out, "Played r1 from slot 0")
	assert.Contains(t, out, "Misplayed r3 from slot 0")
	assert.Contains(t, out, "Discarded y1 from slot 4")
	assert.Contains(t, out, "Told player 0 about red in slots [0 1 2 3]")
	assert.Contains(t, out, "fuses=2")
	assert.NotContains(t, out, "Hand")
}

func TestDebugShowsHandsWithKnowledge(t *testing.T) {
	p, buf := newPrinter(log.DebugLevel)

	state, err := game.New(0, game.DefaultOptions(2), game.WithDeck(deck.Standard()))
	require.NoError(t, err)
	p.OnStart(state)
	rec, err := state.Apply(game.HintRank(1, deck.Four))
	require.NoError(t, err)
	p.OnRecord(state, rec)

	out := buf.String()
	assert.Contains(t, out, "r1[rygbw 12345]")
	assert.Contains(t, out, "r3[rygbw 1235]")
	assert.Contains(t, out, "r4[rygbw 4]")
}

func TestOneLinePerTurn(t *testing.T) {
	p, buf := newPrinter(log.InfoLevel)

	res, err := simulator.RunGame(3, game.DefaultOptions(3), &random.Factory{}, p)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, res.Turns+2)
	assert.Contains(t, lines[0], "Game started")
	assert.Contains(t, lines[len(lines)-1], "Game over")
	assert.Contains(t, lines[len(lines)-1], res.Status.String())
}
