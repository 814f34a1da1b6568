package simulator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/hanabi/internal/game"
	"github.com/lox/hanabi/internal/statistics"
	"github.com/lox/hanabi/internal/strategy"
	"github.com/lox/hanabi/internal/strategy/random"
)

// scripted is a test strategy whose every seat decides with the same function
type scripted struct {
	name   string
	decide func(seed int64, view *game.BorrowedView) game.Action
}

func (s scripted) Name() string { return s.name }

func (s scripted) NewGame(opts game.Options, seed int64) []strategy.Player {
	players := make([]strategy.Player, opts.Players)
	for i := range players {
		players[i] = scriptedPlayer{seed: seed, decide: s.decide}
	}
	return players
}

type scriptedPlayer struct {
	seed   int64
	decide func(seed int64, view *game.BorrowedView) game.Action
}

func (p scriptedPlayer) Start(*game.BorrowedView)                {}
func (p scriptedPlayer) Observe(*game.BorrowedView, game.Record) {}
func (p scriptedPlayer) Decide(view *game.BorrowedView, _ *game.History) game.Action {
	return p.decide(p.seed, view)
}

var discarder = scripted{name: "discard", decide: func(int64, *game.BorrowedView) game.Action {
	return game.Discard(0)
}}

// illegalOnEven plays an impossible slot on even seeds
var illegalOnEven = scripted{name: "illegal", decide: func(seed int64, _ *game.BorrowedView) game.Action {
	if seed%2 == 0 {
		return game.Play(99)
	}
	return game.Discard(0)
}}

var panicker = scripted{name: "panic", decide: func(int64, *game.BorrowedView) game.Action {
	panic("boom")
}}

type recorder struct {
	starts, records, ends int
	last                  GameResult
}

func (r *recorder) OnStart(*game.State)               { r.starts++ }
func (r *recorder) OnRecord(*game.State, game.Record) { r.records++ }
func (r *recorder) OnEnd(res GameResult)              { r.ends++; r.last = res }

func TestRunGameIsDeterministic(t *testing.T) {
	t.Parallel()

	opts := game.DefaultOptions(3)
	a, err := RunGame(11, opts, &random.Factory{})
	require.NoError(t, err)
	b, err := RunGame(11, opts, &random.Factory{})
	require.NoError(t, err)

	assert.Equal(t, int64(11), a.Seed)
	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Status, b.Status)
	assert.Equal(t, a.History.Actions(), b.History.Actions())
	assert.NotEqual(t, game.InProgress, a.Status)
}

func TestPlayGameNotifiesObservers(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	res, err := RunGame(1, game.DefaultOptions(2), discarder, rec)
	require.NoError(t, err)

	assert.Equal(t, 1, rec.starts)
	assert.Equal(t, 1, rec.ends)
	assert.Equal(t, res.Turns, rec.records)
	assert.Equal(t, res.Score, rec.last.Score)
	assert.Equal(t, game.Exhausted, res.Status)
	assert.Equal(t, 0, res.Score)
}

func TestPlayGameRejectsWrongPlayerCount(t *testing.T) {
	t.Parallel()

	state, err := game.New(0, game.DefaultOptions(3))
	require.NoError(t, err)

	_, err = PlayGame(state, discarder.NewGame(game.DefaultOptions(2), 0))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestIllegalActionEndsGame(t *testing.T) {
	t.Parallel()

	res, err := RunGame(2, game.DefaultOptions(2), illegalOnEven)
	require.Error(t, err)
	assert.ErrorIs(t, err, game.ErrIllegalAction)

	var illegal *game.IllegalActionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, 0, illegal.Player)
	assert.Equal(t, 0, res.Turns)
	assert.Equal(t, int64(2), res.Seed)
}

func TestStrategyPanicBecomesInvariantError(t *testing.T) {
	t.Parallel()

	_, err := RunGame(0, game.DefaultOptions(2), panicker)
	require.Error(t, err)
	assert.ErrorIs(t, err, game.ErrInvariant)
	assert.Contains(t, err.Error(), "boom")
}

func TestRunBatchMatchesSequential(t *testing.T) {
	t.Parallel()

	opts := game.DefaultOptions(2)
	factory := &random.Factory{}

	sequential := statistics.NewTally(0)
	for seed := int64(100); seed < 140; seed++ {
		res, err := RunGame(seed, opts, factory)
		require.NoError(t, err)
		sequential.Add(res.Score)
	}

	report, err := RunBatch(context.Background(), BatchConfig{
		Factory:   factory,
		Options:   opts,
		SeedStart: 100,
		Seeds:     40,
		Threads:   4,
	})
	require.NoError(t, err)

	assert.Equal(t, "random", report.Strategy)
	assert.False(t, report.Cheating)
	assert.False(t, report.Stopped)
	assert.Equal(t, 40, report.Games())
	assert.Equal(t, sequential.Histogram, report.Tally.Histogram)
	assert.InDelta(t, sequential.Mean(), report.Tally.Mean(), 1e-9)
	assert.InDelta(t, sequential.Scores.Variance(), report.Tally.Scores.Variance(), 1e-9)
}

func TestRunBatchRecordsFailures(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var calls int
	report, err := RunBatch(context.Background(), BatchConfig{
		Factory: illegalOnEven,
		Options: game.DefaultOptions(2),
		Seeds:   10,
		Threads: 3,
		OnResult: func(GameResult, error) {
			mu.Lock()
			calls++
			mu.Unlock()
		},
	})
	require.NoError(t, err)

	require.Len(t, report.Failures, 5)
	for i, f := range report.Failures {
		assert.Equal(t, int64(2*i), f.Seed)
		assert.ErrorIs(t, f.Err, game.ErrIllegalAction)
	}
	assert.Equal(t, 5, report.Tally.Games())
	assert.Equal(t, 5, report.Tally.Failures)
	assert.Equal(t, 10, report.Games())
	assert.Equal(t, 10, calls)
	assert.Equal(t, 0.0, report.Tally.Mean())
}

func TestRunBatchAbortsOnInvariantViolation(t *testing.T) {
	t.Parallel()

	report, err := RunBatch(context.Background(), BatchConfig{
		Factory: panicker,
		Options: game.DefaultOptions(2),
		Seeds:   20,
		Threads: 2,
	})
	assert.Nil(t, report)
	assert.ErrorIs(t, err, game.ErrInvariant)
}

func TestRunBatchStopsAtBudget(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := quartz.NewMock(t)

	report, err := RunBatch(ctx, BatchConfig{
		Factory: discarder,
		Options: game.DefaultOptions(2),
		Seeds:   100,
		Threads: 1,
		Budget:  5 * time.Second,
		Clock:   clock,
		OnResult: func(GameResult, error) {
			clock.Advance(time.Second).MustWait(ctx)
		},
	})
	require.NoError(t, err)

	assert.True(t, report.Stopped)
	assert.Equal(t, 5, report.Games())
	assert.Equal(t, 5*time.Second, report.Elapsed)
}

func TestRunBatchStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := RunBatch(ctx, BatchConfig{
		Factory: discarder,
		Options: game.DefaultOptions(2),
		Seeds:   100,
		Threads: 2,
	})
	require.NoError(t, err)
	assert.True(t, report.Stopped)
	assert.Equal(t, 0, report.Games())
}

func TestBatchConfigValidation(t *testing.T) {
	t.Parallel()

	valid := BatchConfig{Factory: discarder, Options: game.DefaultOptions(2), Seeds: 1, Threads: 1}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*BatchConfig)
	}{
		{"no factory", func(c *BatchConfig) { c.Factory = nil }},
		{"one player", func(c *BatchConfig) { c.Options = game.DefaultOptions(1) }},
		{"six players", func(c *BatchConfig) { c.Options = game.DefaultOptions(6) }},
		{"zero seeds", func(c *BatchConfig) { c.Seeds = 0 }},
		{"zero threads", func(c *BatchConfig) { c.Threads = 0 }},
		{"win score too high", func(c *BatchConfig) { c.WinScore = 26 }},
		{"negative budget", func(c *BatchConfig) { c.Budget = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			_, err := RunBatch(context.Background(), cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
