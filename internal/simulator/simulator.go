// Package simulator drives games between strategies: one game at a time with
// PlayGame and RunGame, or a batch of seeds across worker goroutines with
// RunBatch.
package simulator

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/hanabi/internal/game"
	"github.com/lox/hanabi/internal/statistics"
	"github.com/lox/hanabi/internal/strategy"
)

// ErrInvalidConfig is returned when a batch cannot start
var ErrInvalidConfig = errors.New("invalid batch config")

// Observer watches a game from the driver's side. Unlike a strategy it is
// handed the full state, so transcripts can show every hand.
type Observer interface {
	OnStart(state *game.State)
	OnRecord(state *game.State, rec game.Record)
	OnEnd(result GameResult)
}

// GameResult is the outcome of one game
type GameResult struct {
	Seed    int64
	Players int
	Score   int
	Status  game.Status
	Turns   int
	History *game.History
}

// PlayGame runs state to completion with one player per seat.
//
// An illegal action ends the game with the *game.IllegalActionError. A
// failed state check or a panic inside a strategy is returned as a
// *game.InvariantError, which callers should treat as fatal.
func PlayGame(state *game.State, players []strategy.Player, observers ...Observer) (result GameResult, err error) {
	opts := state.Options()
	result = GameResult{Players: opts.Players, History: state.History()}

	if len(players) != opts.Players {
		return result, fmt.Errorf("%w: %d players for %d seats", ErrInvalidConfig, len(players), opts.Players)
	}

	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
		result.Score = state.Score()
		result.Status = state.Board().Status()
		result.Turns = state.History().Len()
	}()

	for seat, p := range players {
		p.Start(state.Borrow(seat))
	}
	for _, o := range observers {
		o.OnStart(state)
	}

	for !state.Over() {
		seat := state.CurrentPlayer()
		action := players[seat].Decide(state.Borrow(seat), state.History())

		rec, err := state.Apply(action)
		if err != nil {
			return result, err
		}
		if err := state.Validate(); err != nil {
			return result, err
		}

		for q, p := range players {
			p.Observe(state.Borrow(q), rec)
		}
		for _, o := range observers {
			o.OnRecord(state, rec)
		}
	}

	final := GameResult{
		Players: opts.Players,
		Score:   state.Score(),
		Status:  state.Board().Status(),
		Turns:   state.History().Len(),
		History: state.History(),
	}
	for _, o := range observers {
		o.OnEnd(final)
	}
	return final, nil
}

func recovered(r any) error {
	switch v := r.(type) {
	case *game.InvariantError:
		return v
	case error:
		return &game.InvariantError{Reason: "strategy panicked: " + v.Error()}
	default:
		return &game.InvariantError{Reason: fmt.Sprintf("strategy panicked: %v", v)}
	}
}

// RunGame deals a game from seed and plays it with fresh players from
// factory.
func RunGame(seed int64, opts game.Options, factory strategy.Factory, observers ...Observer) (GameResult, error) {
	state, err := game.New(seed, opts)
	if err != nil {
		return GameResult{Seed: seed}, err
	}
	result, err := PlayGame(state, factory.NewGame(opts, seed), observers...)
	result.Seed = seed
	return result, err
}

// BatchConfig describes a run over a contiguous range of seeds
type BatchConfig struct {
	Factory   strategy.Factory
	Options   game.Options
	SeedStart int64
	Seeds     int
	Threads   int

	// WinScore is the score counted as a win; zero means a perfect game
	WinScore int

	// Budget stops claiming new seeds once this much time has passed. Games
	// already running are finished. Zero means no limit.
	Budget time.Duration
	Clock  quartz.Clock

	// OnResult is called after every game, from the worker goroutine that
	// played it, so it must be safe for concurrent use.
	OnResult func(GameResult, error)

	Logger *zerolog.Logger
}

// Validate checks the config before any game starts
func (c *BatchConfig) Validate() error {
	if c.Factory == nil {
		return fmt.Errorf("%w: no strategy", ErrInvalidConfig)
	}
	if err := c.Options.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Seeds <= 0 {
		return fmt.Errorf("%w: seeds must be positive, got %d", ErrInvalidConfig, c.Seeds)
	}
	if c.Threads < 1 {
		return fmt.Errorf("%w: threads must be at least 1, got %d", ErrInvalidConfig, c.Threads)
	}
	if c.WinScore < 0 || c.WinScore > game.MaxScore {
		return fmt.Errorf("%w: win score must be between 0 and %d, got %d", ErrInvalidConfig, game.MaxScore, c.WinScore)
	}
	if c.Budget < 0 {
		return fmt.Errorf("%w: negative budget %s", ErrInvalidConfig, c.Budget)
	}
	return nil
}

// Failure is a seed whose game ended on an illegal action
type Failure struct {
	Seed int64
	Err  error
}

// BatchReport is the merged result of a batch
type BatchReport struct {
	Strategy string
	Players  int
	Cheating bool
	Tally    *statistics.Tally
	Failures []Failure
	Stopped  bool
	Elapsed  time.Duration
}

// Games returns the number of seeds that were played, failed or not
func (r *BatchReport) Games() int {
	return r.Tally.Games() + r.Tally.Failures
}

type worker struct {
	tally    *statistics.Tally
	failures []Failure
}

// RunBatch plays every seed in [SeedStart, SeedStart+Seeds) across Threads
// workers. Workers claim seeds from a shared counter and keep their own
// tallies, which are merged in worker order once all have finished.
//
// Games that end on an illegal action are recorded as failures and the batch
// carries on. An invariant violation stops every worker and is returned.
// Cancelling ctx or exhausting the budget stops the batch early and returns
// what was gathered with Stopped set.
func RunBatch(ctx context.Context, cfg BatchConfig) (*BatchReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	logger.Info().
		Str("strategy", cfg.Factory.Name()).
		Int("players", cfg.Options.Players).
		Int64("seed_start", cfg.SeedStart).
		Int("seeds", cfg.Seeds).
		Int("threads", cfg.Threads).
		Msg("Batch started")

	start := clock.Now()
	var deadline time.Time
	if cfg.Budget > 0 {
		deadline = start.Add(cfg.Budget)
	}

	var (
		next    atomic.Int64
		stopped atomic.Bool
		workers = make([]worker, cfg.Threads)
	)

	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		workers[w].tally = statistics.NewTally(cfg.WinScore)
		g.Go(func() error {
			ws := &workers[w]
			for {
				if gctx.Err() != nil {
					if ctx.Err() != nil {
						stopped.Store(true)
					}
					return nil
				}
				if !deadline.IsZero() && !clock.Now().Before(deadline) {
					stopped.Store(true)
					return nil
				}

				i := next.Add(1) - 1
				if i >= int64(cfg.Seeds) {
					return nil
				}
				seed := cfg.SeedStart + i

				res, err := RunGame(seed, cfg.Options, cfg.Factory)
				switch {
				case err == nil:
					ws.tally.Add(res.Score)
				case errors.Is(err, game.ErrIllegalAction):
					ws.tally.AddFailure()
					ws.failures = append(ws.failures, Failure{Seed: seed, Err: err})
					logger.Warn().Int64("seed", seed).Err(err).Msg("Game failed")
				default:
					return fmt.Errorf("seed %d: %w", seed, err)
				}

				if cfg.OnResult != nil {
					cfg.OnResult(res, err)
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("Batch aborted")
		return nil, err
	}

	report := &BatchReport{
		Strategy: cfg.Factory.Name(),
		Players:  cfg.Options.Players,
		Cheating: strategy.IsCheating(cfg.Factory),
		Tally:    statistics.NewTally(cfg.WinScore),
		Stopped:  stopped.Load(),
		Elapsed:  clock.Since(start),
	}
	for _, w := range workers {
		report.Tally.Merge(w.tally)
		report.Failures = append(report.Failures, w.failures...)
	}
	slices.SortFunc(report.Failures, func(a, b Failure) int {
		return cmp.Compare(a.Seed, b.Seed)
	})

	if err := report.Tally.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	event := logger.Info()
	if report.Stopped {
		event = logger.Warn()
	}
	event.
		Int("games", report.Tally.Games()).
		Int("failures", report.Tally.Failures).
		Float64("mean", report.Tally.Mean()).
		Bool("stopped", report.Stopped).
		Dur("elapsed", report.Elapsed).
		Msg("Batch finished")

	return report, nil
}
