// Package config loads experiment files: HCL descriptions of the grid of
// strategies and player counts a results table is built from.
package config

import (
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/hanabi/internal/game"
	"github.com/lox/hanabi/internal/statistics"
	"github.com/lox/hanabi/internal/strategy/catalog"
)

// DefaultSeeds is the number of games per cell when the file sets none
const DefaultSeeds = 1000

// DefaultPlayers is the player counts an experiment runs when it names none
var DefaultPlayers = []int{2, 3, 4, 5}

// File is the complete experiment file
type File struct {
	Threads     int          `hcl:"threads,optional"`
	SeedStart   int64        `hcl:"seed_start,optional"`
	Seeds       int          `hcl:"seeds,optional"`
	WinScore    int          `hcl:"win_score,optional"`
	Budget      string       `hcl:"budget,optional"`
	Rules       *Rules       `hcl:"rules,block"`
	Experiments []Experiment `hcl:"experiment,block"`
}

// Rules override the standard game options for every experiment. Zero
// values keep the standard rule.
type Rules struct {
	HandSize           int  `hcl:"hand_size,optional"`
	Hints              int  `hcl:"hints,optional"`
	Fuses              int  `hcl:"fuses,optional"`
	AllowEmptyHints    bool `hcl:"allow_empty_hints,optional"`
	ZeroScoreOnFuseOut bool `hcl:"zero_score_on_fuse_out,optional"`
}

// Experiment runs one strategy at several player counts
type Experiment struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"`
	Players  []int  `hcl:"players,optional"`
	Seeds    int    `hcl:"seeds,optional"`
}

// Cell is one (strategy, player count) entry of the grid
type Cell struct {
	Experiment string
	Strategy   string
	Seeds      int
	Options    game.Options
}

// Load reads and decodes an experiment file. Unlike a server config there
// is no sensible default experiment, so a missing file is an error.
func Load(filename string) (*File, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read experiment file: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes an experiment file from src and applies defaults
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var f File
	diags = gohcl.DecodeBody(file.Body, nil, &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	f.applyDefaults()
	return &f, nil
}

func (f *File) applyDefaults() {
	if f.Threads == 0 {
		f.Threads = runtime.NumCPU()
	}
	if f.Seeds == 0 {
		f.Seeds = DefaultSeeds
	}
	if f.WinScore == 0 {
		f.WinScore = statistics.MaxScore
	}
	if f.Rules == nil {
		f.Rules = &Rules{}
	}
	for i := range f.Experiments {
		e := &f.Experiments[i]
		if e.Strategy == "" {
			e.Strategy = e.Name
		}
		e.Strategy = strings.ToLower(e.Strategy)
		if len(e.Players) == 0 {
			e.Players = slices.Clone(DefaultPlayers)
		}
		if e.Seeds == 0 {
			e.Seeds = f.Seeds
		}
	}
}

// Validate checks every experiment can run
func (f *File) Validate() error {
	if f.Threads < 1 {
		return fmt.Errorf("threads must be positive, got %d", f.Threads)
	}
	if f.Seeds < 1 {
		return fmt.Errorf("seeds must be positive, got %d", f.Seeds)
	}
	if f.SeedStart < 0 {
		return fmt.Errorf("seed_start must not be negative, got %d", f.SeedStart)
	}
	if f.WinScore < 1 || f.WinScore > statistics.MaxScore {
		return fmt.Errorf("win_score must be between 1 and %d, got %d", statistics.MaxScore, f.WinScore)
	}
	if _, err := f.BudgetDuration(); err != nil {
		return err
	}
	if len(f.Experiments) == 0 {
		return fmt.Errorf("at least one experiment must be configured")
	}

	names := catalog.Names()
	seen := make(map[string]bool)
	for _, e := range f.Experiments {
		if seen[e.Name] {
			return fmt.Errorf("experiment %s: defined more than once", e.Name)
		}
		seen[e.Name] = true

		if !slices.Contains(names, e.Strategy) {
			return fmt.Errorf("experiment %s: invalid strategy %s (available: %s)", e.Name, e.Strategy, strings.Join(names, ", "))
		}
		if e.Seeds < 1 {
			return fmt.Errorf("experiment %s: seeds must be positive", e.Name)
		}
		for _, n := range e.Players {
			if err := f.Options(n).Validate(); err != nil {
				return fmt.Errorf("experiment %s: %w", e.Name, err)
			}
		}
	}
	return nil
}

// BudgetDuration parses the time budget. An empty budget means none.
func (f *File) BudgetDuration() (time.Duration, error) {
	if f.Budget == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.Budget)
	if err != nil {
		return 0, fmt.Errorf("invalid budget %q: %w", f.Budget, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("budget must not be negative, got %s", d)
	}
	return d, nil
}

// Options returns the game options for a player count with the rule
// overrides applied
func (f *File) Options(players int) game.Options {
	opts := game.DefaultOptions(players)
	if f.Rules == nil {
		return opts
	}
	if f.Rules.HandSize != 0 {
		opts.HandSize = f.Rules.HandSize
	}
	if f.Rules.Hints != 0 {
		opts.Hints = f.Rules.Hints
	}
	if f.Rules.Fuses != 0 {
		opts.Fuses = f.Rules.Fuses
	}
	opts.AllowEmptyHints = f.Rules.AllowEmptyHints
	opts.ZeroScoreOnFuseOut = f.Rules.ZeroScoreOnFuseOut
	return opts
}

// Cells expands the experiments into the grid, in file order
func (f *File) Cells() []Cell {
	var cells []Cell
	for _, e := range f.Experiments {
		for _, n := range e.Players {
			cells = append(cells, Cell{
				Experiment: e.Name,
				Strategy:   e.Strategy,
				Seeds:      e.Seeds,
				Options:    f.Options(n),
			})
		}
	}
	return cells
}
