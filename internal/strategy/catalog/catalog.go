// Package catalog maps strategy names to factories for the command line and
// experiment files.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/hanabi/internal/strategy"
	"github.com/lox/hanabi/internal/strategy/cheat"
	"github.com/lox/hanabi/internal/strategy/info"
	"github.com/lox/hanabi/internal/strategy/random"
)

// Entry describes one available strategy
type Entry struct {
	Name        string
	Description string
	Cheating    bool
}

var entries = []Entry{
	{Name: "cheat", Description: "reads its own hand through a shared table; upper bound only", Cheating: true},
	{Name: "random", Description: "random legal moves with fixed hint and play probabilities"},
	{Name: "info", Description: "convention-based hints decoded identically by every player"},
}

// List returns every strategy, fair ones first
func List() []Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		switch {
		case a.Cheating == b.Cheating:
			return 0
		case a.Cheating:
			return 1
		default:
			return -1
		}
	})
	return out
}

// Names returns the strategy names in List order
func Names() []string {
	var names []string
	for _, e := range List() {
		names = append(names, e.Name)
	}
	return names
}

// Lookup returns the factory for name. The logger, which may be nil, is
// handed to strategies that explain their decisions.
func Lookup(name string, logger *log.Logger) (strategy.Factory, error) {
	switch strings.ToLower(name) {
	case "cheat":
		return cheat.Factory{}, nil
	case "random":
		return &random.Factory{}, nil
	case "info":
		return info.NewFactory(logger), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (available: %s)", name, strings.Join(Names(), ", "))
	}
}
