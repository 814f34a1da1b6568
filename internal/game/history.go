package game

import (
	"slices"

	"github.com/lox/hanabi/internal/deck"
)

// Record is one entry of the public history: who acted, what they did and
// what everyone observed as a result.
type Record struct {
	Turn   int
	Player int
	Action Action

	// Card is the card revealed by a play or discard
	Card deck.Card
	// Success is true when a play landed on its firework
	Success bool
	// Matched lists the target's slots the hint applied to
	Matched []int
	// Drew is true when the acting player drew a replacement card
	Drew bool

	// Token counts after the action
	Hints int
	Fuses int
}

func (r Record) clone() Record {
	r.Matched = slices.Clone(r.Matched)
	return r
}

// History is the append-only public record of a game
type History struct {
	records []Record
}

// Len returns the number of records
func (h *History) Len() int { return len(h.records) }

// At returns the i-th record
func (h *History) At(i int) Record { return h.records[i].clone() }

// Last returns the most recent record, if any
func (h *History) Last() (Record, bool) {
	if len(h.records) == 0 {
		return Record{}, false
	}
	return h.At(len(h.records) - 1), true
}

// Records returns a copy of every record
func (h *History) Records() []Record {
	out := make([]Record, len(h.records))
	for i, r := range h.records {
		out[i] = r.clone()
	}
	return out
}

// Actions returns the action sequence, mainly for replay comparisons
func (h *History) Actions() []Action {
	out := make([]Action, len(h.records))
	for i, r := range h.records {
		out[i] = r.Action
	}
	return out
}

func (h *History) append(r Record) {
	h.records = append(h.records, r)
}
