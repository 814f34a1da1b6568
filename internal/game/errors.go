package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalAction is wrapped by every rejected action. It signals a
	// strategy bug and ends the game it occurred in.
	ErrIllegalAction = errors.New("illegal action")

	// ErrInvariant is wrapped by internal consistency failures such as a
	// broken card count or a belief that contradicts the true card.
	ErrInvariant = errors.New("invariant violation")

	// ErrInvalidOptions is returned when a game cannot be constructed.
	ErrInvalidOptions = errors.New("invalid game options")
)

// IllegalActionError describes an action the engine refused to apply.
type IllegalActionError struct {
	Player int
	Turn   int
	Action Action
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action by player %d on turn %d (%s): %s", e.Player, e.Turn, e.Action, e.Reason)
}

func (e *IllegalActionError) Unwrap() error { return ErrIllegalAction }

// InvariantError reports an unrecoverable internal fault.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "invariant violation: " + e.Reason
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }

// Invariantf panics with an *InvariantError. Callers use it where a broken
// invariant means continuing would produce meaningless results.
func Invariantf(format string, args ...any) {
	panic(&InvariantError{Reason: fmt.Sprintf(format, args...)})
}
