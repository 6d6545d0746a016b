package view

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("view: invalid favorite transition")

type ToggleState int

const (
	StateIdle ToggleState = iota
	StatePending
	StateCommitted
	StateRolledBack
)

func (s ToggleState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled_back"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// FavoriteToggle is the optimistic favorite flag. Begin flips the shown
// value at once; the backend outcome then commits or restores it. Only one
// toggle may be pending at a time.
type FavoriteToggle struct {
	state    ToggleState
	value    bool
	previous bool
}

func NewFavoriteToggle(initial bool) *FavoriteToggle {
	return &FavoriteToggle{state: StateIdle, value: initial}
}

func (t *FavoriteToggle) State() ToggleState { return t.state }

func (t *FavoriteToggle) Value() bool { return t.value }

// Begin flips the value and returns the optimistic one.
func (t *FavoriteToggle) Begin() (bool, error) {
	if t.state == StatePending {
		return t.value, fmt.Errorf("%w: toggle already pending", ErrInvalidTransition)
	}
	t.previous = t.value
	t.value = !t.value
	t.state = StatePending
	return t.value, nil
}

// Commit settles the pending toggle on the value the backend reports.
func (t *FavoriteToggle) Commit(actual bool) error {
	if t.state != StatePending {
		return fmt.Errorf("%w: commit from %s", ErrInvalidTransition, t.state)
	}
	t.value = actual
	t.state = StateCommitted
	return nil
}

// Rollback restores the value held before Begin.
func (t *FavoriteToggle) Rollback() error {
	if t.state != StatePending {
		return fmt.Errorf("%w: rollback from %s", ErrInvalidTransition, t.state)
	}
	t.value = t.previous
	t.state = StateRolledBack
	return nil
}
