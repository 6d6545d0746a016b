package view

import (
	"errors"
	"testing"
)

func TestFavoriteToggle_CommitAndRollback(t *testing.T) {
	toggle := NewFavoriteToggle(false)

	optimistic, err := toggle.Begin()
	if err != nil || !optimistic {
		t.Fatalf("expected optimistic true, got %v, %v", optimistic, err)
	}
	if _, err := toggle.Begin(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected second Begin to fail, got %v", err)
	}
	if err := toggle.Rollback(); err != nil {
		t.Fatalf("Rollback returned error: %v", err)
	}
	if toggle.Value() || toggle.State() != StateRolledBack {
		t.Fatalf("expected rolled back to false, got %v in %s", toggle.Value(), toggle.State())
	}

	if _, err := toggle.Begin(); err != nil {
		t.Fatalf("Begin after rollback returned error: %v", err)
	}
	if err := toggle.Commit(true); err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if !toggle.Value() || toggle.State() != StateCommitted {
		t.Fatalf("expected committed true, got %v in %s", toggle.Value(), toggle.State())
	}
}

func TestFavoriteToggle_SettleWithoutBegin(t *testing.T) {
	toggle := NewFavoriteToggle(true)
	if err := toggle.Commit(false); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from Commit, got %v", err)
	}
	if err := toggle.Rollback(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from Rollback, got %v", err)
	}
	if !toggle.Value() {
		t.Fatalf("expected value to stay true")
	}
}
