package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{Unauthenticated("no token"), KindUnauthenticated},
		{Forbidden("wrong role"), KindForbidden},
		{NotFound("missing"), KindNotFound},
		{Conflict("duplicate"), KindConflict},
		{InvalidState("too late"), KindInvalidState},
		{Validation("bad input"), KindValidation},
		{Internal("boom", errors.New("cause")), KindInternal},
		{errors.New("plain"), KindInternal},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("lookup failed: %w", NotFound("Branch not found"))
	if got := KindOf(err); got != KindNotFound {
		t.Errorf("KindOf(wrapped) = %v, want %v", got, KindNotFound)
	}
	if got := MessageOf(err); got != "Branch not found" {
		t.Errorf("MessageOf(wrapped) = %q", got)
	}
}

func TestMessageOfHidesInternals(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal("failed to query", cause)
	if got := MessageOf(err); got != "Internal server error" {
		t.Errorf("internal cause leaked: %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped cause should still unwrap for logging")
	}

	if got := MessageOf(errors.New("raw driver error")); got != "Internal server error" {
		t.Errorf("unclassified error leaked: %q", got)
	}
}

func TestMessageOfClientKinds(t *testing.T) {
	if got := MessageOf(Conflict("Budget already allocated for this branch and month")); got != "Budget already allocated for this branch and month" {
		t.Errorf("client message mangled: %q", got)
	}
}
