package storage

import (
	"context"
	"errors"
	"testing"
)

func TestUnavailable(t *testing.T) {
	if err := Unavailable("get", nil); err != nil {
		t.Errorf("Unavailable(nil) = %v, want nil", err)
	}

	err := Unavailable("set vote", context.DeadlineExceeded)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("errors.Is(%v, ErrUnavailable) = false", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("cause lost: %v", err)
	}
	if got, want := err.Error(), "storage unavailable: set vote: context deadline exceeded"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
