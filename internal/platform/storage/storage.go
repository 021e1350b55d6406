// Package storage holds errors shared by the persistence-backed stores.
package storage

import (
	"errors"
	"fmt"
)

// ErrUnavailable reports that the persistence layer could not be reached or
// failed mid-operation. Callers test for it with errors.Is.
var ErrUnavailable = errors.New("storage unavailable")

// Unavailable wraps err as an ErrUnavailable failure of op. It returns nil
// when err is nil.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}
