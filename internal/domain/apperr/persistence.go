package apperr

import (
	"errors"
	"fmt"
)

// PersistenceError wraps a network or store failure on read or write.
// Callers match it with errors.As; errors.Is still reaches the cause.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err unless it is nil or already a PersistenceError.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*PersistenceError); ok {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// Wrap returns err unchanged when it matches one of the domain errors in
// known, and wraps it as a PersistenceError otherwise.
func Wrap(op string, err error, known ...error) error {
	if err == nil {
		return nil
	}
	for _, k := range known {
		if errors.Is(err, k) {
			return err
		}
	}
	return Persistence(op, err)
}
