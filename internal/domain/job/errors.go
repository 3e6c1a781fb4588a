package job

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthenticated is returned when an operation needs a session and none was given
	ErrUnauthenticated = errors.New("job: user not authenticated")

	// ErrNotFound is reported by stores when no row matches
	ErrNotFound = errors.New("job: not found")
)

// StoreError wraps a Record Store failure with the operation that issued it
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("job store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// FieldError describes one rejected field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned before any store call when submitted fields are invalid
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "job: validation failed: " + strings.Join(parts, "; ")
}
