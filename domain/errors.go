package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your item already exists")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
)

// ValidationError reports blank required fields on a recipe draft.
// It is raised before any I/O and is never retried.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s required", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrBadParamInput
}

// StoreError wraps a transport or decoding failure on the read path.
// The caller treats the affected projection as empty.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// MutationError wraps a like insert or delete failure. Local state is
// left at its pre-toggle value; recovery is a fresh user action.
type MutationError struct {
	Op       string
	RecipeID int64
	Err      error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s recipe %d: %v", e.Op, e.RecipeID, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}
