package domain

import (
	"errors"
	"fmt"
)

// Sentinels matched through errors.Is by the typed errors below.
var (
	ErrDuplicateEntity   = errors.New("duplicate entity")
	ErrEntityNotFound    = errors.New("entity not found")
	ErrReferenceNotFound = errors.New("reference not found")
	ErrInvalidArgument   = errors.New("invalid argument")
)

// DuplicateEntityError is returned when an operation would store two records
// that are the same entity.
type DuplicateEntityError struct {
	Entity EntityType
}

func (e DuplicateEntityError) Error() string {
	return fmt.Sprintf("duplicate %s", e.Entity)
}

func (e DuplicateEntityError) Is(target error) bool { return target == ErrDuplicateEntity }

// EntityNotFoundError is returned when a replace or remove target is absent.
type EntityNotFoundError struct {
	Entity EntityType
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func (e EntityNotFoundError) Is(target error) bool { return target == ErrEntityNotFound }

// ReferenceNotFoundError is returned when a bid or meeting names a property or
// bidder that does not exist.
type ReferenceNotFoundError struct {
	Entity EntityType
	Target EntityType
	ID     ID
}

func (e ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s references unknown %s %s", e.Entity, e.Target, e.ID)
}

func (e ReferenceNotFoundError) Is(target error) bool { return target == ErrReferenceNotFound }

// InvalidArgumentError reports malformed input rejected before it reaches the
// model.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e InvalidArgumentError) Error() string {
	if e.Field == "" {
		return "invalid argument: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }
