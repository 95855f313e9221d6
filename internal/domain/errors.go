package domain

import (
	"errors"
	"fmt"
)

// ErrAlreadyCancelled marks a cancel on a booking that is no longer confirmed.
var ErrAlreadyCancelled = errors.New("booking is already cancelled")

var ErrUnauthorized = errors.New("invalid credentials")

type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// AvailabilityError carries the seat count observed when the reservation failed.
type AvailabilityError struct {
	Requested int
	Remaining int
}

func (e AvailabilityError) Error() string {
	return fmt.Sprintf("only %d seats available, %d requested", e.Remaining, e.Requested)
}

type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return e.Resource + " not found"
}

type ForbiddenError struct{}

func (ForbiddenError) Error() string { return "access denied" }

type ConflictError struct {
	Resource string
	Msg      string
}

func (e ConflictError) Error() string {
	if e.Msg == "" {
		return e.Resource + " already exists"
	}
	return fmt.Sprintf("%s: %s", e.Resource, e.Msg)
}

// InfrastructureError wraps storage and transport failures so callers can
// tell them apart from domain outcomes.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e InfrastructureError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsAvailability(err error) bool {
	var target AvailabilityError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInfrastructure(err error) bool {
	var target InfrastructureError
	return errors.As(err, &target)
}
