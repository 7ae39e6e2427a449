package domain

import (
	"errors"
	"fmt"
)

// Error kinds reported to callers.
const (
	KindValidation           = "VALIDATION"
	KindUniqueConstraint     = "UNIQUE_CONSTRAINT"
	KindReferentialIntegrity = "REFERENTIAL_INTEGRITY"
	KindAlreadyRegistered    = "ALREADY_REGISTERED"
	KindNotRegistered        = "NOT_REGISTERED"
	KindCapacityExceeded     = "CAPACITY_EXCEEDED"
	KindNotFound             = "NOT_FOUND"
	KindInternal             = "INTERNAL"
)

type NotFoundError struct {
	Resource string
	ID       int64
	Err      error
}

func (e NotFoundError) Error() string {
	switch {
	case e.Resource == "":
		return "not found"
	case e.ID > 0:
		return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
	default:
		return fmt.Sprintf("%s not found", e.Resource)
	}
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// UniqueConstraintError reports a duplicate value on a unique field.
type UniqueConstraintError struct {
	Resource string
	Field    string
	Err      error
}

func (e UniqueConstraintError) Error() string {
	switch {
	case e.Resource != "" && e.Field != "":
		return fmt.Sprintf("%s with this %s already exists", e.Resource, e.Field)
	case e.Resource != "":
		return fmt.Sprintf("duplicate %s", e.Resource)
	default:
		return "duplicate value"
	}
}

func (e UniqueConstraintError) Unwrap() error { return e.Err }

// ReferentialIntegrityError covers protected deletes and missing parents.
type ReferentialIntegrityError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ReferentialIntegrityError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s is referenced by other records", e.Resource)
	default:
		return "referential integrity violation"
	}
}

func (e ReferentialIntegrityError) Unwrap() error { return e.Err }

type AlreadyRegisteredError struct {
	TripID      int64
	PassengerID int64
}

func (e AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("passenger %d is already registered on trip %d", e.PassengerID, e.TripID)
}

type NotRegisteredError struct {
	TripID      int64
	PassengerID int64
}

func (e NotRegisteredError) Error() string {
	return fmt.Sprintf("passenger %d is not registered on trip %d", e.PassengerID, e.TripID)
}

type CapacityExceededError struct {
	TripID    int64
	Capacity  int
	Confirmed int
}

func (e CapacityExceededError) Error() string {
	return fmt.Sprintf("trip %d is full: %d of %d seats taken", e.TripID, e.Confirmed, e.Capacity)
}

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsUniqueConstraint(err error) bool {
	var target UniqueConstraintError
	return errors.As(err, &target)
}

func IsReferentialIntegrity(err error) bool {
	var target ReferentialIntegrityError
	return errors.As(err, &target)
}

func IsAlreadyRegistered(err error) bool {
	var target AlreadyRegisteredError
	return errors.As(err, &target)
}

func IsNotRegistered(err error) bool {
	var target NotRegisteredError
	return errors.As(err, &target)
}

func IsCapacityExceeded(err error) bool {
	var target CapacityExceededError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// IsDomain reports whether err already carries one of the kinds above.
func IsDomain(err error) bool {
	return KindOf(err) != KindInternal || IsInternal(err)
}

// KindOf returns the stable kind string for err. Unknown errors are INTERNAL.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case IsValidation(err):
		return KindValidation
	case IsUniqueConstraint(err):
		return KindUniqueConstraint
	case IsReferentialIntegrity(err):
		return KindReferentialIntegrity
	case IsAlreadyRegistered(err):
		return KindAlreadyRegistered
	case IsNotRegistered(err):
		return KindNotRegistered
	case IsCapacityExceeded(err):
		return KindCapacityExceeded
	case IsNotFound(err):
		return KindNotFound
	default:
		return KindInternal
	}
}
