package domain

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ValidationError{Field: "email"}, KindValidation},
		{UniqueConstraintError{Resource: "driver", Field: "email"}, KindUniqueConstraint},
		{ReferentialIntegrityError{Resource: "vehicle"}, KindReferentialIntegrity},
		{AlreadyRegisteredError{TripID: 1, PassengerID: 2}, KindAlreadyRegistered},
		{NotRegisteredError{TripID: 1, PassengerID: 2}, KindNotRegistered},
		{CapacityExceededError{TripID: 1, Capacity: 40, Confirmed: 40}, KindCapacityExceeded},
		{NotFoundError{Resource: "trip", ID: 9}, KindNotFound},
		{InternalError{Msg: "boom"}, KindInternal},
		{errors.New("plain"), KindInternal},
		{fmt.Errorf("wrapped: %w", NotFoundError{Resource: "trip"}), KindNotFound},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("KindOf(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestIsDomain(t *testing.T) {
	if IsDomain(errors.New("raw driver error")) {
		t.Fatalf("raw errors must not count as domain errors")
	}
	if !IsDomain(InternalError{Msg: "x"}) || !IsDomain(ValidationError{}) {
		t.Fatalf("typed errors must count as domain errors")
	}
}

func TestNotFoundUnwraps(t *testing.T) {
	err := NotFoundError{Resource: "trip", ID: 3, Err: sql.ErrNoRows}
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected NotFoundError to unwrap to sql.ErrNoRows")
	}
	if err.Error() != "trip 3 not found" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
