package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/observability"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

// RosterService registers passengers on trips. Every mutation locks the trip
// row first so the capacity check and the recount see a stable roster.
type RosterService struct {
	DB        *sql.DB
	RequestID string
	Now       func() time.Time
}

func (s RosterService) fail(action string, err error) error {
	return finish(s.RequestID, "roster", action, "trip passenger", err)
}

// recount persists confirmed_passengers from the roster and returns it.
func recount(ctx context.Context, tx *sql.Tx, tripID int64, at time.Time) (int, error) {
	n, err := repositories.TripPassengerRepository{DB: tx}.CountDistinct(ctx, tripID)
	if err != nil {
		return 0, err
	}
	if err := (repositories.TripRepository{DB: tx}).UpdateConfirmedPassengers(ctx, tripID, n, at); err != nil {
		return 0, err
	}
	return n, nil
}

func (s RosterService) Add(ctx context.Context, tripID int64, in models.RosterInput) (models.TripPassenger, error) {
	tp := models.TripPassenger{
		TripID:      tripID,
		PassengerID: in.PassengerID,
		Seat:        utils.NormalizeCode(in.Seat),
		Notes:       strings.TrimSpace(in.Notes),
	}
	if err := checkID("passenger_id", in.PassengerID); err != nil {
		return models.TripPassenger{}, s.fail("add", err)
	}

	err := inTx(ctx, s.DB, func(tx *sql.Tx) error {
		trip, err := repositories.TripRepository{DB: tx}.LockByID(ctx, tripID)
		if err != nil {
			return lookup("trip", tripID, err)
		}
		passenger, err := repositories.PassengerRepository{DB: tx}.GetByID(ctx, in.PassengerID)
		if err != nil {
			return lookup("passenger", in.PassengerID, err)
		}

		roster := repositories.TripPassengerRepository{DB: tx}
		registered, err := roster.Exists(ctx, tripID, in.PassengerID)
		if err != nil {
			return err
		}
		if registered {
			return domain.AlreadyRegisteredError{TripID: tripID, PassengerID: in.PassengerID}
		}

		capacity, err := repositories.VehicleRepository{DB: tx}.GetCapacity(ctx, trip.VehicleID)
		if err != nil {
			return err
		}
		confirmed, err := roster.CountDistinct(ctx, tripID)
		if err != nil {
			return err
		}
		if confirmed >= capacity {
			return domain.CapacityExceededError{TripID: tripID, Capacity: capacity, Confirmed: confirmed}
		}

		now := resolveNow(s.Now)
		tp.RegisteredAt = now
		id, err := roster.Create(ctx, tp)
		if err != nil {
			if intdb.IsDuplicateKey(err) {
				return domain.AlreadyRegisteredError{TripID: tripID, PassengerID: in.PassengerID}
			}
			return err
		}
		tp.ID = id
		tp.PassengerName = passenger.FullName
		tp.NationalID = passenger.NationalID
		_, err = recount(ctx, tx, tripID, now)
		return err
	})
	if err != nil {
		return models.TripPassenger{}, s.fail("add", err)
	}
	observability.RosterChangesTotal.WithLabelValues("add").Inc()
	utils.LogEvent(s.RequestID, "roster", "add", fmt.Sprintf("trip_id=%d passenger_id=%d", tripID, in.PassengerID))
	return tp, nil
}

func (s RosterService) Remove(ctx context.Context, tripID, passengerID int64) error {
	err := inTx(ctx, s.DB, func(tx *sql.Tx) error {
		if _, err := (repositories.TripRepository{DB: tx}).LockByID(ctx, tripID); err != nil {
			return lookup("trip", tripID, err)
		}
		n, err := repositories.TripPassengerRepository{DB: tx}.Delete(ctx, tripID, passengerID)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.NotRegisteredError{TripID: tripID, PassengerID: passengerID}
		}
		_, err = recount(ctx, tx, tripID, resolveNow(s.Now))
		return err
	})
	if err != nil {
		return s.fail("remove", err)
	}
	observability.RosterChangesTotal.WithLabelValues("remove").Inc()
	utils.LogEvent(s.RequestID, "roster", "remove", fmt.Sprintf("trip_id=%d passenger_id=%d", tripID, passengerID))
	return nil
}

// Edit changes seat and notes only; the count is untouched.
func (s RosterService) Edit(ctx context.Context, tripID, passengerID int64, in models.RosterInput) (models.TripPassenger, error) {
	var tp models.TripPassenger
	err := inTx(ctx, s.DB, func(tx *sql.Tx) error {
		if _, err := (repositories.TripRepository{DB: tx}).LockByID(ctx, tripID); err != nil {
			return lookup("trip", tripID, err)
		}
		roster := repositories.TripPassengerRepository{DB: tx}
		current, err := roster.Get(ctx, tripID, passengerID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotRegisteredError{TripID: tripID, PassengerID: passengerID}
		}
		if err != nil {
			return err
		}
		current.Seat = utils.NormalizeCode(in.Seat)
		current.Notes = strings.TrimSpace(in.Notes)
		if err := roster.Update(ctx, tripID, passengerID, current.Seat, current.Notes); err != nil {
			return err
		}
		tp = current
		return nil
	})
	if err != nil {
		return models.TripPassenger{}, s.fail("edit", err)
	}
	observability.RosterChangesTotal.WithLabelValues("edit").Inc()
	utils.LogEvent(s.RequestID, "roster", "edit", fmt.Sprintf("trip_id=%d passenger_id=%d", tripID, passengerID))
	return tp, nil
}

func (s RosterService) List(ctx context.Context, tripID int64) ([]models.TripPassenger, error) {
	db, err := resolveDB(s.DB)
	if err != nil {
		return nil, s.fail("list", err)
	}
	ok, err := repositories.Exists(ctx, db, "trips", tripID)
	if err != nil {
		return nil, s.fail("list", err)
	}
	if !ok {
		return nil, s.fail("list", domain.NotFoundError{Resource: "trip", ID: tripID})
	}
	out, err := repositories.TripPassengerRepository{DB: db}.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, s.fail("list", err)
	}
	return out, nil
}
