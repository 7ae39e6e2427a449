package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

// TripService owns the trip ledger. Place coordinates are copied onto the trip
// when a place is set, so later place edits never move saved trips.
type TripService struct {
	DB        *sql.DB
	RequestID string
	Now       func() time.Time
}

func (s TripService) fail(action string, err error) error {
	return finish(s.RequestID, "trips", action, "trip", err)
}

func buildTrip(in models.TripInput) (models.Trip, error) {
	t := models.Trip{
		VehicleID:          in.VehicleID,
		DriverID:           in.DriverID,
		OriginPlaceID:      in.OriginPlaceID,
		DestinationPlaceID: in.DestinationPlaceID,
		Status:             models.TripStatus(strings.ToLower(utils.TrimOrEmpty(in.Status))),
		Notes:              strings.TrimSpace(in.Notes),
	}
	if t.Status == "" {
		t.Status = models.TripScheduled
	}
	if !t.Status.Valid() {
		return t, domain.ValidationError{Field: "status", Msg: "must be one of scheduled, in_progress, completed, cancelled"}
	}
	refs := []struct {
		field string
		id    int64
	}{
		{"vehicle_id", t.VehicleID},
		{"driver_id", t.DriverID},
		{"origin_place_id", t.OriginPlaceID},
		{"destination_place_id", t.DestinationPlaceID},
	}
	for _, ref := range refs {
		if err := checkID(ref.field, ref.id); err != nil {
			return t, err
		}
	}

	departure, err := parseDateTimeField("departure_at", in.DepartureAt)
	if err != nil {
		return t, err
	}
	estimated, err := parseDateTimeField("estimated_arrival_at", in.EstimatedArrivalAt)
	if err != nil {
		return t, err
	}
	if estimated.Before(departure) {
		return t, domain.ValidationError{Field: "estimated_arrival_at", Msg: "must not be before departure_at"}
	}
	actual, err := parseOptionalDateTime("actual_arrival_at", in.ActualArrivalAt)
	if err != nil {
		return t, err
	}
	if actual != nil && actual.Before(departure) {
		return t, domain.ValidationError{Field: "actual_arrival_at", Msg: "must not be before departure_at"}
	}
	t.DepartureAt = departure
	t.EstimatedArrivalAt = estimated
	t.ActualArrivalAt = actual
	return t, nil
}

// placeCoordinates loads a referenced place; a missing place is a broken reference.
func placeCoordinates(ctx context.Context, tx *sql.Tx, field string, id int64) (*float64, *float64, error) {
	p, err := repositories.PlaceRepository{DB: tx}.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, domain.ReferentialIntegrityError{Resource: "trip", Msg: field + " does not exist"}
	}
	if err != nil {
		return nil, nil, err
	}
	return p.Latitude, p.Longitude, nil
}

func checkTripRefs(ctx context.Context, tx *sql.Tx, t models.Trip) error {
	ok, err := repositories.Exists(ctx, tx, "vehicles", t.VehicleID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ReferentialIntegrityError{Resource: "trip", Msg: "vehicle_id does not exist"}
	}
	ok, err = repositories.Exists(ctx, tx, "drivers", t.DriverID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ReferentialIntegrityError{Resource: "trip", Msg: "driver_id does not exist"}
	}
	return nil
}

func (s TripService) Create(ctx context.Context, in models.TripInput) (models.Trip, error) {
	t, err := buildTrip(in)
	if err != nil {
		return models.Trip{}, s.fail("create", err)
	}
	now := resolveNow(s.Now)
	t.CreatedAt, t.UpdatedAt = now, now

	err = inTx(ctx, s.DB, func(tx *sql.Tx) error {
		var err error
		if err = checkTripRefs(ctx, tx, t); err != nil {
			return err
		}
		if t.OriginLat, t.OriginLng, err = placeCoordinates(ctx, tx, "origin_place_id", t.OriginPlaceID); err != nil {
			return err
		}
		if t.DestinationLat, t.DestinationLng, err = placeCoordinates(ctx, tx, "destination_place_id", t.DestinationPlaceID); err != nil {
			return err
		}
		id, err := repositories.TripRepository{DB: tx}.Create(ctx, t)
		t.ID = id
		return err
	})
	if err != nil {
		return models.Trip{}, s.fail("create", err)
	}
	utils.LogEvent(s.RequestID, "trips", "create", fmt.Sprintf("id=%d vehicle_id=%d driver_id=%d", t.ID, t.VehicleID, t.DriverID))
	return t, nil
}

func (s TripService) Get(ctx context.Context, id int64) (models.Trip, error) {
	db, err := resolveDB(s.DB)
	if err != nil {
		return models.Trip{}, s.fail("get", err)
	}
	t, err := repositories.TripRepository{DB: db}.GetByID(ctx, id)
	if err != nil {
		return models.Trip{}, s.fail("get", lookup("trip", id, err))
	}
	return t, nil
}

func (s TripService) List(ctx context.Context, f repositories.TripFilter) ([]models.Trip, error) {
	if f.Status != "" && !models.TripStatus(f.Status).Valid() {
		return nil, s.fail("list", domain.ValidationError{Field: "status", Msg: "unknown trip status"})
	}
	db, err := resolveDB(s.DB)
	if err != nil {
		return nil, s.fail("list", err)
	}
	out, err := repositories.TripRepository{DB: db}.List(ctx, f)
	if err != nil {
		return nil, s.fail("list", err)
	}
	return out, nil
}

// Update re-snapshots coordinates only for places that changed. Moving the trip
// to a smaller vehicle than its roster fails with CAPACITY_EXCEEDED.
func (s TripService) Update(ctx context.Context, id int64, in models.TripInput) (models.Trip, error) {
	t, err := buildTrip(in)
	if err != nil {
		return models.Trip{}, s.fail("update", err)
	}
	t.ID = id

	err = inTx(ctx, s.DB, func(tx *sql.Tx) error {
		trips := repositories.TripRepository{DB: tx}
		existing, err := trips.LockByID(ctx, id)
		if err != nil {
			return lookup("trip", id, err)
		}
		if err := checkTripRefs(ctx, tx, t); err != nil {
			return err
		}

		t.OriginLat, t.OriginLng = existing.OriginLat, existing.OriginLng
		if t.OriginPlaceID != existing.OriginPlaceID {
			if t.OriginLat, t.OriginLng, err = placeCoordinates(ctx, tx, "origin_place_id", t.OriginPlaceID); err != nil {
				return err
			}
		}
		t.DestinationLat, t.DestinationLng = existing.DestinationLat, existing.DestinationLng
		if t.DestinationPlaceID != existing.DestinationPlaceID {
			if t.DestinationLat, t.DestinationLng, err = placeCoordinates(ctx, tx, "destination_place_id", t.DestinationPlaceID); err != nil {
				return err
			}
		}

		t.ConfirmedPassengers = existing.ConfirmedPassengers
		if t.VehicleID != existing.VehicleID {
			capacity, err := repositories.VehicleRepository{DB: tx}.GetCapacity(ctx, t.VehicleID)
			if err != nil {
				return err
			}
			confirmed, err := repositories.TripPassengerRepository{DB: tx}.CountDistinct(ctx, id)
			if err != nil {
				return err
			}
			if confirmed > capacity {
				return domain.CapacityExceededError{TripID: id, Capacity: capacity, Confirmed: confirmed}
			}
		}

		t.CreatedAt = existing.CreatedAt
		t.UpdatedAt = resolveNow(s.Now)
		return trips.Update(ctx, t)
	})
	if err != nil {
		return models.Trip{}, s.fail("update", err)
	}
	utils.LogEvent(s.RequestID, "trips", "update", fmt.Sprintf("id=%d status=%s", id, t.Status))
	return t, nil
}

// Delete removes tolls, the cost sheet and the roster together with the trip.
func (s TripService) Delete(ctx context.Context, id int64) error {
	err := inTx(ctx, s.DB, func(tx *sql.Tx) error {
		trips := repositories.TripRepository{DB: tx}
		if _, err := trips.LockByID(ctx, id); err != nil {
			return lookup("trip", id, err)
		}
		if err := (repositories.TollRepository{DB: tx}).DeleteByTrip(ctx, id); err != nil {
			return err
		}
		if err := (repositories.CostRepository{DB: tx}).DeleteByTrip(ctx, id); err != nil {
			return err
		}
		if err := (repositories.TripPassengerRepository{DB: tx}).DeleteByTrip(ctx, id); err != nil {
			return err
		}
		_, err := trips.Delete(ctx, id)
		return err
	})
	if err != nil {
		return s.fail("delete", err)
	}
	utils.LogEvent(s.RequestID, "trips", "delete", fmt.Sprintf("id=%d", id))
	return nil
}
