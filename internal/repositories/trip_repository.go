package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
)

const tripColumns = `id, vehicle_id, driver_id, origin_place_id, destination_place_id, departure_at, estimated_arrival_at,
	actual_arrival_at, status, origin_lat, origin_lng, destination_lat, destination_lng, confirmed_passengers,
	COALESCE(notes,''), created_at, updated_at`

type TripRepository struct {
	DB intdb.DBTX
}

type TripFilter struct {
	Status     string
	VehicleID  int64
	DriverID   int64
	From       *time.Time
	To         *time.Time
	Pagination domain.Pagination
}

func scanTrip(s rowScanner) (models.Trip, error) {
	var (
		t          models.Trip
		actual     sql.NullTime
		status     string
		oLat, oLng sql.NullFloat64
		dLat, dLng sql.NullFloat64
	)
	if err := s.Scan(&t.ID, &t.VehicleID, &t.DriverID, &t.OriginPlaceID, &t.DestinationPlaceID, &t.DepartureAt,
		&t.EstimatedArrivalAt, &actual, &status, &oLat, &oLng, &dLat, &dLng, &t.ConfirmedPassengers,
		&t.Notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return t, err
	}
	t.ActualArrivalAt = intdb.TimePtr(actual)
	t.Status = models.TripStatus(status)
	t.OriginLat = intdb.FloatPtr(oLat)
	t.OriginLng = intdb.FloatPtr(oLng)
	t.DestinationLat = intdb.FloatPtr(dLat)
	t.DestinationLng = intdb.FloatPtr(dLng)
	return t, nil
}

func (r TripRepository) GetByID(ctx context.Context, id int64) (models.Trip, error) {
	db, err := conn(r.DB)
	if err != nil {
		return models.Trip{}, err
	}
	return scanTrip(db.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = ? LIMIT 1`, id))
}

// LockByID reads the trip with a row lock. Only meaningful inside a transaction.
func (r TripRepository) LockByID(ctx context.Context, id int64) (models.Trip, error) {
	db, err := conn(r.DB)
	if err != nil {
		return models.Trip{}, err
	}
	return scanTrip(db.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = ? LIMIT 1 FOR UPDATE`, id))
}

func (r TripRepository) List(ctx context.Context, f TripFilter) ([]models.Trip, error) {
	db, err := conn(r.DB)
	if err != nil {
		return nil, err
	}

	where := []string{"1=1"}
	args := []any{}
	if s := strings.TrimSpace(f.Status); s != "" {
		where = append(where, "status = ?")
		args = append(args, s)
	}
	if f.VehicleID > 0 {
		where = append(where, "vehicle_id = ?")
		args = append(args, f.VehicleID)
	}
	if f.DriverID > 0 {
		where = append(where, "driver_id = ?")
		args = append(args, f.DriverID)
	}
	if f.From != nil {
		where = append(where, "departure_at >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		where = append(where, "departure_at <= ?")
		args = append(args, *f.To)
	}

	query := `SELECT ` + tripColumns + ` FROM trips WHERE ` + strings.Join(where, " AND ") + ` ORDER BY departure_at DESC, id DESC`
	query, args = paginate(query, args, f.Pagination)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) Create(ctx context.Context, t models.Trip) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO trips (vehicle_id, driver_id, origin_place_id, destination_place_id, departure_at, estimated_arrival_at,
			actual_arrival_at, status, origin_lat, origin_lng, destination_lat, destination_lng, confirmed_passengers,
			notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.VehicleID, t.DriverID, t.OriginPlaceID, t.DestinationPlaceID, t.DepartureAt, t.EstimatedArrivalAt,
		intdb.NullTime(t.ActualArrivalAt), string(t.Status),
		intdb.NullFloat(t.OriginLat), intdb.NullFloat(t.OriginLng), intdb.NullFloat(t.DestinationLat), intdb.NullFloat(t.DestinationLng),
		t.ConfirmedPassengers, intdb.NullIfEmpty(t.Notes), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update writes every editable column. confirmed_passengers is owned by the roster.
func (r TripRepository) Update(ctx context.Context, t models.Trip) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		UPDATE trips
		SET vehicle_id = ?, driver_id = ?, origin_place_id = ?, destination_place_id = ?, departure_at = ?,
			estimated_arrival_at = ?, actual_arrival_at = ?, status = ?, origin_lat = ?, origin_lng = ?,
			destination_lat = ?, destination_lng = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		t.VehicleID, t.DriverID, t.OriginPlaceID, t.DestinationPlaceID, t.DepartureAt,
		t.EstimatedArrivalAt, intdb.NullTime(t.ActualArrivalAt), string(t.Status),
		intdb.NullFloat(t.OriginLat), intdb.NullFloat(t.OriginLng), intdb.NullFloat(t.DestinationLat), intdb.NullFloat(t.DestinationLng),
		intdb.NullIfEmpty(t.Notes), t.UpdatedAt, t.ID)
	return err
}

func (r TripRepository) UpdateConfirmedPassengers(ctx context.Context, id int64, n int, at time.Time) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `UPDATE trips SET confirmed_passengers = ?, updated_at = ? WHERE id = ?`, n, at, id)
	return err
}

func (r TripRepository) Delete(ctx context.Context, id int64) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}

func (r TripRepository) count(ctx context.Context, where string, args ...any) (int, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	var n int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips WHERE `+where, args...).Scan(&n)
	return n, err
}

func (r TripRepository) CountByVehicle(ctx context.Context, vehicleID int64) (int, error) {
	return r.count(ctx, "vehicle_id = ?", vehicleID)
}

func (r TripRepository) CountByDriver(ctx context.Context, driverID int64) (int, error) {
	return r.count(ctx, "driver_id = ?", driverID)
}

func (r TripRepository) CountByPlace(ctx context.Context, placeID int64) (int, error) {
	return r.count(ctx, "origin_place_id = ? OR destination_place_id = ?", placeID, placeID)
}
