package repositories

import (
	"context"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain/models"
)

type TripPassengerRepository struct {
	DB intdb.DBTX
}

func (r TripPassengerRepository) Exists(ctx context.Context, tripID, passengerID int64) (bool, error) {
	db, err := conn(r.DB)
	if err != nil {
		return false, err
	}
	var n int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trip_passengers WHERE trip_id = ? AND passenger_id = ?`, tripID, passengerID).Scan(&n)
	return n > 0, err
}

// CountDistinct returns the number of distinct passengers on the roster.
func (r TripPassengerRepository) CountDistinct(ctx context.Context, tripID int64) (int, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	var n int
	err = db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT passenger_id) FROM trip_passengers WHERE trip_id = ?`, tripID).Scan(&n)
	return n, err
}

func (r TripPassengerRepository) Create(ctx context.Context, tp models.TripPassenger) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO trip_passengers (trip_id, passenger_id, seat, notes, registered_at)
		VALUES (?, ?, ?, ?, ?)`,
		tp.TripID, tp.PassengerID, intdb.NullIfEmpty(tp.Seat), intdb.NullIfEmpty(tp.Notes), tp.RegisteredAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TripPassengerRepository) Update(ctx context.Context, tripID, passengerID int64, seat, notes string) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `UPDATE trip_passengers SET seat = ?, notes = ? WHERE trip_id = ? AND passenger_id = ?`,
		intdb.NullIfEmpty(seat), intdb.NullIfEmpty(notes), tripID, passengerID)
	return err
}

func (r TripPassengerRepository) Delete(ctx context.Context, tripID, passengerID int64) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM trip_passengers WHERE trip_id = ? AND passenger_id = ?`, tripID, passengerID)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}

func (r TripPassengerRepository) Get(ctx context.Context, tripID, passengerID int64) (models.TripPassenger, error) {
	db, err := conn(r.DB)
	if err != nil {
		return models.TripPassenger{}, err
	}
	var tp models.TripPassenger
	err = db.QueryRowContext(ctx, `
		SELECT tp.id, tp.trip_id, tp.passenger_id, COALESCE(tp.seat,''), COALESCE(tp.notes,''), tp.registered_at,
			p.full_name, p.national_id
		FROM trip_passengers tp
		JOIN passengers p ON p.id = tp.passenger_id
		WHERE tp.trip_id = ? AND tp.passenger_id = ?
		LIMIT 1`, tripID, passengerID).Scan(
		&tp.ID, &tp.TripID, &tp.PassengerID, &tp.Seat, &tp.Notes, &tp.RegisteredAt, &tp.PassengerName, &tp.NationalID)
	return tp, err
}

// ListByTrip returns the roster joined with passenger names, in registration order.
func (r TripPassengerRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.TripPassenger, error) {
	db, err := conn(r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT tp.id, tp.trip_id, tp.passenger_id, COALESCE(tp.seat,''), COALESCE(tp.notes,''), tp.registered_at,
			p.full_name, p.national_id
		FROM trip_passengers tp
		JOIN passengers p ON p.id = tp.passenger_id
		WHERE tp.trip_id = ?
		ORDER BY tp.registered_at ASC, tp.id ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripPassenger{}
	for rows.Next() {
		var tp models.TripPassenger
		if err := rows.Scan(&tp.ID, &tp.TripID, &tp.PassengerID, &tp.Seat, &tp.Notes, &tp.RegisteredAt,
			&tp.PassengerName, &tp.NationalID); err != nil {
			return out, err
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}

// TripIDsByPassenger lists trips whose roster contains passengerID, ascending.
func (r TripPassengerRepository) TripIDsByPassenger(ctx context.Context, passengerID int64) ([]int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT DISTINCT trip_id FROM trip_passengers WHERE passenger_id = ? ORDER BY trip_id ASC`, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return out, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r TripPassengerRepository) DeleteByTrip(ctx context.Context, tripID int64) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `DELETE FROM trip_passengers WHERE trip_id = ?`, tripID)
	return err
}

func (r TripPassengerRepository) DeleteByPassenger(ctx context.Context, passengerID int64) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `DELETE FROM trip_passengers WHERE passenger_id = ?`, passengerID)
	return err
}
