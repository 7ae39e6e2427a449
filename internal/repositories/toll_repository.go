package repositories

import (
	"context"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain/models"
)

const tollColumns = `id, trip_id, location, amount, paid_at, COALESCE(receipt,''), created_at`

type TollRepository struct {
	DB intdb.DBTX
}

func scanToll(s rowScanner) (models.Toll, error) {
	var t models.Toll
	err := s.Scan(&t.ID, &t.TripID, &t.Location, &t.Amount, &t.PaidAt, &t.Receipt, &t.CreatedAt)
	return t, err
}

func (r TollRepository) GetByID(ctx context.Context, tripID, id int64) (models.Toll, error) {
	db, err := conn(r.DB)
	if err != nil {
		return models.Toll{}, err
	}
	return scanToll(db.QueryRowContext(ctx, `SELECT `+tollColumns+` FROM tolls WHERE id = ? AND trip_id = ? LIMIT 1`, id, tripID))
}

func (r TollRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.Toll, error) {
	db, err := conn(r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT `+tollColumns+` FROM tolls WHERE trip_id = ? ORDER BY paid_at ASC, id ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Toll{}
	for rows.Next() {
		t, err := scanToll(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TollRepository) Create(ctx context.Context, t models.Toll) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO tolls (trip_id, location, amount, paid_at, receipt, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.TripID, t.Location, t.Amount, t.PaidAt, intdb.NullIfEmpty(t.Receipt), t.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TollRepository) Delete(ctx context.Context, tripID, id int64) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM tolls WHERE id = ? AND trip_id = ?`, id, tripID)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}

func (r TollRepository) DeleteByTrip(ctx context.Context, tripID int64) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `DELETE FROM tolls WHERE trip_id = ?`, tripID)
	return err
}
