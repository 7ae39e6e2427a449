package repositories

import (
	"context"
	"strings"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain/models"
)

const vehicleColumns = `id, plate, COALESCE(brand,''), model, manufacture_year, passenger_capacity, chassis_number,
	COALESCE(engine_number,''), status, acquisition_date, created_at, updated_at`

type VehicleRepository struct {
	DB intdb.DBTX
}

func scanVehicle(s rowScanner) (models.Vehicle, error) {
	var (
		v      models.Vehicle
		status string
	)
	err := s.Scan(&v.ID, &v.Plate, &v.Brand, &v.Model, &v.ManufactureYear, &v.PassengerCapacity,
		&v.ChassisNumber, &v.EngineNumber, &status, &v.AcquisitionDate, &v.CreatedAt, &v.UpdatedAt)
	v.Status = models.VehicleStatus(status)
	return v, err
}

func (r VehicleRepository) GetByID(ctx context.Context, id int64) (models.Vehicle, error) {
	db, err := conn(r.DB)
	if err != nil {
		return models.Vehicle{}, err
	}
	return scanVehicle(db.QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = ? LIMIT 1`, id))
}

// GetCapacity reads only the seat count; used by roster checks under the trip lock.
func (r VehicleRepository) GetCapacity(ctx context.Context, id int64) (int, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	var capacity int
	err = db.QueryRowContext(ctx, `SELECT passenger_capacity FROM vehicles WHERE id = ? LIMIT 1`, id).Scan(&capacity)
	return capacity, err
}

func (r VehicleRepository) List(ctx context.Context, f ListFilter) ([]models.Vehicle, error) {
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
	if strings.TrimSpace(f.Query) != "" {
		where = append(where, "(plate LIKE ? OR brand LIKE ? OR model LIKE ?)")
		q := likeArg(f.Query)
		args = append(args, q, q, q)
	}

	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE ` + strings.Join(where, " AND ") + ` ORDER BY plate ASC, id ASC`
	query, args = paginate(query, args, f.Pagination)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r VehicleRepository) Create(ctx context.Context, v models.Vehicle) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO vehicles (plate, brand, model, manufacture_year, passenger_capacity, chassis_number, engine_number,
			status, acquisition_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.Plate, intdb.NullIfEmpty(v.Brand), v.Model, v.ManufactureYear, v.PassengerCapacity, v.ChassisNumber,
		intdb.NullIfEmpty(v.EngineNumber), string(v.Status), v.AcquisitionDate, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r VehicleRepository) Update(ctx context.Context, v models.Vehicle) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		UPDATE vehicles
		SET plate = ?, brand = ?, model = ?, manufacture_year = ?, passenger_capacity = ?, chassis_number = ?,
			engine_number = ?, status = ?, acquisition_date = ?, updated_at = ?
		WHERE id = ?`,
		v.Plate, intdb.NullIfEmpty(v.Brand), v.Model, v.ManufactureYear, v.PassengerCapacity, v.ChassisNumber,
		intdb.NullIfEmpty(v.EngineNumber), string(v.Status), v.AcquisitionDate, v.UpdatedAt, v.ID)
	return err
}

func (r VehicleRepository) Delete(ctx context.Context, id int64) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}
