package repositories

import (
	"context"
	"strings"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain/models"
)

const driverColumns = `id, first_name, last_name, national_id, email, COALESCE(phone,''), hire_date, active, created_at, updated_at`

type DriverRepository struct {
	DB intdb.DBTX
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDriver(s rowScanner) (models.Driver, error) {
	var d models.Driver
	err := s.Scan(&d.ID, &d.FirstName, &d.LastName, &d.NationalID, &d.Email, &d.Phone,
		&d.HireDate, &d.Active, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r DriverRepository) GetByID(ctx context.Context, id int64) (models.Driver, error) {
	db, err := conn(r.DB)
	if err != nil {
		return models.Driver{}, err
	}
	return scanDriver(db.QueryRowContext(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = ? LIMIT 1`, id))
}

func (r DriverRepository) List(ctx context.Context, f ListFilter) ([]models.Driver, error) {
	db, err := conn(r.DB)
	if err != nil {
		return nil, err
	}

	where := []string{"1=1"}
	args := []any{}
	if f.Active != nil {
		where = append(where, "active = ?")
		args = append(args, *f.Active)
	}
	if strings.TrimSpace(f.Query) != "" {
		where = append(where, "(first_name LIKE ? OR last_name LIKE ? OR national_id LIKE ?)")
		q := likeArg(f.Query)
		args = append(args, q, q, q)
	}

	query := `SELECT ` + driverColumns + ` FROM drivers WHERE ` + strings.Join(where, " AND ") + ` ORDER BY last_name ASC, first_name ASC, id ASC`
	query, args = paginate(query, args, f.Pagination)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DriverRepository) Create(ctx context.Context, d models.Driver) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO drivers (first_name, last_name, national_id, email, phone, hire_date, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.FirstName, d.LastName, d.NationalID, d.Email, d.Phone, d.HireDate, d.Active, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r DriverRepository) Update(ctx context.Context, d models.Driver) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		UPDATE drivers
		SET first_name = ?, last_name = ?, national_id = ?, email = ?, phone = ?, hire_date = ?, active = ?, updated_at = ?
		WHERE id = ?`,
		d.FirstName, d.LastName, d.NationalID, d.Email, d.Phone, d.HireDate, d.Active, d.UpdatedAt, d.ID)
	return err
}

func (r DriverRepository) Delete(ctx context.Context, id int64) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM drivers WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}
