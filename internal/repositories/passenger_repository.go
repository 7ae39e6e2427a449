package repositories

import (
	"context"
	"strings"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain/models"
)

const passengerColumns = `id, full_name, national_id, COALESCE(phone,''), COALESCE(email,''), created_at, updated_at`

type PassengerRepository struct {
	DB intdb.DBTX
}

func scanPassenger(s rowScanner) (models.Passenger, error) {
	var p models.Passenger
	err := s.Scan(&p.ID, &p.FullName, &p.NationalID, &p.Phone, &p.Email, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r PassengerRepository) GetByID(ctx context.Context, id int64) (models.Passenger, error) {
	db, err := conn(r.DB)
	if err != nil {
		return models.Passenger{}, err
	}
	return scanPassenger(db.QueryRowContext(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE id = ? LIMIT 1`, id))
}

func (r PassengerRepository) List(ctx context.Context, f ListFilter) ([]models.Passenger, error) {
	db, err := conn(r.DB)
	if err != nil {
		return nil, err
	}

	where := []string{"1=1"}
	args := []any{}
	if strings.TrimSpace(f.Query) != "" {
		where = append(where, "(full_name LIKE ? OR national_id LIKE ?)")
		q := likeArg(f.Query)
		args = append(args, q, q)
	}

	query := `SELECT ` + passengerColumns + ` FROM passengers WHERE ` + strings.Join(where, " AND ") + ` ORDER BY full_name ASC, id ASC`
	query, args = paginate(query, args, f.Pagination)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passenger{}
	for rows.Next() {
		p, err := scanPassenger(rows)
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PassengerRepository) Create(ctx context.Context, p models.Passenger) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO passengers (full_name, national_id, phone, email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.FullName, p.NationalID, p.Phone, p.Email, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PassengerRepository) Update(ctx context.Context, p models.Passenger) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		UPDATE passengers
		SET full_name = ?, national_id = ?, phone = ?, email = ?, updated_at = ?
		WHERE id = ?`,
		p.FullName, p.NationalID, p.Phone, p.Email, p.UpdatedAt, p.ID)
	return err
}

func (r PassengerRepository) Delete(ctx context.Context, id int64) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM passengers WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}
