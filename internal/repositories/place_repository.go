package repositories

import (
	"context"
	"database/sql"
	"strings"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain/models"
)

const placeColumns = `id, name, city, COALESCE(province,''), country, latitude, longitude, created_at, updated_at`

type PlaceRepository struct {
	DB intdb.DBTX
}

func scanPlace(s rowScanner) (models.Place, error) {
	var (
		p        models.Place
		lat, lng sql.NullFloat64
	)
	if err := s.Scan(&p.ID, &p.Name, &p.City, &p.Province, &p.Country, &lat, &lng, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return p, err
	}
	p.Latitude = intdb.FloatPtr(lat)
	p.Longitude = intdb.FloatPtr(lng)
	return p, nil
}

func (r PlaceRepository) GetByID(ctx context.Context, id int64) (models.Place, error) {
	db, err := conn(r.DB)
	if err != nil {
		return models.Place{}, err
	}
	return scanPlace(db.QueryRowContext(ctx, `SELECT `+placeColumns+` FROM places WHERE id = ? LIMIT 1`, id))
}

func (r PlaceRepository) List(ctx context.Context, f ListFilter) ([]models.Place, error) {
	db, err := conn(r.DB)
	if err != nil {
		return nil, err
	}

	where := []string{"1=1"}
	args := []any{}
	if strings.TrimSpace(f.Query) != "" {
		where = append(where, "(name LIKE ? OR city LIKE ?)")
		q := likeArg(f.Query)
		args = append(args, q, q)
	}

	query := `SELECT ` + placeColumns + ` FROM places WHERE ` + strings.Join(where, " AND ") + ` ORDER BY city ASC, name ASC, id ASC`
	query, args = paginate(query, args, f.Pagination)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Place{}
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PlaceRepository) Create(ctx context.Context, p models.Place) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO places (name, city, province, country, latitude, longitude, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.City, intdb.NullIfEmpty(p.Province), p.Country, intdb.NullFloat(p.Latitude), intdb.NullFloat(p.Longitude), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PlaceRepository) Update(ctx context.Context, p models.Place) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		UPDATE places
		SET name = ?, city = ?, province = ?, country = ?, latitude = ?, longitude = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.City, intdb.NullIfEmpty(p.Province), p.Country, intdb.NullFloat(p.Latitude), intdb.NullFloat(p.Longitude), p.UpdatedAt, p.ID)
	return err
}

func (r PlaceRepository) Delete(ctx context.Context, id int64) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM places WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}
