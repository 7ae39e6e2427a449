package repositories

import (
	"context"
	"time"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain/models"
)

const documentColumns = `id, vehicle_id, type, document_number, issue_date, expiry_date, status,
	COALESCE(attachment,''), COALESCE(notes,''), created_at, updated_at`

type DocumentRepository struct {
	DB intdb.DBTX
}

// DocumentStatusRow is the slice of a document needed to re-derive its status.
type DocumentStatusRow struct {
	ID         int64
	ExpiryDate time.Time
	Status     models.DocumentStatus
}

func scanDocument(s rowScanner) (models.VehicleDocument, error) {
	var (
		d           models.VehicleDocument
		typ, status string
	)
	err := s.Scan(&d.ID, &d.VehicleID, &typ, &d.DocumentNumber, &d.IssueDate, &d.ExpiryDate, &status,
		&d.Attachment, &d.Notes, &d.CreatedAt, &d.UpdatedAt)
	d.Type = models.DocumentType(typ)
	d.Status = models.DocumentStatus(status)
	return d, err
}

func (r DocumentRepository) query(ctx context.Context, query string, args ...any) ([]models.VehicleDocument, error) {
	db, err := conn(r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.VehicleDocument{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetByID returns the document only when it belongs to vehicleID.
func (r DocumentRepository) GetByID(ctx context.Context, vehicleID, id int64) (models.VehicleDocument, error) {
	db, err := conn(r.DB)
	if err != nil {
		return models.VehicleDocument{}, err
	}
	return scanDocument(db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM vehicle_documents WHERE id = ? AND vehicle_id = ? LIMIT 1`, id, vehicleID))
}

func (r DocumentRepository) ListByVehicle(ctx context.Context, vehicleID int64) ([]models.VehicleDocument, error) {
	return r.query(ctx, `SELECT `+documentColumns+` FROM vehicle_documents WHERE vehicle_id = ? ORDER BY expiry_date DESC, id DESC`, vehicleID)
}

// ListExpiringBetween lists fleet documents with from <= expiry_date <= until, soonest first.
func (r DocumentRepository) ListExpiringBetween(ctx context.Context, from, until time.Time) ([]models.VehicleDocument, error) {
	return r.query(ctx, `SELECT `+documentColumns+` FROM vehicle_documents
		WHERE expiry_date >= ? AND expiry_date <= ?
		ORDER BY expiry_date ASC, id ASC`, from, until)
}

func (r DocumentRepository) ListStatusRows(ctx context.Context) ([]DocumentStatusRow, error) {
	db, err := conn(r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT id, expiry_date, status FROM vehicle_documents ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DocumentStatusRow{}
	for rows.Next() {
		var (
			rec    DocumentStatusRow
			status string
		)
		if err := rows.Scan(&rec.ID, &rec.ExpiryDate, &status); err != nil {
			return out, err
		}
		rec.Status = models.DocumentStatus(status)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r DocumentRepository) Create(ctx context.Context, d models.VehicleDocument) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO vehicle_documents (vehicle_id, type, document_number, issue_date, expiry_date, status, attachment, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.VehicleID, string(d.Type), d.DocumentNumber, d.IssueDate, d.ExpiryDate, string(d.Status),
		intdb.NullIfEmpty(d.Attachment), intdb.NullIfEmpty(d.Notes), d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r DocumentRepository) Update(ctx context.Context, d models.VehicleDocument) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		UPDATE vehicle_documents
		SET type = ?, document_number = ?, issue_date = ?, expiry_date = ?, status = ?, notes = ?, updated_at = ?
		WHERE id = ? AND vehicle_id = ?`,
		string(d.Type), d.DocumentNumber, d.IssueDate, d.ExpiryDate, string(d.Status), intdb.NullIfEmpty(d.Notes),
		d.UpdatedAt, d.ID, d.VehicleID)
	return err
}

func (r DocumentRepository) UpdateStatus(ctx context.Context, id int64, status models.DocumentStatus, at time.Time) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `UPDATE vehicle_documents SET status = ?, updated_at = ? WHERE id = ?`, string(status), at, id)
	return err
}

func (r DocumentRepository) SetAttachment(ctx context.Context, vehicleID, id int64, ref string, at time.Time) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `UPDATE vehicle_documents SET attachment = ?, updated_at = ? WHERE id = ? AND vehicle_id = ?`,
		intdb.NullIfEmpty(ref), at, id, vehicleID)
	return err
}

func (r DocumentRepository) Delete(ctx context.Context, vehicleID, id int64) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM vehicle_documents WHERE id = ? AND vehicle_id = ?`, id, vehicleID)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}

func (r DocumentRepository) DeleteByVehicle(ctx context.Context, vehicleID int64) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `DELETE FROM vehicle_documents WHERE vehicle_id = ?`, vehicleID)
	return err
}
