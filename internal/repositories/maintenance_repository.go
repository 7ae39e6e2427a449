package repositories

import (
	"context"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain/models"
)

const maintenanceColumns = `id, vehicle_id, type, description, performed_on, odometer_km, cost,
	COALESCE(provider,''), COALESCE(workshop,''), COALESCE(notes,''), created_at, updated_at`

type MaintenanceRepository struct {
	DB intdb.DBTX
}

func scanMaintenance(s rowScanner) (models.MaintenanceRecord, error) {
	var (
		m   models.MaintenanceRecord
		typ string
	)
	err := s.Scan(&m.ID, &m.VehicleID, &typ, &m.Description, &m.PerformedOn, &m.OdometerKm, &m.Cost,
		&m.Provider, &m.Workshop, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	m.Type = models.MaintenanceType(typ)
	return m, err
}

func (r MaintenanceRepository) GetByID(ctx context.Context, vehicleID, id int64) (models.MaintenanceRecord, error) {
	db, err := conn(r.DB)
	if err != nil {
		return models.MaintenanceRecord{}, err
	}
	return scanMaintenance(db.QueryRowContext(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_records WHERE id = ? AND vehicle_id = ? LIMIT 1`, id, vehicleID))
}

func (r MaintenanceRepository) ListByVehicle(ctx context.Context, vehicleID int64) ([]models.MaintenanceRecord, error) {
	db, err := conn(r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_records WHERE vehicle_id = ? ORDER BY performed_on DESC, id DESC`, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.MaintenanceRecord{}
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return out, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r MaintenanceRepository) Create(ctx context.Context, m models.MaintenanceRecord) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO maintenance_records (vehicle_id, type, description, performed_on, odometer_km, cost, provider, workshop, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.VehicleID, string(m.Type), m.Description, m.PerformedOn, m.OdometerKm, m.Cost,
		intdb.NullIfEmpty(m.Provider), intdb.NullIfEmpty(m.Workshop), intdb.NullIfEmpty(m.Notes), m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r MaintenanceRepository) Update(ctx context.Context, m models.MaintenanceRecord) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		UPDATE maintenance_records
		SET type = ?, description = ?, performed_on = ?, odometer_km = ?, cost = ?, provider = ?, workshop = ?, notes = ?, updated_at = ?
		WHERE id = ? AND vehicle_id = ?`,
		string(m.Type), m.Description, m.PerformedOn, m.OdometerKm, m.Cost,
		intdb.NullIfEmpty(m.Provider), intdb.NullIfEmpty(m.Workshop), intdb.NullIfEmpty(m.Notes), m.UpdatedAt, m.ID, m.VehicleID)
	return err
}

func (r MaintenanceRepository) Delete(ctx context.Context, vehicleID, id int64) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM maintenance_records WHERE id = ? AND vehicle_id = ?`, id, vehicleID)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}

func (r MaintenanceRepository) DeleteByVehicle(ctx context.Context, vehicleID int64) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `DELETE FROM maintenance_records WHERE vehicle_id = ?`, vehicleID)
	return err
}
