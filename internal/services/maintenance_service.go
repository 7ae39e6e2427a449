package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

type MaintenanceService struct {
	DB        *sql.DB
	RequestID string
	Now       func() time.Time
}

func (s MaintenanceService) fail(action string, err error) error {
	return finish(s.RequestID, "maintenance", action, "maintenance record", err)
}

func buildMaintenance(in models.MaintenanceInput) (models.MaintenanceRecord, error) {
	m := models.MaintenanceRecord{
		Type:        models.MaintenanceType(strings.ToLower(utils.TrimOrEmpty(in.Type))),
		Description: strings.TrimSpace(in.Description),
		OdometerKm:  in.OdometerKm,
		Provider:    utils.NormalizeSpace(in.Provider),
		Workshop:    utils.NormalizeSpace(in.Workshop),
		Notes:       strings.TrimSpace(in.Notes),
	}
	if !m.Type.Valid() {
		return m, domain.ValidationError{Field: "type", Msg: "unknown maintenance type"}
	}
	if err := required("description", m.Description); err != nil {
		return m, err
	}
	performed, err := parseDateField("performed_on", in.PerformedOn)
	if err != nil {
		return m, err
	}
	m.PerformedOn = performed
	if m.OdometerKm < 0 {
		return m, domain.ValidationError{Field: "odometer_km", Msg: "must not be negative"}
	}
	cost, err := parseAmount("cost", in.Cost)
	if err != nil {
		return m, err
	}
	m.Cost = cost
	return m, nil
}

func (s MaintenanceService) Create(ctx context.Context, vehicleID int64, in models.MaintenanceInput) (models.MaintenanceRecord, error) {
	m, err := buildMaintenance(in)
	if err != nil {
		return models.MaintenanceRecord{}, s.fail("create", err)
	}
	now := resolveNow(s.Now)
	m.VehicleID = vehicleID
	m.CreatedAt, m.UpdatedAt = now, now

	err = inTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "vehicle", "vehicles", vehicleID); err != nil {
			return err
		}
		id, err := repositories.MaintenanceRepository{DB: tx}.Create(ctx, m)
		m.ID = id
		return err
	})
	if err != nil {
		return models.MaintenanceRecord{}, s.fail("create", err)
	}
	utils.LogEvent(s.RequestID, "maintenance", "create", fmt.Sprintf("vehicle_id=%d id=%d cost=%s", vehicleID, m.ID, m.Cost))
	return m, nil
}

func (s MaintenanceService) Get(ctx context.Context, vehicleID, id int64) (models.MaintenanceRecord, error) {
	db, err := resolveDB(s.DB)
	if err != nil {
		return models.MaintenanceRecord{}, s.fail("get", err)
	}
	m, err := repositories.MaintenanceRepository{DB: db}.GetByID(ctx, vehicleID, id)
	if err != nil {
		return models.MaintenanceRecord{}, s.fail("get", lookup("maintenance record", id, err))
	}
	return m, nil
}

func (s MaintenanceService) List(ctx context.Context, vehicleID int64) ([]models.MaintenanceRecord, error) {
	db, err := resolveDB(s.DB)
	if err != nil {
		return nil, s.fail("list", err)
	}
	ok, err := repositories.Exists(ctx, db, "vehicles", vehicleID)
	if err != nil {
		return nil, s.fail("list", err)
	}
	if !ok {
		return nil, s.fail("list", domain.NotFoundError{Resource: "vehicle", ID: vehicleID})
	}
	out, err := repositories.MaintenanceRepository{DB: db}.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, s.fail("list", err)
	}
	return out, nil
}

func (s MaintenanceService) Update(ctx context.Context, vehicleID, id int64, in models.MaintenanceInput) (models.MaintenanceRecord, error) {
	m, err := buildMaintenance(in)
	if err != nil {
		return models.MaintenanceRecord{}, s.fail("update", err)
	}
	m.ID = id
	m.VehicleID = vehicleID

	err = inTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := repositories.MaintenanceRepository{DB: tx}
		existing, err := repo.GetByID(ctx, vehicleID, id)
		if err != nil {
			return lookup("maintenance record", id, err)
		}
		m.CreatedAt = existing.CreatedAt
		m.UpdatedAt = resolveNow(s.Now)
		return repo.Update(ctx, m)
	})
	if err != nil {
		return models.MaintenanceRecord{}, s.fail("update", err)
	}
	utils.LogEvent(s.RequestID, "maintenance", "update", fmt.Sprintf("vehicle_id=%d id=%d", vehicleID, id))
	return m, nil
}

func (s MaintenanceService) Delete(ctx context.Context, vehicleID, id int64) error {
	db, err := resolveDB(s.DB)
	if err != nil {
		return s.fail("delete", err)
	}
	n, err := repositories.MaintenanceRepository{DB: db}.Delete(ctx, vehicleID, id)
	if err != nil {
		return s.fail("delete", err)
	}
	if n == 0 {
		return s.fail("delete", domain.NotFoundError{Resource: "maintenance record", ID: id})
	}
	utils.LogEvent(s.RequestID, "maintenance", "delete", fmt.Sprintf("vehicle_id=%d id=%d", vehicleID, id))
	return nil
}
