package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

const minManufactureYear = 1900

func buildVehicle(in models.VehicleInput, now time.Time) (models.Vehicle, error) {
	v := models.Vehicle{
		Plate:             utils.NormalizeCode(in.Plate),
		Brand:             utils.NormalizeSpace(in.Brand),
		Model:             utils.NormalizeSpace(in.Model),
		ManufactureYear:   in.ManufactureYear,
		PassengerCapacity: in.PassengerCapacity,
		ChassisNumber:     utils.NormalizeCode(in.ChassisNumber),
		EngineNumber:      utils.NormalizeCode(in.EngineNumber),
		Status:            models.VehicleStatus(utils.TrimOrEmpty(in.Status)),
	}
	if v.Status == "" {
		v.Status = models.VehicleActive
	}
	if err := required("plate", v.Plate); err != nil {
		return v, err
	}
	if err := required("model", v.Model); err != nil {
		return v, err
	}
	if err := required("chassis_number", v.ChassisNumber); err != nil {
		return v, err
	}
	if maxYear := now.Year() + 1; v.ManufactureYear < minManufactureYear || v.ManufactureYear > maxYear {
		return v, domain.ValidationError{Field: "manufacture_year", Msg: fmt.Sprintf("must be between %d and %d", minManufactureYear, maxYear)}
	}
	if v.PassengerCapacity <= 0 {
		return v, domain.ValidationError{Field: "passenger_capacity", Msg: "must be greater than zero"}
	}
	if !v.Status.Valid() {
		return v, domain.ValidationError{Field: "status", Msg: "must be one of active, maintenance, inactive"}
	}
	acquired, err := parseDateField("acquisition_date", in.AcquisitionDate)
	if err != nil {
		return v, err
	}
	v.AcquisitionDate = acquired
	return v, nil
}

func (s RegistryService) vehicleUnique(ctx context.Context, tx *sql.Tx, v models.Vehicle) error {
	if err := ensureUnique(ctx, tx, "vehicle", "vehicles", "plate", v.Plate, v.ID); err != nil {
		return err
	}
	if err := ensureUnique(ctx, tx, "vehicle", "vehicles", "chassis_number", v.ChassisNumber, v.ID); err != nil {
		return err
	}
	if v.EngineNumber == "" {
		return nil
	}
	return ensureUnique(ctx, tx, "vehicle", "vehicles", "engine_number", v.EngineNumber, v.ID)
}

func (s RegistryService) CreateVehicle(ctx context.Context, in models.VehicleInput) (models.Vehicle, error) {
	now := resolveNow(s.Now)
	v, err := buildVehicle(in, now)
	if err != nil {
		return models.Vehicle{}, s.fail("create_vehicle", "vehicle", err)
	}
	v.CreatedAt, v.UpdatedAt = now, now

	err = inTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := s.vehicleUnique(ctx, tx, v); err != nil {
			return err
		}
		id, err := repositories.VehicleRepository{DB: tx}.Create(ctx, v)
		v.ID = id
		return err
	})
	if err != nil {
		return models.Vehicle{}, s.fail("create_vehicle", "vehicle", err)
	}
	s.logOK("create_vehicle", v.ID)
	return v, nil
}

func (s RegistryService) GetVehicle(ctx context.Context, id int64) (models.Vehicle, error) {
	db, err := resolveDB(s.DB)
	if err != nil {
		return models.Vehicle{}, s.fail("get_vehicle", "vehicle", err)
	}
	v, err := repositories.VehicleRepository{DB: db}.GetByID(ctx, id)
	if err != nil {
		return models.Vehicle{}, s.fail("get_vehicle", "vehicle", lookup("vehicle", id, err))
	}
	return v, nil
}

func (s RegistryService) ListVehicles(ctx context.Context, f repositories.ListFilter) ([]models.Vehicle, error) {
	if f.Status != "" && !models.VehicleStatus(f.Status).Valid() {
		return nil, s.fail("list_vehicles", "vehicle", domain.ValidationError{Field: "status", Msg: "unknown vehicle status"})
	}
	db, err := resolveDB(s.DB)
	if err != nil {
		return nil, s.fail("list_vehicles", "vehicle", err)
	}
	out, err := repositories.VehicleRepository{DB: db}.List(ctx, f)
	if err != nil {
		return nil, s.fail("list_vehicles", "vehicle", err)
	}
	return out, nil
}

func (s RegistryService) UpdateVehicle(ctx context.Context, id int64, in models.VehicleInput) (models.Vehicle, error) {
	now := resolveNow(s.Now)
	v, err := buildVehicle(in, now)
	if err != nil {
		return models.Vehicle{}, s.fail("update_vehicle", "vehicle", err)
	}
	v.ID = id

	err = inTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := repositories.VehicleRepository{DB: tx}
		existing, err := repo.GetByID(ctx, id)
		if err != nil {
			return lookup("vehicle", id, err)
		}
		if err := s.vehicleUnique(ctx, tx, v); err != nil {
			return err
		}
		v.CreatedAt = existing.CreatedAt
		v.UpdatedAt = now
		return repo.Update(ctx, v)
	})
	if err != nil {
		return models.Vehicle{}, s.fail("update_vehicle", "vehicle", err)
	}
	s.logOK("update_vehicle", id)
	return v, nil
}

// DeleteVehicle is blocked while trips reference the vehicle; otherwise its
// documents and maintenance history go with it.
func (s RegistryService) DeleteVehicle(ctx context.Context, id int64) error {
	err := inTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := repositories.VehicleRepository{DB: tx}
		if _, err := repo.GetByID(ctx, id); err != nil {
			return lookup("vehicle", id, err)
		}
		n, err := repositories.TripRepository{DB: tx}.CountByVehicle(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ReferentialIntegrityError{Resource: "vehicle", Msg: fmt.Sprintf("vehicle is assigned to %d trip(s)", n)}
		}
		if err := (repositories.DocumentRepository{DB: tx}).DeleteByVehicle(ctx, id); err != nil {
			return err
		}
		if err := (repositories.MaintenanceRepository{DB: tx}).DeleteByVehicle(ctx, id); err != nil {
			return err
		}
		_, err = repo.Delete(ctx, id)
		return err
	})
	if err != nil {
		return s.fail("delete_vehicle", "vehicle", err)
	}
	s.logOK("delete_vehicle", id)
	return nil
}
