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

// RegistryService mengelola data referensi: driver, tempat, penumpang dan kendaraan.
type RegistryService struct {
	DB        *sql.DB
	RequestID string
	Now       func() time.Time
}

func (s RegistryService) fail(action, resource string, err error) error {
	return finish(s.RequestID, "registry", action, resource, err)
}

func (s RegistryService) logOK(action string, id int64) {
	utils.LogEvent(s.RequestID, "registry", action, fmt.Sprintf("id=%d", id))
}

// ---------- drivers ----------

func buildDriver(in models.DriverInput) (models.Driver, error) {
	d := models.Driver{
		FirstName:  utils.NormalizeSpace(in.FirstName),
		LastName:   utils.NormalizeSpace(in.LastName),
		NationalID: utils.TrimOrEmpty(in.NationalID),
		Email:      utils.NormalizeEmail(in.Email),
		Phone:      utils.TrimOrEmpty(in.Phone),
		Active:     true,
	}
	if in.Active != nil {
		d.Active = *in.Active
	}
	if err := required("first_name", d.FirstName); err != nil {
		return d, err
	}
	if err := required("last_name", d.LastName); err != nil {
		return d, err
	}
	if err := required("national_id", d.NationalID); err != nil {
		return d, err
	}
	if err := checkEmail("email", d.Email, true); err != nil {
		return d, err
	}
	hire, err := parseDateField("hire_date", in.HireDate)
	if err != nil {
		return d, err
	}
	d.HireDate = hire
	return d, nil
}

func (s RegistryService) driverUnique(ctx context.Context, tx *sql.Tx, d models.Driver) error {
	if err := ensureUnique(ctx, tx, "driver", "drivers", "national_id", d.NationalID, d.ID); err != nil {
		return err
	}
	return ensureUnique(ctx, tx, "driver", "drivers", "email", d.Email, d.ID)
}

func (s RegistryService) CreateDriver(ctx context.Context, in models.DriverInput) (models.Driver, error) {
	d, err := buildDriver(in)
	if err != nil {
		return models.Driver{}, s.fail("create_driver", "driver", err)
	}
	now := resolveNow(s.Now)
	d.CreatedAt, d.UpdatedAt = now, now

	err = inTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := s.driverUnique(ctx, tx, d); err != nil {
			return err
		}
		id, err := repositories.DriverRepository{DB: tx}.Create(ctx, d)
		d.ID = id
		return err
	})
	if err != nil {
		return models.Driver{}, s.fail("create_driver", "driver", err)
	}
	s.logOK("create_driver", d.ID)
	return d, nil
}

func (s RegistryService) GetDriver(ctx context.Context, id int64) (models.Driver, error) {
	db, err := resolveDB(s.DB)
	if err != nil {
		return models.Driver{}, s.fail("get_driver", "driver", err)
	}
	d, err := repositories.DriverRepository{DB: db}.GetByID(ctx, id)
	if err != nil {
		return models.Driver{}, s.fail("get_driver", "driver", lookup("driver", id, err))
	}
	return d, nil
}

func (s RegistryService) ListDrivers(ctx context.Context, f repositories.ListFilter) ([]models.Driver, error) {
	db, err := resolveDB(s.DB)
	if err != nil {
		return nil, s.fail("list_drivers", "driver", err)
	}
	out, err := repositories.DriverRepository{DB: db}.List(ctx, f)
	if err != nil {
		return nil, s.fail("list_drivers", "driver", err)
	}
	return out, nil
}

func (s RegistryService) UpdateDriver(ctx context.Context, id int64, in models.DriverInput) (models.Driver, error) {
	d, err := buildDriver(in)
	if err != nil {
		return models.Driver{}, s.fail("update_driver", "driver", err)
	}
	d.ID = id

	err = inTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := repositories.DriverRepository{DB: tx}
		existing, err := repo.GetByID(ctx, id)
		if err != nil {
			return lookup("driver", id, err)
		}
		if in.Active == nil {
			d.Active = existing.Active
		}
		if err := s.driverUnique(ctx, tx, d); err != nil {
			return err
		}
		d.CreatedAt = existing.CreatedAt
		d.UpdatedAt = resolveNow(s.Now)
		return repo.Update(ctx, d)
	})
	if err != nil {
		return models.Driver{}, s.fail("update_driver", "driver", err)
	}
	s.logOK("update_driver", id)
	return d, nil
}

// DeleteDriver refuses to remove a driver still assigned to any trip.
func (s RegistryService) DeleteDriver(ctx context.Context, id int64) error {
	err := inTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := repositories.DriverRepository{DB: tx}
		if _, err := repo.GetByID(ctx, id); err != nil {
			return lookup("driver", id, err)
		}
		n, err := repositories.TripRepository{DB: tx}.CountByDriver(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ReferentialIntegrityError{Resource: "driver", Msg: fmt.Sprintf("driver is assigned to %d trip(s)", n)}
		}
		_, err = repo.Delete(ctx, id)
		return err
	})
	if err != nil {
		return s.fail("delete_driver", "driver", err)
	}
	s.logOK("delete_driver", id)
	return nil
}
