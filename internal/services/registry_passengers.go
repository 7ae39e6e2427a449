package services

import (
	"context"
	"database/sql"

	"fleetops/internal/domain/models"
	"fleetops/internal/observability"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

func buildPassenger(in models.PassengerInput) (models.Passenger, error) {
	p := models.Passenger{
		FullName:   utils.NormalizeSpace(in.FullName),
		NationalID: utils.TrimOrEmpty(in.NationalID),
		Phone:      utils.TrimOrEmpty(in.Phone),
		Email:      utils.NormalizeEmail(in.Email),
	}
	if err := required("full_name", p.FullName); err != nil {
		return p, err
	}
	if err := required("national_id", p.NationalID); err != nil {
		return p, err
	}
	if err := checkEmail("email", p.Email, false); err != nil {
		return p, err
	}
	return p, nil
}

func (s RegistryService) CreatePassenger(ctx context.Context, in models.PassengerInput) (models.Passenger, error) {
	p, err := buildPassenger(in)
	if err != nil {
		return models.Passenger{}, s.fail("create_passenger", "passenger", err)
	}
	now := resolveNow(s.Now)
	p.CreatedAt, p.UpdatedAt = now, now

	err = inTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := ensureUnique(ctx, tx, "passenger", "passengers", "national_id", p.NationalID, 0); err != nil {
			return err
		}
		id, err := repositories.PassengerRepository{DB: tx}.Create(ctx, p)
		p.ID = id
		return err
	})
	if err != nil {
		return models.Passenger{}, s.fail("create_passenger", "passenger", err)
	}
	s.logOK("create_passenger", p.ID)
	return p, nil
}

func (s RegistryService) GetPassenger(ctx context.Context, id int64) (models.Passenger, error) {
	db, err := resolveDB(s.DB)
	if err != nil {
		return models.Passenger{}, s.fail("get_passenger", "passenger", err)
	}
	p, err := repositories.PassengerRepository{DB: db}.GetByID(ctx, id)
	if err != nil {
		return models.Passenger{}, s.fail("get_passenger", "passenger", lookup("passenger", id, err))
	}
	return p, nil
}

func (s RegistryService) ListPassengers(ctx context.Context, f repositories.ListFilter) ([]models.Passenger, error) {
	db, err := resolveDB(s.DB)
	if err != nil {
		return nil, s.fail("list_passengers", "passenger", err)
	}
	out, err := repositories.PassengerRepository{DB: db}.List(ctx, f)
	if err != nil {
		return nil, s.fail("list_passengers", "passenger", err)
	}
	return out, nil
}

func (s RegistryService) UpdatePassenger(ctx context.Context, id int64, in models.PassengerInput) (models.Passenger, error) {
	p, err := buildPassenger(in)
	if err != nil {
		return models.Passenger{}, s.fail("update_passenger", "passenger", err)
	}
	p.ID = id

	err = inTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := repositories.PassengerRepository{DB: tx}
		existing, err := repo.GetByID(ctx, id)
		if err != nil {
			return lookup("passenger", id, err)
		}
		if err := ensureUnique(ctx, tx, "passenger", "passengers", "national_id", p.NationalID, id); err != nil {
			return err
		}
		p.CreatedAt = existing.CreatedAt
		p.UpdatedAt = resolveNow(s.Now)
		return repo.Update(ctx, p)
	})
	if err != nil {
		return models.Passenger{}, s.fail("update_passenger", "passenger", err)
	}
	s.logOK("update_passenger", id)
	return p, nil
}

// DeletePassenger removes the passenger from every roster it is on and
// recounts confirmed passengers of those trips in the same transaction.
func (s RegistryService) DeletePassenger(ctx context.Context, id int64) error {
	err := inTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := repositories.PassengerRepository{DB: tx}
		roster := repositories.TripPassengerRepository{DB: tx}
		trips := repositories.TripRepository{DB: tx}

		if _, err := repo.GetByID(ctx, id); err != nil {
			return lookup("passenger", id, err)
		}
		tripIDs, err := roster.TripIDsByPassenger(ctx, id)
		if err != nil {
			return err
		}
		for _, tripID := range tripIDs {
			if _, err := trips.LockByID(ctx, tripID); err != nil {
				return err
			}
		}
		if err := roster.DeleteByPassenger(ctx, id); err != nil {
			return err
		}
		if _, err := repo.Delete(ctx, id); err != nil {
			return err
		}
		now := resolveNow(s.Now)
		for _, tripID := range tripIDs {
			n, err := roster.CountDistinct(ctx, tripID)
			if err != nil {
				return err
			}
			if err := trips.UpdateConfirmedPassengers(ctx, tripID, n, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return s.fail("delete_passenger", "passenger", err)
	}
	observability.RosterChangesTotal.WithLabelValues("passenger_deleted").Inc()
	s.logOK("delete_passenger", id)
	return nil
}
