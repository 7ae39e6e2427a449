package services

import (
	"context"
	"database/sql"
	"fmt"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

func buildPlace(in models.PlaceInput) (models.Place, error) {
	p := models.Place{
		Name:      utils.NormalizeSpace(in.Name),
		City:      utils.NormalizeSpace(in.City),
		Province:  utils.NormalizeSpace(in.Province),
		Country:   utils.NormalizeSpace(in.Country),
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	}
	if p.Country == "" {
		p.Country = models.DefaultCountry
	}
	if err := required("name", p.Name); err != nil {
		return p, err
	}
	if err := required("city", p.City); err != nil {
		return p, err
	}
	if err := checkLatitude("latitude", p.Latitude); err != nil {
		return p, err
	}
	if err := checkLongitude("longitude", p.Longitude); err != nil {
		return p, err
	}
	return p, nil
}

func (s RegistryService) CreatePlace(ctx context.Context, in models.PlaceInput) (models.Place, error) {
	p, err := buildPlace(in)
	if err != nil {
		return models.Place{}, s.fail("create_place", "place", err)
	}
	now := resolveNow(s.Now)
	p.CreatedAt, p.UpdatedAt = now, now

	err = inTx(ctx, s.DB, func(tx *sql.Tx) error {
		id, err := repositories.PlaceRepository{DB: tx}.Create(ctx, p)
		p.ID = id
		return err
	})
	if err != nil {
		return models.Place{}, s.fail("create_place", "place", err)
	}
	s.logOK("create_place", p.ID)
	return p, nil
}

func (s RegistryService) GetPlace(ctx context.Context, id int64) (models.Place, error) {
	db, err := resolveDB(s.DB)
	if err != nil {
		return models.Place{}, s.fail("get_place", "place", err)
	}
	p, err := repositories.PlaceRepository{DB: db}.GetByID(ctx, id)
	if err != nil {
		return models.Place{}, s.fail("get_place", "place", lookup("place", id, err))
	}
	return p, nil
}

func (s RegistryService) ListPlaces(ctx context.Context, f repositories.ListFilter) ([]models.Place, error) {
	db, err := resolveDB(s.DB)
	if err != nil {
		return nil, s.fail("list_places", "place", err)
	}
	out, err := repositories.PlaceRepository{DB: db}.List(ctx, f)
	if err != nil {
		return nil, s.fail("list_places", "place", err)
	}
	return out, nil
}

// UpdatePlace never touches trips: their coordinates were copied when they were saved.
func (s RegistryService) UpdatePlace(ctx context.Context, id int64, in models.PlaceInput) (models.Place, error) {
	p, err := buildPlace(in)
	if err != nil {
		return models.Place{}, s.fail("update_place", "place", err)
	}
	p.ID = id

	err = inTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := repositories.PlaceRepository{DB: tx}
		existing, err := repo.GetByID(ctx, id)
		if err != nil {
			return lookup("place", id, err)
		}
		p.CreatedAt = existing.CreatedAt
		p.UpdatedAt = resolveNow(s.Now)
		return repo.Update(ctx, p)
	})
	if err != nil {
		return models.Place{}, s.fail("update_place", "place", err)
	}
	s.logOK("update_place", id)
	return p, nil
}

func (s RegistryService) DeletePlace(ctx context.Context, id int64) error {
	err := inTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := repositories.PlaceRepository{DB: tx}
		if _, err := repo.GetByID(ctx, id); err != nil {
			return lookup("place", id, err)
		}
		n, err := repositories.TripRepository{DB: tx}.CountByPlace(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ReferentialIntegrityError{Resource: "place", Msg: fmt.Sprintf("place is used by %d trip(s)", n)}
		}
		_, err = repo.Delete(ctx, id)
		return err
	})
	if err != nil {
		return s.fail("delete_place", "place", err)
	}
	s.logOK("delete_place", id)
	return nil
}
