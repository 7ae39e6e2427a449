package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/observability"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

// CostService keeps the per-trip cost sheet. total and tolls are always derived:
// tolls from the toll rows, total from the four components.
type CostService struct {
	DB        *sql.DB
	RequestID string
	Now       func() time.Time
}

func (s CostService) fail(action string, err error) error {
	return finish(s.RequestID, "costs", action, "trip cost", err)
}

// costSheet returns the cost row of a trip, inserting a zeroed one when absent.
func costSheet(ctx context.Context, tx *sql.Tx, tripID int64, now time.Time) (models.TripCost, error) {
	repo := repositories.CostRepository{DB: tx}
	c, err := repo.GetByTrip(ctx, tripID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return c, err
	}
	c = models.TripCost{TripID: tripID, CreatedAt: now, UpdatedAt: now}
	domain.ApplyCostTotal(&c)
	id, err := repo.Create(ctx, c)
	if err != nil {
		return c, err
	}
	c.ID = id
	return c, nil
}

// resumTolls recomputes the tolls component and the total, then saves the sheet.
func resumTolls(ctx context.Context, tx *sql.Tx, tripID int64, now time.Time) (models.TripCost, error) {
	c, err := costSheet(ctx, tx, tripID, now)
	if err != nil {
		return c, err
	}
	tolls, err := repositories.TollRepository{DB: tx}.ListByTrip(ctx, tripID)
	if err != nil {
		return c, err
	}
	c.Tolls = domain.SumTolls(tolls)
	domain.ApplyCostTotal(&c)
	c.UpdatedAt = now
	if err := (repositories.CostRepository{DB: tx}).Update(ctx, c); err != nil {
		return c, err
	}
	return c, nil
}

func lockTrip(ctx context.Context, tx *sql.Tx, tripID int64) error {
	if _, err := (repositories.TripRepository{DB: tx}).LockByID(ctx, tripID); err != nil {
		return lookup("trip", tripID, err)
	}
	return nil
}

// GetOrCreate returns the trip's cost sheet, creating a zeroed one on first access.
func (s CostService) GetOrCreate(ctx context.Context, tripID int64) (models.TripCost, error) {
	var c models.TripCost
	err := inTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := lockTrip(ctx, tx, tripID); err != nil {
			return err
		}
		var err error
		c, err = costSheet(ctx, tx, tripID, resolveNow(s.Now))
		return err
	})
	if err != nil {
		return models.TripCost{}, s.fail("get_or_create", err)
	}
	return c, nil
}

// Update replaces the editable components. Components left out of the input
// are stored as zero; tolls keep their derived value.
func (s CostService) Update(ctx context.Context, tripID int64, in models.CostInput) (models.TripCost, error) {
	fuel, err := parseAmount("fuel", in.Fuel)
	if err != nil {
		return models.TripCost{}, s.fail("update", err)
	}
	share, err := parseAmount("maintenance_share", in.MaintenanceShare)
	if err != nil {
		return models.TripCost{}, s.fail("update", err)
	}
	other, err := parseAmount("other_costs", in.OtherCosts)
	if err != nil {
		return models.TripCost{}, s.fail("update", err)
	}
	var net *utils.Money
	if !in.NetProfit.IsEmpty() {
		m, err := utils.ParseMoney(string(in.NetProfit))
		if err != nil {
			return models.TripCost{}, s.fail("update", domain.ValidationError{Field: "net_profit", Msg: "must be an amount with at most two decimals", Err: err})
		}
		net = &m
	}

	var c models.TripCost
	err = inTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := lockTrip(ctx, tx, tripID); err != nil {
			return err
		}
		now := resolveNow(s.Now)
		sheet, err := costSheet(ctx, tx, tripID, now)
		if err != nil {
			return err
		}
		sheet.Fuel = fuel
		sheet.MaintenanceShare = share
		sheet.OtherCosts = other
		sheet.NetProfit = net
		sheet.Notes = strings.TrimSpace(in.Notes)
		domain.ApplyCostTotal(&sheet)
		sheet.UpdatedAt = now
		if err := (repositories.CostRepository{DB: tx}).Update(ctx, sheet); err != nil {
			return err
		}
		c = sheet
		return nil
	})
	if err != nil {
		return models.TripCost{}, s.fail("update", err)
	}
	utils.LogEvent(s.RequestID, "costs", "update", fmt.Sprintf("trip_id=%d total=%s", tripID, c.Total))
	return c, nil
}

func (s CostService) AddToll(ctx context.Context, tripID int64, in models.TollInput) (models.Toll, models.TripCost, error) {
	t := models.Toll{
		TripID:   tripID,
		Location: utils.NormalizeSpace(in.Location),
		Receipt:  utils.TrimOrEmpty(in.Receipt),
	}
	if err := required("location", t.Location); err != nil {
		return models.Toll{}, models.TripCost{}, s.fail("add_toll", err)
	}
	amount, err := parseRequiredAmount("amount", in.Amount)
	if err != nil {
		return models.Toll{}, models.TripCost{}, s.fail("add_toll", err)
	}
	t.Amount = amount
	paidAt, err := parseOptionalDateTime("paid_at", in.PaidAt)
	if err != nil {
		return models.Toll{}, models.TripCost{}, s.fail("add_toll", err)
	}

	var c models.TripCost
	err = inTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := lockTrip(ctx, tx, tripID); err != nil {
			return err
		}
		now := resolveNow(s.Now)
		t.PaidAt = now
		if paidAt != nil {
			t.PaidAt = *paidAt
		}
		t.CreatedAt = now
		id, err := repositories.TollRepository{DB: tx}.Create(ctx, t)
		if err != nil {
			return err
		}
		t.ID = id
		c, err = resumTolls(ctx, tx, tripID, now)
		return err
	})
	if err != nil {
		return models.Toll{}, models.TripCost{}, s.fail("add_toll", err)
	}
	observability.TollChangesTotal.WithLabelValues("add").Inc()
	utils.LogEvent(s.RequestID, "costs", "add_toll", fmt.Sprintf("trip_id=%d toll_id=%d amount=%s tolls=%s", tripID, t.ID, t.Amount, c.Tolls))
	return t, c, nil
}

func (s CostService) RemoveToll(ctx context.Context, tripID, tollID int64) (models.TripCost, error) {
	var c models.TripCost
	err := inTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := lockTrip(ctx, tx, tripID); err != nil {
			return err
		}
		n, err := repositories.TollRepository{DB: tx}.Delete(ctx, tripID, tollID)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.NotFoundError{Resource: "toll", ID: tollID}
		}
		c, err = resumTolls(ctx, tx, tripID, resolveNow(s.Now))
		return err
	})
	if err != nil {
		return models.TripCost{}, s.fail("remove_toll", err)
	}
	observability.TollChangesTotal.WithLabelValues("remove").Inc()
	utils.LogEvent(s.RequestID, "costs", "remove_toll", fmt.Sprintf("trip_id=%d toll_id=%d tolls=%s", tripID, tollID, c.Tolls))
	return c, nil
}

func (s CostService) ListTolls(ctx context.Context, tripID int64) ([]models.Toll, error) {
	db, err := resolveDB(s.DB)
	if err != nil {
		return nil, s.fail("list_tolls", err)
	}
	ok, err := repositories.Exists(ctx, db, "trips", tripID)
	if err != nil {
		return nil, s.fail("list_tolls", err)
	}
	if !ok {
		return nil, s.fail("list_tolls", domain.NotFoundError{Resource: "trip", ID: tripID})
	}
	out, err := repositories.TollRepository{DB: db}.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, s.fail("list_tolls", err)
	}
	return out, nil
}
