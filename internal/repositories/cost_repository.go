package repositories

import (
	"context"
	"database/sql"
	"strings"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain/models"
	"fleetops/internal/utils"
)

const costColumns = `id, trip_id, fuel, maintenance_share, tolls, other_costs, total, net_profit, COALESCE(notes,''), created_at, updated_at`

type CostRepository struct {
	DB intdb.DBTX
}

func scanCost(s rowScanner) (models.TripCost, error) {
	var (
		c   models.TripCost
		net sql.NullString
	)
	if err := s.Scan(&c.ID, &c.TripID, &c.Fuel, &c.MaintenanceShare, &c.Tolls, &c.OtherCosts, &c.Total, &net,
		&c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return c, err
	}
	if net.Valid && strings.TrimSpace(net.String) != "" {
		m, err := utils.ParseMoney(net.String)
		if err != nil {
			return c, err
		}
		c.NetProfit = &m
	}
	return c, nil
}

func (r CostRepository) GetByTrip(ctx context.Context, tripID int64) (models.TripCost, error) {
	db, err := conn(r.DB)
	if err != nil {
		return models.TripCost{}, err
	}
	return scanCost(db.QueryRowContext(ctx, `SELECT `+costColumns+` FROM trip_costs WHERE trip_id = ? LIMIT 1`, tripID))
}

func (r CostRepository) Create(ctx context.Context, c models.TripCost) (int64, error) {
	db, err := conn(r.DB)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO trip_costs (trip_id, fuel, maintenance_share, tolls, other_costs, total, net_profit, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.TripID, c.Fuel, c.MaintenanceShare, c.Tolls, c.OtherCosts, c.Total, utils.NullMoney(c.NetProfit),
		intdb.NullIfEmpty(c.Notes), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r CostRepository) Update(ctx context.Context, c models.TripCost) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		UPDATE trip_costs
		SET fuel = ?, maintenance_share = ?, tolls = ?, other_costs = ?, total = ?, net_profit = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		c.Fuel, c.MaintenanceShare, c.Tolls, c.OtherCosts, c.Total, utils.NullMoney(c.NetProfit),
		intdb.NullIfEmpty(c.Notes), c.UpdatedAt, c.ID)
	return err
}

func (r CostRepository) DeleteByTrip(ctx context.Context, tripID int64) error {
	db, err := conn(r.DB)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `DELETE FROM trip_costs WHERE trip_id = ?`, tripID)
	return err
}
