package models

import (
	"time"

	"fleetops/internal/utils"
)

// TripCost is the one-to-one cost sheet of a trip. Total is derived.
type TripCost struct {
	ID               int64        `json:"id"`
	TripID           int64        `json:"trip_id"`
	Fuel             utils.Money  `json:"fuel"`
	MaintenanceShare utils.Money  `json:"maintenance_share"`
	Tolls            utils.Money  `json:"tolls"`
	OtherCosts       utils.Money  `json:"other_costs"`
	Total            utils.Money  `json:"total"`
	NetProfit        *utils.Money `json:"net_profit,omitempty"`
	Notes            string       `json:"notes,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// CostInput carries raw amounts; an empty string means zero.
type CostInput struct {
	Fuel             utils.AmountText `json:"fuel"`
	MaintenanceShare utils.AmountText `json:"maintenance_share"`
	OtherCosts       utils.AmountText `json:"other_costs"`
	NetProfit        utils.AmountText `json:"net_profit"`
	Notes            string           `json:"notes"`
}

type Toll struct {
	ID        int64       `json:"id"`
	TripID    int64       `json:"trip_id"`
	Location  string      `json:"location"`
	Amount    utils.Money `json:"amount"`
	PaidAt    time.Time   `json:"paid_at"`
	Receipt   string      `json:"receipt,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type TollInput struct {
	Location string           `json:"location"`
	Amount   utils.AmountText `json:"amount"`
	PaidAt   string           `json:"paid_at"`
	Receipt  string           `json:"receipt"`
}
