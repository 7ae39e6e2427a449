package models

import (
	"time"

	"fleetops/internal/utils"
)

type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "preventive"
	MaintenanceCorrective MaintenanceType = "corrective"
	MaintenancePredictive MaintenanceType = "predictive"
	MaintenanceMechanical MaintenanceType = "mechanical"
	MaintenanceElectrical MaintenanceType = "electrical"
	MaintenanceOther      MaintenanceType = "other"
)

func (t MaintenanceType) Valid() bool {
	switch t {
	case MaintenancePreventive, MaintenanceCorrective, MaintenancePredictive,
		MaintenanceMechanical, MaintenanceElectrical, MaintenanceOther:
		return true
	}
	return false
}

type MaintenanceRecord struct {
	ID          int64           `json:"id"`
	VehicleID   int64           `json:"vehicle_id"`
	Type        MaintenanceType `json:"type"`
	Description string          `json:"description"`
	PerformedOn time.Time       `json:"performed_on"`
	OdometerKm  int             `json:"odometer_km"`
	Cost        utils.Money     `json:"cost"`
	Provider    string          `json:"provider,omitempty"`
	Workshop    string          `json:"workshop,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type MaintenanceInput struct {
	Type        string           `json:"type"`
	Description string           `json:"description"`
	PerformedOn string           `json:"performed_on"`
	OdometerKm  int              `json:"odometer_km"`
	Cost        utils.AmountText `json:"cost"`
	Provider    string           `json:"provider"`
	Workshop    string           `json:"workshop"`
	Notes       string           `json:"notes"`
}
