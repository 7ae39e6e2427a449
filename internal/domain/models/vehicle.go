package models

import "time"

type VehicleStatus string

const (
	VehicleActive      VehicleStatus = "active"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleInactive    VehicleStatus = "inactive"
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleActive, VehicleMaintenance, VehicleInactive:
		return true
	}
	return false
}

// Vehicle is a bus of the fleet. Plate, chassis and engine number are unique;
// an empty engine number is stored as NULL.
type Vehicle struct {
	ID                int64         `json:"id"`
	Plate             string        `json:"plate"`
	Brand             string        `json:"brand,omitempty"`
	Model             string        `json:"model"`
	ManufactureYear   int           `json:"manufacture_year"`
	PassengerCapacity int           `json:"passenger_capacity"`
	ChassisNumber     string        `json:"chassis_number"`
	EngineNumber      string        `json:"engine_number,omitempty"`
	Status            VehicleStatus `json:"status"`
	AcquisitionDate   time.Time     `json:"acquisition_date"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

type VehicleInput struct {
	Plate             string `json:"plate"`
	Brand             string `json:"brand"`
	Model             string `json:"model"`
	ManufactureYear   int    `json:"manufacture_year"`
	PassengerCapacity int    `json:"passenger_capacity"`
	ChassisNumber     string `json:"chassis_number"`
	EngineNumber      string `json:"engine_number"`
	Status            string `json:"status"`
	AcquisitionDate   string `json:"acquisition_date"`
}
