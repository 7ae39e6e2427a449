package models

import "time"

type TripStatus string

const (
	TripScheduled  TripStatus = "scheduled"
	TripInProgress TripStatus = "in_progress"
	TripCompleted  TripStatus = "completed"
	TripCancelled  TripStatus = "cancelled"
)

func (s TripStatus) Valid() bool {
	switch s {
	case TripScheduled, TripInProgress, TripCompleted, TripCancelled:
		return true
	}
	return false
}

// Trip links a vehicle, a driver and two places. Coordinates are copied from
// the places when they are set; ConfirmedPassengers mirrors the roster size.
type Trip struct {
	ID                  int64      `json:"id"`
	VehicleID           int64      `json:"vehicle_id"`
	DriverID            int64      `json:"driver_id"`
	OriginPlaceID       int64      `json:"origin_place_id"`
	DestinationPlaceID  int64      `json:"destination_place_id"`
	DepartureAt         time.Time  `json:"departure_at"`
	EstimatedArrivalAt  time.Time  `json:"estimated_arrival_at"`
	ActualArrivalAt     *time.Time `json:"actual_arrival_at,omitempty"`
	Status              TripStatus `json:"status"`
	OriginLat           *float64   `json:"origin_lat,omitempty"`
	OriginLng           *float64   `json:"origin_lng,omitempty"`
	DestinationLat      *float64   `json:"destination_lat,omitempty"`
	DestinationLng      *float64   `json:"destination_lng,omitempty"`
	ConfirmedPassengers int        `json:"confirmed_passengers"`
	Notes               string     `json:"notes,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type TripInput struct {
	VehicleID          int64  `json:"vehicle_id"`
	DriverID           int64  `json:"driver_id"`
	OriginPlaceID      int64  `json:"origin_place_id"`
	DestinationPlaceID int64  `json:"destination_place_id"`
	DepartureAt        string `json:"departure_at"`
	EstimatedArrivalAt string `json:"estimated_arrival_at"`
	ActualArrivalAt    string `json:"actual_arrival_at"`
	Status             string `json:"status"`
	Notes              string `json:"notes"`
}

// TripPassenger is one roster entry; (TripID, PassengerID) is unique.
type TripPassenger struct {
	ID           int64     `json:"id"`
	TripID       int64     `json:"trip_id"`
	PassengerID  int64     `json:"passenger_id"`
	Seat         string    `json:"seat,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`

	PassengerName string `json:"passenger_name,omitempty"`
	NationalID    string `json:"national_id,omitempty"`
}

type RosterInput struct {
	PassengerID int64  `json:"passenger_id"`
	Seat        string `json:"seat"`
	Notes       string `json:"notes"`
}
