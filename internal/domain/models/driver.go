package models

import "time"

// Driver is a fleet driver. National ID and email are unique.
type Driver struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	NationalID string    `json:"national_id"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	HireDate   time.Time `json:"hire_date"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (d Driver) FullName() string {
	return d.LastName + ", " + d.FirstName
}

// DriverInput is the raw create/update payload.
type DriverInput struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	NationalID string `json:"national_id"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	HireDate   string `json:"hire_date"`
	Active     *bool  `json:"active"`
}
