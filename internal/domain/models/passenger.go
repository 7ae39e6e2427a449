package models

import "time"

type Passenger struct {
	ID         int64     `json:"id"`
	FullName   string    `json:"full_name"`
	NationalID string    `json:"national_id"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PassengerInput struct {
	FullName   string `json:"full_name"`
	NationalID string `json:"national_id"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}
