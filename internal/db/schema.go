package db

import (
	"context"
	"fmt"
)

// Tables lists every table owned by the app, parents first.
var Tables = []string{
	"drivers",
	"places",
	"passengers",
	"vehicles",
	"vehicle_documents",
	"maintenance_records",
	"trips",
	"trip_passengers",
	"trip_costs",
	"tolls",
}

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS drivers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		national_id VARCHAR(20) NOT NULL,
		email VARCHAR(254) NOT NULL,
		phone VARCHAR(20) NOT NULL DEFAULT '',
		hire_date DATE NOT NULL,
		active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE KEY uq_drivers_national_id (national_id),
		UNIQUE KEY uq_drivers_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS places (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(150) NOT NULL,
		city VARCHAR(100) NOT NULL,
		province VARCHAR(100) NULL,
		country VARCHAR(100) NOT NULL DEFAULT 'Ecuador',
		latitude DECIMAL(9,6) NULL,
		longitude DECIMAL(9,6) NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS passengers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		full_name VARCHAR(200) NOT NULL,
		national_id VARCHAR(20) NOT NULL,
		phone VARCHAR(20) NOT NULL DEFAULT '',
		email VARCHAR(254) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE KEY uq_passengers_national_id (national_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS vehicles (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		plate VARCHAR(10) NOT NULL,
		brand VARCHAR(50) NULL,
		model VARCHAR(50) NOT NULL,
		manufacture_year INT NOT NULL,
		passenger_capacity INT NOT NULL,
		chassis_number VARCHAR(50) NOT NULL,
		engine_number VARCHAR(50) NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		acquisition_date DATE NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE KEY uq_vehicles_plate (plate),
		UNIQUE KEY uq_vehicles_chassis (chassis_number),
		UNIQUE KEY uq_vehicles_engine (engine_number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS vehicle_documents (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		vehicle_id BIGINT NOT NULL,
		type VARCHAR(30) NOT NULL,
		document_number VARCHAR(50) NOT NULL,
		issue_date DATE NOT NULL,
		expiry_date DATE NOT NULL,
		status VARCHAR(20) NOT NULL,
		attachment VARCHAR(255) NULL,
		notes TEXT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		KEY idx_vehicle_documents_expiry (expiry_date),
		CONSTRAINT fk_vehicle_documents_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS maintenance_records (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		vehicle_id BIGINT NOT NULL,
		type VARCHAR(20) NOT NULL,
		description TEXT NOT NULL,
		performed_on DATE NOT NULL,
		odometer_km INT NOT NULL DEFAULT 0,
		cost DECIMAL(10,2) NOT NULL DEFAULT 0,
		provider VARCHAR(150) NULL,
		workshop VARCHAR(150) NULL,
		notes TEXT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		CONSTRAINT fk_maintenance_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS trips (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		vehicle_id BIGINT NOT NULL,
		driver_id BIGINT NOT NULL,
		origin_place_id BIGINT NOT NULL,
		destination_place_id BIGINT NOT NULL,
		departure_at DATETIME NOT NULL,
		estimated_arrival_at DATETIME NOT NULL,
		actual_arrival_at DATETIME NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
		origin_lat DECIMAL(9,6) NULL,
		origin_lng DECIMAL(9,6) NULL,
		destination_lat DECIMAL(9,6) NULL,
		destination_lng DECIMAL(9,6) NULL,
		confirmed_passengers INT NOT NULL DEFAULT 0,
		notes TEXT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		KEY idx_trips_departure (departure_at),
		CONSTRAINT fk_trips_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles(id) ON DELETE RESTRICT,
		CONSTRAINT fk_trips_driver FOREIGN KEY (driver_id) REFERENCES drivers(id) ON DELETE RESTRICT,
		CONSTRAINT fk_trips_origin FOREIGN KEY (origin_place_id) REFERENCES places(id) ON DELETE RESTRICT,
		CONSTRAINT fk_trips_destination FOREIGN KEY (destination_place_id) REFERENCES places(id) ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS trip_passengers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		trip_id BIGINT NOT NULL,
		passenger_id BIGINT NOT NULL,
		seat VARCHAR(10) NULL,
		notes TEXT NULL,
		registered_at DATETIME NOT NULL,
		UNIQUE KEY uq_trip_passengers_pair (trip_id, passenger_id),
		CONSTRAINT fk_trip_passengers_trip FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE,
		CONSTRAINT fk_trip_passengers_passenger FOREIGN KEY (passenger_id) REFERENCES passengers(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS trip_costs (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		trip_id BIGINT NOT NULL,
		fuel DECIMAL(10,2) NOT NULL DEFAULT 0,
		maintenance_share DECIMAL(10,2) NOT NULL DEFAULT 0,
		tolls DECIMAL(10,2) NOT NULL DEFAULT 0,
		other_costs DECIMAL(10,2) NOT NULL DEFAULT 0,
		total DECIMAL(10,2) NOT NULL DEFAULT 0,
		net_profit DECIMAL(10,2) NULL,
		notes TEXT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE KEY uq_trip_costs_trip (trip_id),
		CONSTRAINT fk_trip_costs_trip FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS tolls (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		trip_id BIGINT NOT NULL,
		location VARCHAR(150) NOT NULL,
		amount DECIMAL(10,2) NOT NULL,
		paid_at DATETIME NOT NULL,
		receipt VARCHAR(50) NULL,
		created_at DATETIME NOT NULL,
		CONSTRAINT fk_tolls_trip FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates missing tables. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, conn DBTX) error {
	for i, ddl := range schemaDDL {
		if _, err := conn.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("ensure table %s: %w", Tables[i], err)
		}
	}
	return nil
}
