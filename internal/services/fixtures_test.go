package services

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var fixedNow = time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)

func clock() time.Time { return fixedNow }

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

func countRow(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"n"}).AddRow(n)
}

var tripCols = []string{"id", "vehicle_id", "driver_id", "origin_place_id", "destination_place_id", "departure_at",
	"estimated_arrival_at", "actual_arrival_at", "status", "origin_lat", "origin_lng", "destination_lat",
	"destination_lng", "confirmed_passengers", "notes", "created_at", "updated_at"}

// tripRow is a scheduled trip from place 1 to place 2 driven by driver 2.
func tripRow(id, vehicleID int64, confirmed int) *sqlmock.Rows {
	dep := time.Date(2025, 1, 5, 6, 0, 0, 0, time.Local)
	return sqlmock.NewRows(tripCols).AddRow(id, vehicleID, int64(2), int64(1), int64(2), dep, dep.Add(4*time.Hour),
		nil, "scheduled", 10.5, -20.3, -0.2, -78.5, int64(confirmed), "", fixedNow, fixedNow)
}

func passengerRow(id int64, name, nationalID string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "full_name", "national_id", "phone", "email", "created_at", "updated_at"}).
		AddRow(id, name, nationalID, "", "", fixedNow, fixedNow)
}

func placeRow(id int64, name string, lat, lng any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "city", "province", "country", "latitude", "longitude", "created_at", "updated_at"}).
		AddRow(id, name, name, "", "Ecuador", lat, lng, fixedNow, fixedNow)
}

var costCols = []string{"id", "trip_id", "fuel", "maintenance_share", "tolls", "other_costs", "total", "net_profit", "notes", "created_at", "updated_at"}

func costRow(id, tripID int64, fuel, share, tolls, other, total string) *sqlmock.Rows {
	return sqlmock.NewRows(costCols).AddRow(id, tripID, fuel, share, tolls, other, total, nil, "", fixedNow, fixedNow)
}

var tollCols = []string{"id", "trip_id", "location", "amount", "paid_at", "receipt", "created_at"}

const (
	lockTripSQL     = "FROM trips WHERE id = ? LIMIT 1 FOR UPDATE"
	countRosterSQL  = "SELECT COUNT(DISTINCT passenger_id) FROM trip_passengers WHERE trip_id = ?"
	updateCountSQL  = "UPDATE trips SET confirmed_passengers = ?, updated_at = ? WHERE id = ?"
	costByTripSQL   = "FROM trip_costs WHERE trip_id = ? LIMIT 1"
	tollsByTripSQL  = "FROM tolls WHERE trip_id = ? ORDER BY paid_at ASC, id ASC"
	updateCostSQL   = "UPDATE trip_costs"
	vehicleCapSQL   = "SELECT passenger_capacity FROM vehicles WHERE id = ? LIMIT 1"
	rosterExistsSQL = "SELECT COUNT(*) FROM trip_passengers WHERE trip_id = ? AND passenger_id = ?"
)
