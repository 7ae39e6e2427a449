package services

import (
	"context"
	"testing"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateMaintenanceRecord(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT COUNT(*) FROM vehicles WHERE id = ?")).WithArgs(int64(3)).WillReturnRows(countRow(1))
	mock.ExpectExec(q("INSERT INTO maintenance_records")).
		WithArgs(int64(3), "preventive", "Cambio de aceite", day(2024, 12, 20), 120500, "85.40", "Lubricadora Sur", nil, nil, fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	rec, err := MaintenanceService{DB: db, Now: clock}.Create(context.Background(), 3, models.MaintenanceInput{
		Type:        "Preventive",
		Description: "Cambio de aceite",
		PerformedOn: "2024-12-20",
		OdometerKm:  120500,
		Cost:        "85.40",
		Provider:    " Lubricadora  Sur ",
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if rec.ID != 2 || rec.Cost != utils.Cents(8540) {
		t.Fatalf("unexpected record %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMaintenanceValidation(t *testing.T) {
	svc := MaintenanceService{Now: clock}
	base := models.MaintenanceInput{Type: "corrective", Description: "Frenos", PerformedOn: "2024-12-20"}

	in := base
	in.OdometerKm = -1
	if _, err := svc.Create(context.Background(), 3, in); !domain.IsValidation(err) {
		t.Fatalf("negative odometer must fail validation, got %v", err)
	}

	in = base
	in.Cost = "-10"
	if _, err := svc.Create(context.Background(), 3, in); !domain.IsValidation(err) {
		t.Fatalf("negative cost must fail validation, got %v", err)
	}

	in = base
	in.Type = "cosmetic"
	if _, err := svc.Create(context.Background(), 3, in); !domain.IsValidation(err) {
		t.Fatalf("unknown type must fail validation, got %v", err)
	}
}

func TestDeleteMaintenanceRecordMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(q("DELETE FROM maintenance_records WHERE id = ? AND vehicle_id = ?")).
		WithArgs(int64(9), int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := (MaintenanceService{DB: db}).Delete(context.Background(), 3, 9); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
