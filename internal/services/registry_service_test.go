package services

import (
	"context"
	"errors"
	"testing"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func driverInput() models.DriverInput {
	return models.DriverInput{
		FirstName:  "  María ",
		LastName:   "Paredes",
		NationalID: "1712345678",
		Email:      " Maria.Paredes@Example.com ",
		HireDate:   "2023-04-01",
	}
}

func vehicleRow(id int64, plate string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "plate", "brand", "model", "manufacture_year", "passenger_capacity",
		"chassis_number", "engine_number", "status", "acquisition_date", "created_at", "updated_at"}).
		AddRow(id, plate, "Hino", "AK8J", int64(2019), int64(40), "CH123", "", "active", fixedNow, fixedNow, fixedNow)
}

func TestCreateDriverNormalizesAndDefaultsActive(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT COUNT(*) FROM drivers WHERE national_id = ? AND id <> ?")).
		WithArgs("1712345678", int64(0)).WillReturnRows(countRow(0))
	mock.ExpectQuery(q("SELECT COUNT(*) FROM drivers WHERE email = ? AND id <> ?")).
		WithArgs("maria.paredes@example.com", int64(0)).WillReturnRows(countRow(0))
	mock.ExpectExec(q("INSERT INTO drivers")).
		WithArgs("María", "Paredes", "1712345678", "maria.paredes@example.com", "", sqlmock.AnyArg(), true, fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	d, err := RegistryService{DB: db, Now: clock}.CreateDriver(context.Background(), driverInput())
	require.NoError(t, err)
	assert.Equal(t, int64(4), d.ID)
	assert.True(t, d.Active)
	assert.Equal(t, "Paredes, María", d.FullName())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDriverDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT COUNT(*) FROM drivers WHERE national_id = ? AND id <> ?")).WillReturnRows(countRow(0))
	mock.ExpectQuery(q("SELECT COUNT(*) FROM drivers WHERE email = ? AND id <> ?")).WillReturnRows(countRow(1))
	mock.ExpectRollback()

	_, err := RegistryService{DB: db, Now: clock}.CreateDriver(context.Background(), driverInput())
	var uerr domain.UniqueConstraintError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "email", uerr.Field)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDriverDuplicateKeyRace(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT COUNT(*) FROM drivers WHERE national_id = ? AND id <> ?")).WillReturnRows(countRow(0))
	mock.ExpectQuery(q("SELECT COUNT(*) FROM drivers WHERE email = ? AND id <> ?")).WillReturnRows(countRow(0))
	mock.ExpectExec(q("INSERT INTO drivers")).WillReturnError(&mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'maria.paredes@example.com' for key 'drivers.uq_drivers_email'",
	})
	mock.ExpectRollback()

	_, err := RegistryService{DB: db, Now: clock}.CreateDriver(context.Background(), driverInput())
	var uerr domain.UniqueConstraintError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "email", uerr.Field)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDriverValidation(t *testing.T) {
	svc := RegistryService{Now: clock}
	cases := map[string]func(in *models.DriverInput){
		"first_name":  func(in *models.DriverInput) { in.FirstName = "  " },
		"national_id": func(in *models.DriverInput) { in.NationalID = "" },
		"email":       func(in *models.DriverInput) { in.Email = "not-an-email" },
		"hire_date":   func(in *models.DriverInput) { in.HireDate = "01/04/2023" },
	}
	for field, mutate := range cases {
		in := driverInput()
		mutate(&in)
		_, err := svc.CreateDriver(context.Background(), in)
		var verr domain.ValidationError
		require.True(t, errors.As(err, &verr), field)
		assert.Equal(t, field, verr.Field)
	}
}

func TestDeleteDriverAssignedToTrip(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM drivers WHERE id = ? LIMIT 1")).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "national_id", "email", "phone", "hire_date", "active", "created_at", "updated_at"}).
			AddRow(int64(2), "María", "Paredes", "1712345678", "m@example.com", "", fixedNow, true, fixedNow, fixedNow))
	mock.ExpectQuery(q("SELECT COUNT(*) FROM trips WHERE driver_id = ?")).WithArgs(int64(2)).WillReturnRows(countRow(3))
	mock.ExpectRollback()

	err := RegistryService{DB: db}.DeleteDriver(context.Background(), 2)
	assert.True(t, domain.IsReferentialIntegrity(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVehicleValidation(t *testing.T) {
	svc := RegistryService{Now: clock}
	base := models.VehicleInput{
		Plate: "pba-1234", Model: "AK8J", ManufactureYear: 2019, PassengerCapacity: 40,
		ChassisNumber: "ch123", AcquisitionDate: "2020-02-01",
	}

	in := base
	in.ManufactureYear = 2027
	_, err := svc.CreateVehicle(context.Background(), in)
	assert.True(t, domain.IsValidation(err), "year after next is rejected")

	in = base
	in.PassengerCapacity = 0
	_, err = svc.CreateVehicle(context.Background(), in)
	assert.True(t, domain.IsValidation(err))

	in = base
	in.Status = "scrapped"
	_, err = svc.CreateVehicle(context.Background(), in)
	assert.True(t, domain.IsValidation(err))
}

func TestDeleteVehicleAssignedToTrip(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM vehicles WHERE id = ? LIMIT 1")).WithArgs(int64(3)).WillReturnRows(vehicleRow(3, "PBA1234"))
	mock.ExpectQuery(q("SELECT COUNT(*) FROM trips WHERE vehicle_id = ?")).WithArgs(int64(3)).WillReturnRows(countRow(2))
	mock.ExpectRollback()

	err := RegistryService{DB: db}.DeleteVehicle(context.Background(), 3)
	require.Error(t, err)
	assert.Equal(t, domain.KindReferentialIntegrity, domain.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteVehicleCascadesDocumentsAndMaintenance(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM vehicles WHERE id = ? LIMIT 1")).WithArgs(int64(3)).WillReturnRows(vehicleRow(3, "PBA1234"))
	mock.ExpectQuery(q("SELECT COUNT(*) FROM trips WHERE vehicle_id = ?")).WithArgs(int64(3)).WillReturnRows(countRow(0))
	mock.ExpectExec(q("DELETE FROM vehicle_documents WHERE vehicle_id = ?")).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(q("DELETE FROM maintenance_records WHERE vehicle_id = ?")).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("DELETE FROM vehicles WHERE id = ?")).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, RegistryService{DB: db}.DeleteVehicle(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePassengerRecountsTheirTrips(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM passengers WHERE id = ? LIMIT 1")).WithArgs(int64(11)).
		WillReturnRows(passengerRow(11, "Ana Torres", "1712345678"))
	mock.ExpectQuery(q("SELECT DISTINCT trip_id FROM trip_passengers WHERE passenger_id = ?")).WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"trip_id"}).AddRow(int64(7)).AddRow(int64(9)))
	mock.ExpectQuery(q(lockTripSQL)).WithArgs(int64(7)).WillReturnRows(tripRow(7, 3, 5))
	mock.ExpectQuery(q(lockTripSQL)).WithArgs(int64(9)).WillReturnRows(tripRow(9, 3, 1))
	mock.ExpectExec(q("DELETE FROM trip_passengers WHERE passenger_id = ?")).WithArgs(int64(11)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(q("DELETE FROM passengers WHERE id = ?")).WithArgs(int64(11)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q(countRosterSQL)).WithArgs(int64(7)).WillReturnRows(countRow(4))
	mock.ExpectExec(q(updateCountSQL)).WithArgs(4, fixedNow, int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q(countRosterSQL)).WithArgs(int64(9)).WillReturnRows(countRow(0))
	mock.ExpectExec(q(updateCountSQL)).WithArgs(0, fixedNow, int64(9)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, RegistryService{DB: db, Now: clock}.DeletePassenger(context.Background(), 11))
	require.NoError(t, mock.ExpectationsWereMet())
}

const countByPlaceSQL = "SELECT COUNT(*) FROM trips WHERE origin_place_id = ? OR destination_place_id = ?"

func TestDeletePlaceUsedByTrip(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM places WHERE id = ? LIMIT 1")).WithArgs(int64(2)).
		WillReturnRows(placeRow(2, "Quito", -0.2, -78.5))
	mock.ExpectQuery(q(countByPlaceSQL)).WithArgs(int64(2), int64(2)).WillReturnRows(countRow(1))
	mock.ExpectRollback()

	err := RegistryService{DB: db}.DeletePlace(context.Background(), 2)
	require.Error(t, err)
	assert.Equal(t, domain.KindReferentialIntegrity, domain.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUnusedPlace(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM places WHERE id = ? LIMIT 1")).WithArgs(int64(4)).
		WillReturnRows(placeRow(4, "Ambato", nil, nil))
	mock.ExpectQuery(q(countByPlaceSQL)).WithArgs(int64(4), int64(4)).WillReturnRows(countRow(0))
	mock.ExpectExec(q("DELETE FROM places WHERE id = ?")).WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, RegistryService{DB: db}.DeletePlace(context.Background(), 4))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPlaceNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q("FROM places WHERE id = ? LIMIT 1")).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := RegistryService{DB: db}.GetPlace(context.Background(), 5)
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
