package services

import (
	"context"
	"testing"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterAddRecountsConfirmedPassengers(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(lockTripSQL)).WithArgs(int64(7)).WillReturnRows(tripRow(7, 3, 12))
	mock.ExpectQuery(q("FROM passengers WHERE id = ? LIMIT 1")).WithArgs(int64(11)).
		WillReturnRows(passengerRow(11, "Ana Torres", "1712345678"))
	mock.ExpectQuery(q(rosterExistsSQL)).WithArgs(int64(7), int64(11)).WillReturnRows(countRow(0))
	mock.ExpectQuery(q(vehicleCapSQL)).WithArgs(int64(3)).WillReturnRows(countRow(40))
	mock.ExpectQuery(q(countRosterSQL)).WithArgs(int64(7)).WillReturnRows(countRow(12))
	mock.ExpectExec(q("INSERT INTO trip_passengers")).
		WithArgs(int64(7), int64(11), "A1", nil, fixedNow).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery(q(countRosterSQL)).WithArgs(int64(7)).WillReturnRows(countRow(13))
	mock.ExpectExec(q(updateCountSQL)).WithArgs(13, fixedNow, int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := RosterService{DB: db, Now: clock}
	tp, err := svc.Add(context.Background(), 7, models.RosterInput{PassengerID: 11, Seat: " a1 "})
	require.NoError(t, err)
	assert.Equal(t, int64(5), tp.ID)
	assert.Equal(t, "A1", tp.Seat)
	assert.Equal(t, "Ana Torres", tp.PassengerName)
	assert.Equal(t, fixedNow, tp.RegisteredAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterAddRejectsDuplicateRegistration(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(lockTripSQL)).WithArgs(int64(7)).WillReturnRows(tripRow(7, 3, 1))
	mock.ExpectQuery(q("FROM passengers WHERE id = ? LIMIT 1")).WithArgs(int64(11)).
		WillReturnRows(passengerRow(11, "Ana Torres", "1712345678"))
	mock.ExpectQuery(q(rosterExistsSQL)).WithArgs(int64(7), int64(11)).WillReturnRows(countRow(1))
	mock.ExpectRollback()

	_, err := RosterService{DB: db, Now: clock}.Add(context.Background(), 7, models.RosterInput{PassengerID: 11})
	require.Error(t, err)
	assert.Equal(t, domain.KindAlreadyRegistered, domain.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterAddRejectsFullTrip(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(lockTripSQL)).WithArgs(int64(7)).WillReturnRows(tripRow(7, 3, 40))
	mock.ExpectQuery(q("FROM passengers WHERE id = ? LIMIT 1")).WithArgs(int64(41)).
		WillReturnRows(passengerRow(41, "Luis Mena", "0923456789"))
	mock.ExpectQuery(q(rosterExistsSQL)).WithArgs(int64(7), int64(41)).WillReturnRows(countRow(0))
	mock.ExpectQuery(q(vehicleCapSQL)).WithArgs(int64(3)).WillReturnRows(countRow(40))
	mock.ExpectQuery(q(countRosterSQL)).WithArgs(int64(7)).WillReturnRows(countRow(40))
	mock.ExpectRollback()

	_, err := RosterService{DB: db, Now: clock}.Add(context.Background(), 7, models.RosterInput{PassengerID: 41})
	require.Error(t, err)
	assert.True(t, domain.IsCapacityExceeded(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterAddUnknownTripOrPassenger(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(lockTripSQL)).WithArgs(int64(99)).WillReturnRows(sqlmock.NewRows(tripCols))
	mock.ExpectRollback()

	_, err := RosterService{DB: db}.Add(context.Background(), 99, models.RosterInput{PassengerID: 1})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Contains(t, err.Error(), "trip 99")

	mock.ExpectBegin()
	mock.ExpectQuery(q(lockTripSQL)).WithArgs(int64(7)).WillReturnRows(tripRow(7, 3, 0))
	mock.ExpectQuery(q("FROM passengers WHERE id = ? LIMIT 1")).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err = RosterService{DB: db}.Add(context.Background(), 7, models.RosterInput{PassengerID: 5})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Contains(t, err.Error(), "passenger 5")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterAddRequiresPassengerID(t *testing.T) {
	_, err := RosterService{}.Add(context.Background(), 7, models.RosterInput{})
	assert.True(t, domain.IsValidation(err))
}

func TestRosterRemove(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(lockTripSQL)).WithArgs(int64(7)).WillReturnRows(tripRow(7, 3, 2))
	mock.ExpectExec(q("DELETE FROM trip_passengers WHERE trip_id = ? AND passenger_id = ?")).
		WithArgs(int64(7), int64(11)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q(countRosterSQL)).WithArgs(int64(7)).WillReturnRows(countRow(1))
	mock.ExpectExec(q(updateCountSQL)).WithArgs(1, fixedNow, int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, RosterService{DB: db, Now: clock}.Remove(context.Background(), 7, 11))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRemoveNotRegistered(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(lockTripSQL)).WithArgs(int64(7)).WillReturnRows(tripRow(7, 3, 2))
	mock.ExpectExec(q("DELETE FROM trip_passengers WHERE trip_id = ? AND passenger_id = ?")).
		WithArgs(int64(7), int64(12)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := RosterService{DB: db, Now: clock}.Remove(context.Background(), 7, 12)
	assert.True(t, domain.IsNotRegistered(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterEditKeepsCount(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(lockTripSQL)).WithArgs(int64(7)).WillReturnRows(tripRow(7, 3, 2))
	mock.ExpectQuery(q("FROM trip_passengers tp")).WithArgs(int64(7), int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "trip_id", "passenger_id", "seat", "notes", "registered_at", "full_name", "national_id"}).
			AddRow(int64(5), int64(7), int64(11), "A1", "", fixedNow, "Ana Torres", "1712345678"))
	mock.ExpectExec(q("UPDATE trip_passengers SET seat = ?, notes = ? WHERE trip_id = ? AND passenger_id = ?")).
		WithArgs("B4", "window", int64(7), int64(11)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tp, err := RosterService{DB: db}.Edit(context.Background(), 7, 11, models.RosterInput{Seat: "b4", Notes: " window "})
	require.NoError(t, err)
	assert.Equal(t, "B4", tp.Seat)
	assert.Equal(t, "window", tp.Notes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterEditNotRegistered(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(lockTripSQL)).WithArgs(int64(7)).WillReturnRows(tripRow(7, 3, 2))
	mock.ExpectQuery(q("FROM trip_passengers tp")).WithArgs(int64(7), int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := RosterService{DB: db}.Edit(context.Background(), 7, 11, models.RosterInput{Seat: "C1"})
	assert.True(t, domain.IsNotRegistered(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterListUnknownTrip(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q("SELECT COUNT(*) FROM trips WHERE id = ?")).WithArgs(int64(3)).WillReturnRows(countRow(0))

	_, err := RosterService{DB: db}.List(context.Background(), 3)
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
