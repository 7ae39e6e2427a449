package services

import (
	"context"
	"testing"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tollRows(amounts ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows(tollCols)
	for i, a := range amounts {
		rows.AddRow(int64(i+1), int64(7), "Peaje", a, fixedNow.Add(time.Duration(i)*time.Hour), "", fixedNow)
	}
	return rows
}

func TestCostGetOrCreateInsertsZeroSheet(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(lockTripSQL)).WithArgs(int64(7)).WillReturnRows(tripRow(7, 3, 0))
	mock.ExpectQuery(q(costByTripSQL)).WithArgs(int64(7)).WillReturnRows(sqlmock.NewRows(costCols))
	mock.ExpectExec(q("INSERT INTO trip_costs")).
		WithArgs(int64(7), "0.00", "0.00", "0.00", "0.00", "0.00", nil, nil, fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	c, err := CostService{DB: db, Now: clock}.GetOrCreate(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.ID)
	assert.Equal(t, utils.Money(0), c.Total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCostGetOrCreateUnknownTrip(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(lockTripSQL)).WithArgs(int64(8)).WillReturnRows(sqlmock.NewRows(tripCols))
	mock.ExpectRollback()

	_, err := CostService{DB: db}.GetOrCreate(context.Background(), 8)
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCostAddTollRecomputesTollsAndTotal(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(lockTripSQL)).WithArgs(int64(7)).WillReturnRows(tripRow(7, 3, 0))
	mock.ExpectExec(q("INSERT INTO tolls")).
		WithArgs(int64(7), "Peaje Machachi", "7.50", fixedNow, nil, fixedNow).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectQuery(q(costByTripSQL)).WithArgs(int64(7)).
		WillReturnRows(costRow(3, 7, "10.00", "0.00", "5.00", "0.00", "15.00"))
	mock.ExpectQuery(q(tollsByTripSQL)).WithArgs(int64(7)).WillReturnRows(tollRows("5.00", "7.50"))
	mock.ExpectExec(q(updateCostSQL)).
		WithArgs("10.00", "0.00", "12.50", "0.00", "22.50", nil, nil, fixedNow, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	toll, c, err := CostService{DB: db, Now: clock}.AddToll(context.Background(), 7, models.TollInput{
		Location: "  Peaje   Machachi ",
		Amount:   "7.50",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), toll.ID)
	assert.Equal(t, fixedNow, toll.PaidAt)
	assert.Equal(t, "12.50", c.Tolls.String())
	assert.Equal(t, "22.50", c.Total.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCostRemoveTollRecomputes(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(lockTripSQL)).WithArgs(int64(7)).WillReturnRows(tripRow(7, 3, 0))
	mock.ExpectExec(q("DELETE FROM tolls WHERE id = ? AND trip_id = ?")).
		WithArgs(int64(1), int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q(costByTripSQL)).WithArgs(int64(7)).
		WillReturnRows(costRow(3, 7, "0.00", "0.00", "12.50", "0.00", "12.50"))
	mock.ExpectQuery(q(tollsByTripSQL)).WithArgs(int64(7)).WillReturnRows(tollRows("7.50"))
	mock.ExpectExec(q(updateCostSQL)).
		WithArgs("0.00", "0.00", "7.50", "0.00", "7.50", nil, nil, fixedNow, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, err := CostService{DB: db, Now: clock}.RemoveToll(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Equal(t, utils.Cents(750), c.Tolls)
	assert.Equal(t, utils.Cents(750), c.Total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCostRemoveTollFromAnotherTrip(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(lockTripSQL)).WithArgs(int64(7)).WillReturnRows(tripRow(7, 3, 0))
	mock.ExpectExec(q("DELETE FROM tolls WHERE id = ? AND trip_id = ?")).
		WithArgs(int64(40), int64(7)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := CostService{DB: db}.RemoveToll(context.Background(), 7, 40)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Contains(t, err.Error(), "toll 40")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCostUpdateResetsOmittedComponents(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(lockTripSQL)).WithArgs(int64(7)).WillReturnRows(tripRow(7, 3, 0))
	mock.ExpectQuery(q(costByTripSQL)).WithArgs(int64(7)).
		WillReturnRows(costRow(3, 7, "10.00", "3.00", "5.00", "2.00", "20.00"))
	mock.ExpectExec(q(updateCostSQL)).
		WithArgs("20.00", "0.00", "5.00", "0.00", "25.00", "-4.10", nil, fixedNow, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, err := CostService{DB: db, Now: clock}.Update(context.Background(), 7, models.CostInput{
		Fuel:      "20.00",
		NetProfit: "-4.10",
	})
	require.NoError(t, err)
	assert.Equal(t, utils.Cents(0), c.MaintenanceShare)
	assert.Equal(t, utils.Cents(0), c.OtherCosts)
	assert.Equal(t, utils.Cents(500), c.Tolls)
	assert.Equal(t, utils.Cents(2500), c.Total)
	require.NotNil(t, c.NetProfit)
	assert.Equal(t, utils.Cents(-410), *c.NetProfit)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCostAmountValidation(t *testing.T) {
	svc := CostService{}
	ctx := context.Background()

	for _, amount := range []utils.AmountText{"", "abc", "-1.00", "12.345", "100000000.00", "184467440737095517.00"} {
		_, _, err := svc.AddToll(ctx, 7, models.TollInput{Location: "Peaje Alóag", Amount: amount})
		assert.True(t, domain.IsValidation(err), "amount %q", amount)
	}

	_, _, err := svc.AddToll(ctx, 7, models.TollInput{Amount: "1.00"})
	assert.True(t, domain.IsValidation(err), "missing location")

	_, err = svc.Update(ctx, 7, models.CostInput{Fuel: "-2"})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Update(ctx, 7, models.CostInput{OtherCosts: "99999999999.99"})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Update(ctx, 7, models.CostInput{NetProfit: "lots"})
	assert.True(t, domain.IsValidation(err))
}

func TestCostListTolls(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(q("SELECT COUNT(*) FROM trips WHERE id = ?")).WithArgs(int64(7)).WillReturnRows(countRow(1))
	mock.ExpectQuery(q(tollsByTripSQL)).WithArgs(int64(7)).WillReturnRows(tollRows("5.00", "7.50"))

	tolls, err := CostService{DB: db}.ListTolls(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, tolls, 2)
	assert.Equal(t, utils.Money(750), tolls[1].Amount)
	assert.Equal(t, utils.Money(1250), domain.SumTolls(tolls))

	mock.ExpectQuery(q("SELECT COUNT(*) FROM trips WHERE id = ?")).WithArgs(int64(9)).WillReturnRows(countRow(0))
	_, err = CostService{DB: db}.ListTolls(context.Background(), 9)
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
