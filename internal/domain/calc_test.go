package domain

import (
	"testing"
	"time"

	"fleetops/internal/domain/models"
	"fleetops/internal/utils"

	"github.com/stretchr/testify/assert"
)

func TestComputeDocumentStatusBoundaries(t *testing.T) {
	today := time.Date(2025, 3, 10, 15, 30, 0, 0, time.Local)

	cases := []struct {
		name string
		days int
		want models.DocumentStatus
	}{
		{"one day past", -1, models.DocumentExpired},
		{"long past", -400, models.DocumentExpired},
		{"expires today", 0, models.DocumentExpiringSoon},
		{"tomorrow", 1, models.DocumentExpiringSoon},
		{"last day of window", 30, models.DocumentExpiringSoon},
		{"first day outside window", 31, models.DocumentValid},
		{"next year", 365, models.DocumentValid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expiry := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local).AddDate(0, 0, tc.days)
			assert.Equal(t, tc.want, ComputeDocumentStatus(expiry, today))
		})
	}
}

func TestDaysUntilIgnoresClock(t *testing.T) {
	today := time.Date(2025, 1, 1, 23, 59, 0, 0, time.Local)
	expiry := time.Date(2025, 1, 2, 0, 1, 0, 0, time.Local)
	assert.Equal(t, 1, DaysUntil(expiry, today))

	// across a month boundary and a leap day
	assert.Equal(t, 2, DaysUntil(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), time.Date(2024, 2, 28, 8, 0, 0, 0, time.Local)))
}

func TestComputeCostTotal(t *testing.T) {
	total := ComputeCostTotal(utils.Cents(10000), utils.Cents(2550), utils.Cents(1250), 0)
	assert.Equal(t, utils.Cents(13800), total)
	assert.Equal(t, "138.00", total.String())
}

func TestApplyCostTotalAndSumTolls(t *testing.T) {
	tolls := []models.Toll{{Amount: utils.Cents(500)}, {Amount: utils.Cents(750)}}
	c := models.TripCost{Fuel: utils.Cents(4000), Tolls: SumTolls(tolls), Total: utils.Cents(999999)}

	ApplyCostTotal(&c)

	assert.Equal(t, utils.Cents(1250), c.Tolls)
	assert.Equal(t, utils.Cents(5250), c.Total)
	assert.Equal(t, utils.Money(0), SumTolls(nil))
}
