package domain

import (
	"time"

	"fleetops/internal/domain/models"
	"fleetops/internal/utils"
)

// ExpiringSoonDays is the inclusive window before expiry flagged as expiring soon.
const ExpiringSoonDays = 30

// DaysUntil counts whole calendar days from today to expiry. Negative once expired.
func DaysUntil(expiry, today time.Time) int {
	return int(utils.CivilDate(expiry).Sub(utils.CivilDate(today)).Hours() / 24)
}

// ComputeDocumentStatus applies the three-tier expiry rule:
// d < 0 expired, 0 <= d <= 30 expiring soon, otherwise valid.
func ComputeDocumentStatus(expiry, today time.Time) models.DocumentStatus {
	d := DaysUntil(expiry, today)
	switch {
	case d < 0:
		return models.DocumentExpired
	case d <= ExpiringSoonDays:
		return models.DocumentExpiringSoon
	default:
		return models.DocumentValid
	}
}

// ComputeCostTotal sums the cost components. Absent components are zero.
func ComputeCostTotal(fuel, maintenanceShare, tolls, otherCosts utils.Money) utils.Money {
	return fuel + maintenanceShare + tolls + otherCosts
}

// ApplyCostTotal refreshes c.Total from its components.
func ApplyCostTotal(c *models.TripCost) {
	c.Total = ComputeCostTotal(c.Fuel, c.MaintenanceShare, c.Tolls, c.OtherCosts)
}

// SumTolls adds up toll amounts.
func SumTolls(tolls []models.Toll) utils.Money {
	var sum utils.Money
	for _, t := range tolls {
		sum += t.Amount
	}
	return sum
}
