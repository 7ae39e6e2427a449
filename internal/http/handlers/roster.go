package handlers

import (
	"net/http"

	"fleetops/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/:id/passengers
func GetTripPassengers(c *gin.Context) {
	tripID, ok := paramID(c, "id")
	if !ok {
		return
	}
	out, err := rosterService(c).List(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/trips/:id/passengers
func AddTripPassenger(c *gin.Context) {
	tripID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.RosterInput
	if !BindJSONOrError(c, &in) {
		return
	}
	tp, err := rosterService(c).Add(c.Request.Context(), tripID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tp)
}

// PUT /api/trips/:id/passengers/:passengerId
func UpdateTripPassenger(c *gin.Context) {
	tripID, ok := paramID(c, "id")
	if !ok {
		return
	}
	passengerID, ok := paramID(c, "passengerId")
	if !ok {
		return
	}
	var in models.RosterInput
	if !BindJSONOrError(c, &in) {
		return
	}
	tp, err := rosterService(c).Edit(c.Request.Context(), tripID, passengerID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tp)
}

// DELETE /api/trips/:id/passengers/:passengerId
func RemoveTripPassenger(c *gin.Context) {
	tripID, ok := paramID(c, "id")
	if !ok {
		return
	}
	passengerID, ok := paramID(c, "passengerId")
	if !ok {
		return
	}
	if err := rosterService(c).Remove(c.Request.Context(), tripID, passengerID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "penumpang dikeluarkan dari trip", "trip_id": tripID, "passenger_id": passengerID})
}
