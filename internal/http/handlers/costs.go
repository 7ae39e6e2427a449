package handlers

import (
	"net/http"

	"fleetops/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/:id/costs creates an empty cost sheet on first access.
func GetTripCosts(c *gin.Context) {
	tripID, ok := paramID(c, "id")
	if !ok {
		return
	}
	cost, err := costService(c).GetOrCreate(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cost)
}

// PUT /api/trips/:id/costs
func UpdateTripCosts(c *gin.Context) {
	tripID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.CostInput
	if !BindJSONOrError(c, &in) {
		return
	}
	cost, err := costService(c).Update(c.Request.Context(), tripID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cost)
}

// GET /api/trips/:id/tolls
func GetTripTolls(c *gin.Context) {
	tripID, ok := paramID(c, "id")
	if !ok {
		return
	}
	out, err := costService(c).ListTolls(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/trips/:id/tolls
func AddTripToll(c *gin.Context) {
	tripID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.TollInput
	if !BindJSONOrError(c, &in) {
		return
	}
	toll, cost, err := costService(c).AddToll(c.Request.Context(), tripID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"toll": toll, "cost": cost})
}

// DELETE /api/trips/:id/tolls/:tollId
func DeleteTripToll(c *gin.Context) {
	tripID, ok := paramID(c, "id")
	if !ok {
		return
	}
	tollID, ok := paramID(c, "tollId")
	if !ok {
		return
	}
	cost, err := costService(c).RemoveToll(c.Request.Context(), tripID, tollID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tol dihapus", "cost": cost})
}
