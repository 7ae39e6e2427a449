package handlers

import (
	"net/http"

	"fleetops/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/passengers?q=&page=&limit=
func GetPassengers(c *gin.Context) {
	f, ok := queryListFilter(c)
	if !ok {
		return
	}
	out, err := registryService(c).ListPassengers(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, out, f.Pagination)
}

// GET /api/passengers/:id
func GetPassengerByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rec, err := registryService(c).GetPassenger(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// POST /api/passengers
func CreatePassenger(c *gin.Context) {
	var in models.PassengerInput
	if !BindJSONOrError(c, &in) {
		return
	}
	rec, err := registryService(c).CreatePassenger(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// PUT /api/passengers/:id
func UpdatePassenger(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.PassengerInput
	if !BindJSONOrError(c, &in) {
		return
	}
	rec, err := registryService(c).UpdatePassenger(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DELETE /api/passengers/:id
func DeletePassenger(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := registryService(c).DeletePassenger(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "passenger dihapus", "id": id})
}
