package handlers

import (
	"net/http"

	"fleetops/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/vehicles?status=active&q=&page=&limit=
func GetVehicles(c *gin.Context) {
	f, ok := queryListFilter(c)
	if !ok {
		return
	}
	out, err := registryService(c).ListVehicles(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, out, f.Pagination)
}

// GET /api/vehicles/:id
func GetVehicleByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rec, err := registryService(c).GetVehicle(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// POST /api/vehicles
func CreateVehicle(c *gin.Context) {
	var in models.VehicleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	rec, err := registryService(c).CreateVehicle(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// PUT /api/vehicles/:id
func UpdateVehicle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.VehicleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	rec, err := registryService(c).UpdateVehicle(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DELETE /api/vehicles/:id
func DeleteVehicle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := registryService(c).DeleteVehicle(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle dihapus", "id": id})
}
