package handlers

import (
	"net/http"

	"fleetops/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/drivers?active=true&q=&page=&limit=
func GetDrivers(c *gin.Context) {
	f, ok := queryListFilter(c)
	if !ok {
		return
	}
	out, err := registryService(c).ListDrivers(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, out, f.Pagination)
}

// GET /api/drivers/:id
func GetDriverByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	d, err := registryService(c).GetDriver(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// POST /api/drivers
func CreateDriver(c *gin.Context) {
	var in models.DriverInput
	if !BindJSONOrError(c, &in) {
		return
	}
	d, err := registryService(c).CreateDriver(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// PUT /api/drivers/:id
func UpdateDriver(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.DriverInput
	if !BindJSONOrError(c, &in) {
		return
	}
	d, err := registryService(c).UpdateDriver(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DELETE /api/drivers/:id
func DeleteDriver(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := registryService(c).DeleteDriver(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver dihapus", "id": id})
}
