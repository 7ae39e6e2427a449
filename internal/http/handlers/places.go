package handlers

import (
	"net/http"

	"fleetops/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/places?q=&page=&limit=
func GetPlaces(c *gin.Context) {
	f, ok := queryListFilter(c)
	if !ok {
		return
	}
	out, err := registryService(c).ListPlaces(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, out, f.Pagination)
}

// GET /api/places/:id
func GetPlaceByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rec, err := registryService(c).GetPlace(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// POST /api/places
func CreatePlace(c *gin.Context) {
	var in models.PlaceInput
	if !BindJSONOrError(c, &in) {
		return
	}
	rec, err := registryService(c).CreatePlace(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// PUT /api/places/:id
func UpdatePlace(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.PlaceInput
	if !BindJSONOrError(c, &in) {
		return
	}
	rec, err := registryService(c).UpdatePlace(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DELETE /api/places/:id
func DeletePlace(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := registryService(c).DeletePlace(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "place dihapus", "id": id})
}
