package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"fleetops/internal/domain/models"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"

	"github.com/gin-gonic/gin"
)

func queryTripFilter(c *gin.Context) (repositories.TripFilter, bool) {
	f := repositories.TripFilter{
		Status:     strings.TrimSpace(c.Query("status")),
		Pagination: queryPagination(c),
	}
	ids := []struct {
		name string
		dst  *int64
	}{
		{"vehicle_id", &f.VehicleID},
		{"driver_id", &f.DriverID},
	}
	for _, p := range ids {
		raw := strings.TrimSpace(c.Query(p.name))
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			RespondError(c, http.StatusBadRequest, p.name+" tidak valid", nil)
			return f, false
		}
		*p.dst = n
	}
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		t, err := utils.ParseDate(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "from harus YYYY-MM-DD", nil)
			return f, false
		}
		f.From = &t
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		t, err := utils.ParseDate(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "to harus YYYY-MM-DD", nil)
			return f, false
		}
		end := t.AddDate(0, 0, 1).Add(-1)
		f.To = &end
	}
	return f, true
}

// GET /api/trips?status=&vehicle_id=&driver_id=&from=&to=&page=&limit=
func GetTrips(c *gin.Context) {
	f, ok := queryTripFilter(c)
	if !ok {
		return
	}
	out, err := tripService(c).List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, out, f.Pagination)
}

// GET /api/trips/:id
func GetTripByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	t, err := tripService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var in models.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}
	t, err := tripService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// PUT /api/trips/:id
func UpdateTrip(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}
	t, err := tripService(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DELETE /api/trips/:id
func DeleteTrip(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := tripService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip dihapus", "id": id})
}

// GET /api/trips/:id/manifest returns the passenger manifest PDF (inline).
func GetTripManifest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := tripService(c).Manifest(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
