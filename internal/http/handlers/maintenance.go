package handlers

import (
	"net/http"

	"fleetops/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/vehicles/:id/maintenance
func GetMaintenanceRecords(c *gin.Context) {
	vehicleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	out, err := maintenanceService(c).List(c.Request.Context(), vehicleID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func GetMaintenanceRecord(c *gin.Context) {
	vehicleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	recordID, ok := paramID(c, "recordId")
	if !ok {
		return
	}
	m, err := maintenanceService(c).Get(c.Request.Context(), vehicleID, recordID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func CreateMaintenanceRecord(c *gin.Context) {
	vehicleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.MaintenanceInput
	if !BindJSONOrError(c, &in) {
		return
	}
	m, err := maintenanceService(c).Create(c.Request.Context(), vehicleID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func UpdateMaintenanceRecord(c *gin.Context) {
	vehicleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	recordID, ok := paramID(c, "recordId")
	if !ok {
		return
	}
	var in models.MaintenanceInput
	if !BindJSONOrError(c, &in) {
		return
	}
	m, err := maintenanceService(c).Update(c.Request.Context(), vehicleID, recordID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func DeleteMaintenanceRecord(c *gin.Context) {
	vehicleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	recordID, ok := paramID(c, "recordId")
	if !ok {
		return
	}
	if err := maintenanceService(c).Delete(c.Request.Context(), vehicleID, recordID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "data perawatan dihapus", "id": recordID})
}
