package handlers

import (
	"fleetops/internal/http/middleware"
	"fleetops/internal/services"
	"fleetops/internal/storage"

	"github.com/gin-gonic/gin"
)

var uploadStore = storage.LocalStore{Root: "uploads"}

// SetUploadDir points attachment uploads at dir.
func SetUploadDir(dir string) {
	uploadStore = storage.LocalStore{Root: dir}
}

// Services fall back to the shared DB in internal/config.
func registryService(c *gin.Context) services.RegistryService {
	return services.RegistryService{RequestID: middleware.GetRequestID(c)}
}

func documentService(c *gin.Context) services.DocumentService {
	return services.DocumentService{RequestID: middleware.GetRequestID(c)}
}

func maintenanceService(c *gin.Context) services.MaintenanceService {
	return services.MaintenanceService{RequestID: middleware.GetRequestID(c)}
}

func tripService(c *gin.Context) services.TripService {
	return services.TripService{RequestID: middleware.GetRequestID(c)}
}

func rosterService(c *gin.Context) services.RosterService {
	return services.RosterService{RequestID: middleware.GetRequestID(c)}
}

func costService(c *gin.Context) services.CostService {
	return services.CostService{RequestID: middleware.GetRequestID(c)}
}
