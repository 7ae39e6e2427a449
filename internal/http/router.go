package api

import (
	stdhttp "net/http"

	intconfig "fleetops/internal/config"
	h "fleetops/internal/http/handlers"
	"fleetops/internal/http/middleware"
	"fleetops/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(env.CORSAllowedOrigins),
		middleware.Metrics(),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Log.WithError(err).Warn("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)
	}

	secured := api.Group("", middleware.RateLimit(env.RateLimitPerMinute), middleware.BearerAuth(env.JWTSecret))
	{
		drivers := secured.Group("/drivers")
		drivers.GET("", h.GetDrivers)
		drivers.POST("", h.CreateDriver)
		drivers.GET("/:id", h.GetDriverByID)
		drivers.PUT("/:id", h.UpdateDriver)
		drivers.DELETE("/:id", h.DeleteDriver)

		places := secured.Group("/places")
		places.GET("", h.GetPlaces)
		places.POST("", h.CreatePlace)
		places.GET("/:id", h.GetPlaceByID)
		places.PUT("/:id", h.UpdatePlace)
		places.DELETE("/:id", h.DeletePlace)

		passengers := secured.Group("/passengers")
		passengers.GET("", h.GetPassengers)
		passengers.POST("", h.CreatePassenger)
		passengers.GET("/:id", h.GetPassengerByID)
		passengers.PUT("/:id", h.UpdatePassenger)
		passengers.DELETE("/:id", h.DeletePassenger)

		vehicles := secured.Group("/vehicles")
		vehicles.GET("", h.GetVehicles)
		vehicles.POST("", h.CreateVehicle)
		vehicles.GET("/:id", h.GetVehicleByID)
		vehicles.PUT("/:id", h.UpdateVehicle)
		vehicles.DELETE("/:id", h.DeleteVehicle)
		mountVehicleDocuments(vehicles.Group("/:id/documents"))
		mountMaintenance(vehicles.Group("/:id/maintenance"))

		documents := secured.Group("/documents")
		documents.GET("/expiring", h.GetExpiringDocuments)
		documents.POST("/refresh-status", h.RefreshDocumentStatuses)

		trips := secured.Group("/trips")
		trips.GET("", h.GetTrips)
		trips.POST("", h.CreateTrip)
		trips.GET("/:id", h.GetTripByID)
		trips.PUT("/:id", h.UpdateTrip)
		trips.DELETE("/:id", h.DeleteTrip)
		trips.GET("/:id/manifest", h.GetTripManifest)

		trips.GET("/:id/passengers", h.GetTripPassengers)
		trips.POST("/:id/passengers", h.AddTripPassenger)
		trips.PUT("/:id/passengers/:passengerId", h.UpdateTripPassenger)
		trips.DELETE("/:id/passengers/:passengerId", h.RemoveTripPassenger)

		trips.GET("/:id/costs", h.GetTripCosts)
		trips.PUT("/:id/costs", h.UpdateTripCosts)
		trips.GET("/:id/tolls", h.GetTripTolls)
		trips.POST("/:id/tolls", h.AddTripToll)
		trips.DELETE("/:id/tolls/:tollId", h.DeleteTripToll)
	}

	h.SetUploadDir(env.UploadDir)
	h.SetRouter(r)
	return r
}

func mountVehicleDocuments(g *gin.RouterGroup) {
	g.GET("", h.GetVehicleDocuments)
	g.POST("", h.CreateVehicleDocument)
	g.GET("/:docId", h.GetVehicleDocument)
	g.PUT("/:docId", h.UpdateVehicleDocument)
	g.DELETE("/:docId", h.DeleteVehicleDocument)
	g.POST("/:docId/attachment", h.UploadVehicleDocumentAttachment)
}

func mountMaintenance(g *gin.RouterGroup) {
	g.GET("", h.GetMaintenanceRecords)
	g.POST("", h.CreateMaintenanceRecord)
	g.GET("/:recordId", h.GetMaintenanceRecord)
	g.PUT("/:recordId", h.UpdateMaintenanceRecord)
	g.DELETE("/:recordId", h.DeleteMaintenanceRecord)
}
