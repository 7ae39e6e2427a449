package handlers

import (
	"net/http"
	"sync"

	intconfig "fleetops/internal/config"
	intdb "fleetops/internal/db"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "fleetops berjalan"})
}

// DBCheck pings the database and reports tables that are still missing.
func DBCheck(c *gin.Context) {
	if err := intconfig.PingDB(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database belum terhubung: " + err.Error()})
		return
	}
	missing := intdb.MissingTables(c.Request.Context(), intconfig.DB, intdb.Tables...)
	c.JSON(http.StatusOK, gin.H{
		"message":        "koneksi database OK",
		"missing_tables": missing,
	})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router belum siap"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
