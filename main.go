package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "fleetops/internal/config"
	intdb "fleetops/internal/db"
	router "fleetops/internal/http"
	"fleetops/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	env, err := intconfig.LoadEnv()
	utils.ConfigureLogger(env.LogLevel)
	if err != nil {
		utils.Log.WithError(err).Fatal("konfigurasi tidak valid")
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		utils.Log.WithError(err).Fatal("Gagal konek ke database")
	}
	defer intconfig.CloseDB()

	if env.Migrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := intdb.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			utils.Log.WithError(err).Fatal("Gagal menyiapkan schema")
		}
		utils.Log.Info("schema siap")
	}

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.Log.Infof("Server berjalan di http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Log.WithError(err).Fatal("Gagal menjalankan server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	utils.Log.Info("Mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Log.WithError(err).Error("Shutdown server gagal")
		return
	}

	utils.Log.Info("Server berhenti dengan aman.")
}
