package main

import (
	"context"
	"log/slog"
	"os"

	"hotel-booking/cmd/bootstrap"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// release mode unless GIN_MODE says otherwise, so a misconfigured deploy never exposes swagger
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

// @title           room-service
// @version         1.0
// @description     Room catalogue and availability status.

// @BasePath  /
// @schemes http https
func main() {
	app := fx.New(
		bootstrap.RoomServiceModule,
		fx.Invoke(bootstrap.StartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start room-service", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop room-service cleanly", "error", err)
	}

	slog.Info("room-service stopped")
}
