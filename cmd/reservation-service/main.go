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

// @title           reservation-service
// @version         1.0
// @description     Reservations, booked against the room-service.

// @BasePath  /
// @schemes http https
func main() {
	app := fx.New(
		bootstrap.ReservationServiceModule,
		fx.Invoke(bootstrap.StartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start reservation-service", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop reservation-service cleanly", "error", err)
	}

	slog.Info("reservation-service stopped")
}
