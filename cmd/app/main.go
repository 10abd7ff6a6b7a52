package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/safatanc/hotel-audit-core/injector"
	"github.com/safatanc/hotel-audit-core/internal/app/pkg"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
	"github.com/sirupsen/logrus"
)

func main() {
	infrastructures.LoadConfig()
	infrastructures.ConfigureLogger()

	app, err := injector.InitializeApplication()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Fiber configuration
	config := fiber.Config{
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 90,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024,
		ErrorHandler: pkg.ErrorResponse,
	}

	router := fiber.New(config)

	router.Use(cors.New(cors.Config{
		AllowOrigins:     infrastructures.Config.CORS_ORIGINS,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: infrastructures.Config.CORS_ORIGINS != "*",
		ExposeHeaders:    "Content-Length, Content-Disposition",
		MaxAge:           300,
	}))

	app.RegisterRoutes(router)

	app.MaintenanceService.StartScheduler(ctx, infrastructures.Config.SCHEDULE_SWEEP_INTERVAL)

	go func() {
		<-ctx.Done()
		if err := router.ShutdownWithTimeout(10 * time.Second); err != nil {
			logrus.Errorf("Failed to shut down server: %v", err)
		}
	}()

	if err := router.Listen(":" + infrastructures.Config.PORT); err != nil {
		logrus.Fatal(err)
	}
}
