package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"run-tracker/config"
	"run-tracker/handlers"
	"run-tracker/logger"
	"run-tracker/middleware"
	"run-tracker/services"
	"run-tracker/store"
	"run-tracker/utils"
	"run-tracker/workers"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()
	logger.SetLogLevel(cfg.Env)

	if cfg.DBDriver == "postgres" && cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := store.Open(cfg.DBDriver, cfg.DatabaseURL, cfg.Env == "production")
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}
	if err := store.Migrate(db); err != nil {
		log.Fatal("failed to migrate database:", err)
	}
	st := store.New(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runService := services.NewRunService(st)
	artifactService := services.NewArtifactService(st)
	positionService := services.NewPositionService(st, artifactService)
	challengeService := services.NewChallengeService(st)
	athleteService := services.NewAthleteService(st)

	// Optional latitude-band index for the artifact checker
	var indexScheduler gocron.Scheduler
	if cfg.ArtifactIndexRefresh > 0 {
		if err := artifactService.EnableIndex(ctx); err != nil {
			log.Fatal("failed to build artifact index:", err)
		}
		indexScheduler, err = artifactService.StartIndexScheduler(cfg.ArtifactIndexRefresh)
		if err != nil {
			log.Fatal("failed to start artifact index scheduler:", err)
		}
		logger.Info.Printf("✅ Artifact index enabled (refresh every %s)", cfg.ArtifactIndexRefresh)
	}

	var uploader handlers.PictureUploader
	if cfg.R2.Enabled() {
		pictures, err := utils.InitR2(ctx, cfg.R2)
		if err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
		uploader = pictures
	} else {
		logger.Warn.Println("⚠️  R2 is not configured — picture uploads disabled")
	}

	var syncWorker *workers.AthleteSyncWorker
	if cfg.IdentitySyncURL != "" {
		syncWorker = workers.NewAthleteSyncWorker(st, cfg.IdentitySyncURL, "/api/v1/public/profiles", cfg.IdentitySyncToken, cfg.IdentitySyncEvery)
		syncWorker.Start(ctx)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS,HEAD",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID",
		ExposeHeaders: "Content-Length, Content-Type, X-Request-ID",
		MaxAge:        86400,
	}))
	app.Use(middleware.GatewayAuth(cfg))
	app.Use(middleware.AthleteContextMiddleware())

	handlers.SetupRunRoutes(app, runService)
	handlers.SetupPositionRoutes(app, positionService)
	handlers.SetupChallengeRoutes(app, challengeService)
	handlers.SetupItemRoutes(app, artifactService, uploader)
	handlers.SetupUserRoutes(app, athleteService)
	handlers.SetupCompanyRoutes(app, cfg.Company)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Port)
	log.Printf("✅ CORS configured for origins: %s", cfg.AllowedOrigins)

	<-ctx.Done()
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if indexScheduler != nil {
		if err := indexScheduler.Shutdown(); err != nil {
			log.Printf("Scheduler shutdown error: %v", err)
		}
	}
	if syncWorker != nil {
		<-syncWorker.Done()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
