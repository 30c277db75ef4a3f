package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/renewbay/renewbay-backend/api/routes"
	authsvc "github.com/renewbay/renewbay-backend/internal/auth"
	"github.com/renewbay/renewbay-backend/internal/catalog"
	"github.com/renewbay/renewbay-backend/internal/orders"
	"github.com/renewbay/renewbay-backend/internal/repairs"
	"github.com/renewbay/renewbay-backend/internal/sellrequests"
	"github.com/renewbay/renewbay-backend/internal/users"
	"github.com/renewbay/renewbay-backend/pkg/config"
	"github.com/renewbay/renewbay-backend/pkg/db"
	"github.com/renewbay/renewbay-backend/pkg/logger"
	"github.com/renewbay/renewbay-backend/pkg/migrate"
	"github.com/renewbay/renewbay-backend/pkg/redis"
	"github.com/renewbay/renewbay-backend/pkg/uploads"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(catalogRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient, catalogRepo, catalog.NewAdjuster(catalogRepo))
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	repairsService, err := repairs.NewService(repairs.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create repairs service", err)
		os.Exit(1)
	}

	sellRequestsService, err := sellrequests.NewService(sellrequests.NewRepository(dbClient.DB()), dbClient, catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create sell requests service", err)
		os.Exit(1)
	}

	uploadSink, err := uploads.NewDiskSink(cfg.Uploads.Dir)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare uploads dir", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			authService,
			catalogService,
			ordersService,
			repairsService,
			sellRequestsService,
			uploadSink,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
