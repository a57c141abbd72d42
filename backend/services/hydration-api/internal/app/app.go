package app

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libredis "hydrohero/backend/libs/redis"
	"hydrohero/backend/services/hydration-api/internal/clients"
	"hydrohero/backend/services/hydration-api/internal/config"
	"hydrohero/backend/services/hydration-api/internal/db"
	httpserver "hydrohero/backend/services/hydration-api/internal/http"
	"hydrohero/backend/services/hydration-api/internal/http/handlers"
	"hydrohero/backend/services/hydration-api/internal/http/middleware"
	redisstore "hydrohero/backend/services/hydration-api/internal/redis"
	"hydrohero/backend/services/hydration-api/internal/repository"
	"hydrohero/backend/services/hydration-api/internal/service"
)

// App wires hydration-api dependencies.
type App struct {
	server      *httpserver.Server
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph. Redis is optional: without an address
// the device snapshot simply carries no lastSeen field.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	a := &App{db: sqlDB, logger: logger}

	gatewayOpts := clients.GatewayOptions{
		BaseURL: cfg.Telemetry.URL,
		Timeout: cfg.TelemetryTimeout(),
	}
	if cfg.RedisEnabled() {
		redisClient, err := libredis.NewRedisClient(libredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redisClient = redisClient
		gatewayOpts.LastSeen = redisstore.NewLastSeenStore(redisClient, cfg.LastSeenTTL())
	}
	if cfg.Telemetry.URL == "" {
		logger.Warn("telemetry url not configured, remote device endpoints will report no data")
	}

	profileRepo := repository.NewProfileRepository(sqlDB)
	intakeRepo := repository.NewIntakeRepository(sqlDB, nil)
	deviceStatusRepo := repository.NewDeviceStatusRepository(sqlDB, nil)

	hydrationSvc := service.NewHydrationService(profileRepo, intakeRepo, deviceStatusRepo, cfg.HistoryLimit, nil, logger)
	gateway := clients.NewTelemetryGateway(gatewayOpts, logger)
	deviceSvc := service.NewDeviceService(gateway, hydrationSvc, nil, logger)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Health:         handlers.NewHealthHandler(),
		GetProfile:     handlers.NewGetProfileHandler(hydrationSvc, logger),
		UpdateProfile:  handlers.NewUpdateProfileHandler(hydrationSvc, logger),
		LogIntake:      handlers.NewLogIntakeHandler(hydrationSvc, logger),
		DailyTotal:     handlers.NewDailyHandler(hydrationSvc, logger),
		History:        handlers.NewHistoryHandler(hydrationSvc, logger),
		Prediction:     handlers.NewPredictionHandler(hydrationSvc, logger),
		DeviceStatus:   handlers.NewDeviceStatusHandler(hydrationSvc, logger),
		FirebaseDevice: handlers.NewFirebaseHandlers(deviceSvc, logger),
	})

	a.server = httpserver.NewServer(
		cfg.HTTPAddress(),
		router,
		logger,
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(cfg.HTTP.CORSOrigins),
	)
	return a, nil
}

// Handler exposes the wrapped HTTP handler.
func (a *App) Handler() http.Handler {
	return a.server.Handler()
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
