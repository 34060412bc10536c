package main

import (
	"crypto/tls"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rondreis/travel-office-backend/config"
	"github.com/rondreis/travel-office-backend/handlers"
	"github.com/rondreis/travel-office-backend/logger"
	"github.com/rondreis/travel-office-backend/pkg/normalizer"
	"github.com/rondreis/travel-office-backend/pkg/pexels"
	"github.com/rondreis/travel-office-backend/pkg/travelcompositor"
	"github.com/rondreis/travel-office-backend/router"
	"github.com/rondreis/travel-office-backend/services"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize Redis client with TLS in production
	redisOptions := &redis.Options{
		Addr:         cfg.Redis.Address,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}
	if cfg.Redis.UseTLS {
		host := cfg.Redis.Address
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		redisOptions.TLSConfig = &tls.Config{
			ServerName: host,
			MinVersion: tls.VersionTLS12,
		}
	}
	redisClient := redis.NewClient(redisOptions)

	// Upstream Travel Compositor client
	upstream := travelcompositor.NewClient(travelcompositor.Config{
		BaseURL:   cfg.TravelCompositor.BaseURL,
		Username:  cfg.TravelCompositor.Username,
		Password:  cfg.TravelCompositor.Password,
		Microsite: cfg.TravelCompositor.Microsite,
		Timeout:   cfg.TravelCompositor.Timeout(),
	}, log)

	// Stock-photo lookup is optional; without a key bookings simply keep
	// whatever images the raw document carried.
	var imageClient pexels.ClientInterface
	if cfg.ExternalServices.PexelsAPIKey != "" {
		imageClient = pexels.NewClient(cfg.ExternalServices.PexelsAPIKey, log)
	} else {
		log.Warn("PEXELS_API_KEY not set, image enrichment disabled")
	}

	// Services
	bookingService := services.NewBookingService(
		upstream,
		normalizer.New(log),
		redisClient,
		imageClient,
		cfg.Redis.CacheTTL(),
	)
	healthService := services.NewHealthService(redisClient, upstream, cfg.Server.Version)

	// Handlers
	bookingHandler := handlers.NewBookingHandler(bookingService)
	healthHandler := handlers.NewHealthHandler(healthService)

	// Router setup
	r := router.SetupRouter(router.Dependencies{
		Config:         cfg,
		BookingHandler: bookingHandler,
		HealthHandler:  healthHandler,
		Logger:         log,
	})

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
