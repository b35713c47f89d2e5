package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cataloghttp "github.com/medeu/storefront/internal/catalog/delivery/http"
	catalogrepo "github.com/medeu/storefront/internal/catalog/repository"
	favouritehttp "github.com/medeu/storefront/internal/favourite/delivery/http"
	favouriterepo "github.com/medeu/storefront/internal/favourite/repository"
	favouritecommand "github.com/medeu/storefront/internal/favourite/usecase/command"
	userhttp "github.com/medeu/storefront/internal/user/delivery/http"
	userdomain "github.com/medeu/storefront/internal/user/domain"
	userrepo "github.com/medeu/storefront/internal/user/repository"
	"github.com/medeu/storefront/kafka"
	"github.com/medeu/storefront/migrations"
	"github.com/medeu/storefront/pkg/cache"
	"github.com/medeu/storefront/pkg/database"
	"github.com/medeu/storefront/pkg/logger"
	"github.com/medeu/storefront/pkg/migrate"
	"github.com/medeu/storefront/pkg/schema"
	"github.com/medeu/storefront/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "storefront")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting storefront service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Connect to database
	db, err := database.NewGormConnection(database.ConfigFromEnv())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Entity registration happens in domain package inits. The association
	// pass runs once, after every entity has been registered.
	if err := schema.Associate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to wire entity associations")
	}

	// Run migrations
	if getEnv("AUTO_MIGRATE", "true") == "true" {
		runner, err := migrate.NewRunner(db, migrations.All())
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to build migration runner")
		}
		applied, err := runner.Up(context.Background())
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
		logger.Logger.Info().Int("applied", applied).Msg("Database migrations up to date")
	}

	// Redis cache (optional)
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		cacheTTL = 5 * time.Minute
	}
	c, err := cache.New(getEnv("REDIS_ADDR", ""), cacheTTL)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Cache disabled, continuing without Redis")
	}
	defer c.Close()

	// Kafka publisher and consumer (optional)
	var publisher *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		brokerList := strings.Split(brokers, ",")

		publisher, err = kafka.NewPublisher(brokerList)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka publisher disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}

		consumer, err := kafka.NewConsumer(brokerList, getEnv("KAFKA_GROUP_ID", "storefront"), []string{kafka.TopicFavouriteEvents})
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka consumer disabled")
		} else {
			defer consumer.Close()
			registerEventHandlers(consumer, c)

			consumerCtx, cancelConsumer := context.WithCancel(context.Background())
			defer cancelConsumer()
			if err := consumer.Start(consumerCtx); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to start Kafka consumer")
			}
		}
	}

	// Repositories
	userRepository := userrepo.NewGormUserRepository(db)
	roleRepository := userrepo.NewGormRoleRepository(db)
	brandRepository := catalogrepo.NewGormBrandRepository(db)
	productRepository := catalogrepo.NewGormProductRepositoryWithTracing(db)
	favouriteRepository := favouriterepo.NewGormFavouriteRepositoryWithTracing(db)

	// Handlers
	userHandler := userhttp.NewUserHandler(userRepository, roleRepository)
	catalogHandler := cataloghttp.NewCatalogHandler(brandRepository, productRepository, c)

	var eventPublisher favouritecommand.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	favouriteHandler := favouritehttp.NewFavouriteHandler(favouriteRepository, eventPublisher, c)

	// Seed well-known roles so admin bootstrap works on a fresh database
	seedRoles(roleRepository)

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8080")
	go startHTTPServer(userHandler, catalogHandler, favouriteHandler, sqlDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func registerEventHandlers(consumer *kafka.Consumer, c *cache.Cache) {
	invalidate := func(ctx context.Context, event kafka.FavouriteEvent) error {
		c.Invalidate(ctx, favouritehttp.ListCacheKey(event.UserID))
		return nil
	}
	consumer.RegisterHandler(kafka.EventTypeFavouriteAdded, invalidate)
	consumer.RegisterHandler(kafka.EventTypeFavouriteRemoved, invalidate)
}

// seedRoles makes sure the well-known roles exist so a fresh database can
// authorize admin routes without manual setup.
func seedRoles(roles userdomain.RoleRepository) {
	defaults := []userdomain.Role{
		{RoleID: userdomain.RoleIDAdmin, RoleName: "Administrator"},
		{RoleID: userdomain.RoleIDCustomer, RoleName: "Customer"},
	}
	for i := range defaults {
		if _, err := roles.FindByRoleID(defaults[i].RoleID); err == nil {
			continue
		}
		if err := roles.Create(&defaults[i]); err != nil {
			logger.Logger.Warn().Err(err).Str("roleId", defaults[i].RoleID).Msg("Failed to seed role")
		}
	}
}

func startHTTPServer(userHandler *userhttp.UserHandler, catalogHandler *cataloghttp.CatalogHandler, favouriteHandler *favouritehttp.FavouriteHandler, db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()

	userHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	favouriteHandler.RegisterRoutes(router)

	// Health check endpoint
	userHandler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := otelhttp.NewHandler(c.Handler(router), "http.server")

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
