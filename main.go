package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"hotelbooking/config"
	"hotelbooking/controllers"
	"hotelbooking/jobs"
	"hotelbooking/repository"
	"hotelbooking/routes"
	"hotelbooking/services"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"
)

const shutdownTimeout = 10 * time.Second

func openStores(cfg *config.Config, appLog logger.Logger) (*repository.Stores, repository.RoomLocker) {
	if cfg.DatabaseDSN == "" {
		appLog.Warn("ENV not set, running on in-memory stores")
		return repository.NewMemoryStores(), repository.NewLocalRoomLocker()
	}
	db, err := config.ConnectDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Fail to connect to db: %v", err)
	}
	return repository.NewPostgresStores(db), repository.NewPostgresRoomLocker(db)
}

func openCache(cfg *config.Config, appLog logger.Logger) (services.Cache, *redis.Client) {
	if cfg.RedisAddr == "" {
		appLog.Warn("REDIS_ADDR not set, caching disabled")
		return services.NoopCache{}, nil
	}
	rdb, err := config.ConnectRedis(cfg)
	if err != nil {
		appLog.Warn("redis unavailable, caching disabled: %v", err)
		return services.NoopCache{}, nil
	}
	return services.NewRedisCache(rdb), rdb
}

func main() {
	cfg := config.Load()
	appLog := logger.NewDefaultLogger(logger.ParseLevel(cfg.LogLevel))
	if cfg.LogDir != "" {
		fileLog, logFile, err := logger.NewFileLogger(logger.ParseLevel(cfg.LogLevel), cfg.LogDir, time.Now())
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer logFile.Close()
		appLog = fileLog
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	router, m, c := config.InitApp()

	stores, locker := openStores(cfg, appLog)
	cache, rdb := openCache(cfg, appLog)
	ttl := services.CacheTTL{
		Room:         cfg.CacheTTLRoom,
		Search:       cfg.CacheTTLSearch,
		Availability: cfg.CacheTTLAvailability,
	}

	sinks := []notification.Sink{notification.NewLogSink(appLog), notification.NewMelodySink(m)}
	var amqpSink *notification.AMQPSink
	if cfg.RabbitMQURL != "" {
		amqpSink = notification.NewAMQPSink(cfg.RabbitMQURL, notification.DefaultQueue)
		sinks = append(sinks, amqpSink)
	}
	dispatcher := notification.NewDispatcher(appLog, cfg.NotifyQueueSize, cfg.NotifyWorkers, sinks...)
	dispatcher.Start()

	clock := services.Clock(time.Now)
	coupons := services.NewDiscountResolver(stores.Discounts, clock)
	availability := services.NewAvailabilityService(stores, appLog)
	catalog := services.NewCatalogService(stores, availability, locker, cache, appLog, clock)
	blocks := services.NewRoomBlockService(stores, locker, cache, appLog, clock)
	reservations := services.NewReservationService(stores, availability, coupons, dispatcher, locker, cache, appLog, clock)
	payments := services.NewPaymentService(stores.Payments, reservations, coupons, dispatcher, appLog)
	discounts := services.NewDiscountService(stores.Discounts, appLog)

	routes.SetupRoutes(router, routes.Handlers{
		Rooms:        controllers.NewRoomController(catalog, services.NewCachedCatalog(catalog, cache, ttl, appLog), appLog),
		Availability: controllers.NewAvailabilityController(services.NewCachedAvailability(availability, cache, ttl, appLog), appLog),
		Blocks:       controllers.NewRoomBlockController(blocks, appLog),
		Reservations: controllers.NewReservationController(reservations, appLog),
		Payments:     controllers.NewPaymentController(payments, appLog),
		Discounts:    controllers.NewDiscountController(discounts, appLog),
	}, cfg.JWTSecret)
	config.InitWebSocket(router, m, cfg.JWTSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	if err := jobs.InitCronJobs(c, cfg.PendingExpiryCron, reservations, appLog); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		log.Println("Server starting on port " + cfg.Port + "...")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("http shutdown: %v", err)
	}
	<-c.Stop().Done()
	if err := dispatcher.Close(shutdownCtx); err != nil {
		appLog.Warn("notifications still queued at shutdown: %v", err)
	}
	if amqpSink != nil {
		amqpSink.Close()
	}
	_ = m.Close()
	if rdb != nil {
		_ = rdb.Close()
	}
}
