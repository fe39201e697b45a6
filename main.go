package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/food-ordering/config"
	"github.com/yeremiapane/food-ordering/database"
	"github.com/yeremiapane/food-ordering/kds"
	"github.com/yeremiapane/food-ordering/messaging"
	"github.com/yeremiapane/food-ordering/repository"
	"github.com/yeremiapane/food-ordering/router"
	"github.com/yeremiapane/food-ordering/services"
	"github.com/yeremiapane/food-ordering/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	utils.InitLogger()
	cfg := config.LoadConfig()
	utils.ConfigureLogger(cfg.LogLevel, cfg.LogFormat)

	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	if cfg.SeedSampleData {
		if err := database.SeedSampleData(db); err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed sample data: %v", err)
		}
	}

	ctx := context.Background()

	rdb, err := config.InitRedis(ctx, cfg)
	if err != nil {
		utils.ErrorLogger.WithError(err).Warn("redis unavailable, using database sessions and no menu cache")
		rdb = nil
	}

	var janitor *services.SessionJanitor
	if rdb == nil {
		janitor = services.NewSessionJanitor(repository.NewSessionRepository(db))
		janitor.Start()
	}

	hub := kds.NewHub()

	var notifiers services.Notifiers
	var publisher *messaging.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = messaging.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			utils.ErrorLogger.WithError(err).Warn("event broker unavailable, events go to the kitchen feed only")
		} else {
			notifiers = append(notifiers, publisher)
		}
	}

	r := router.SetupRouter(router.Dependencies{
		Config:    cfg,
		DB:        db,
		Redis:     rdb,
		Hub:       hub,
		Notifiers: notifiers,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Info("Shutting down")

	shutdown(srv, hub, janitor, publisher, rdb)
}

func shutdown(srv *http.Server, hub *kds.Hub, janitor *services.SessionJanitor, publisher *messaging.Publisher, rdb *redis.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// hijacked websocket connections are not tracked by Shutdown
	hub.Close()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.WithError(err).Error("server shutdown")
	}

	if janitor != nil {
		janitor.Stop()
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			utils.ErrorLogger.WithError(err).Warn("closing event publisher")
		}
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
