package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/njprem/ExploreNusa_BackEnd/internal/config"
	"github.com/njprem/ExploreNusa_BackEnd/internal/identity"
	"github.com/njprem/ExploreNusa_BackEnd/internal/logging"
	"github.com/njprem/ExploreNusa_BackEnd/internal/media"
	"github.com/njprem/ExploreNusa_BackEnd/internal/repository/minio"
	"github.com/njprem/ExploreNusa_BackEnd/internal/repository/ports"
	"github.com/njprem/ExploreNusa_BackEnd/internal/repository/postgres"
	"github.com/njprem/ExploreNusa_BackEnd/internal/repository/redis"
	"github.com/njprem/ExploreNusa_BackEnd/internal/service"
	transport "github.com/njprem/ExploreNusa_BackEnd/internal/transport/http"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr,
			logging.WithQueueSize(cfg.LogstashQueueSize),
			logging.WithDialTimeout(cfg.LogstashDialTimeout),
			logging.WithWriteTimeout(cfg.LogstashWriteTimeout),
		)
		if err != nil {
			log.Printf("logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, writer))
		}
	}
	log.SetFlags(0)

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStart()

	var sessionStore ports.SessionStore = identity.NewMemoryStore()
	if cfg.RedisAddr != "" {
		client, err := redis.NewClient(startCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("connect redis: %v", err)
		}
		defer client.Close()
		sessionStore = redis.NewSessionStore(client, cfg.SessionKeyPrefix)
	} else {
		log.Printf("REDIS_ADDR not set, sessions are kept in memory")
	}

	var objectStorage ports.ObjectStorage
	if cfg.ImageUploadEnabled() {
		client, err := minio.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			log.Fatalf("connect minio: %v", err)
		}
		storage := minio.NewStorage(client, cfg.MinIOPublicURL)
		if err := storage.EnsureBucket(startCtx, cfg.MinIOBucketDestinations); err != nil {
			log.Fatalf("prepare bucket: %v", err)
		}
		objectStorage = storage
	}

	destinationRepo := postgres.NewDestinationRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)
	favoriteRepo := postgres.NewFavoriteRepo(db)

	destinationService := service.NewDestinationService(destinationRepo, reviewRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, destinationRepo, reviewRepo)
	reviewService := service.NewReviewService(reviewRepo, destinationRepo)
	adminService := service.NewAdminService(destinationRepo, reviewRepo, objectStorage, service.AdminServiceConfig{
		Bucket:    cfg.MinIOBucketDestinations,
		Inspector: media.NewInspector(cfg.DestinationImageMaxBytes, cfg.DestinationImageMaxDimension),
	})
	sessions := identity.NewManager(sessionStore, cfg.GuestDisplayName)

	e := transport.NewRouter(cfg.AllowOrigins, sessions)
	transport.RegisterSession(e, sessions)
	transport.RegisterDestinations(e, destinationService, favoriteService, reviewService, cfg.EnableDestinationView)
	transport.RegisterAdmin(e, adminService, transport.AdminFeatures{
		Create: cfg.EnableAdminCreate,
		Update: cfg.EnableAdminUpdate,
		Delete: cfg.EnableAdminDelete,
	})
	if err := transport.RegisterSwagger(e, transport.DefaultSwaggerPath); err != nil {
		log.Printf("swagger disabled: %v", err)
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
