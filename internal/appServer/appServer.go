package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sippke/notification-service/config"
	repository "github.com/sippke/notification-service/internal/database/postgres"
	cache "github.com/sippke/notification-service/internal/database/redis"
	"github.com/sippke/notification-service/internal/service"
	"github.com/sippke/notification-service/internal/transport"

	"github.com/sippke/notification-service/pkg/fcm"
	"github.com/sippke/notification-service/pkg/mailer"
	"github.com/sippke/notification-service/pkg/postgres"
	"github.com/sippke/notification-service/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	ctx := context.Background()

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Firebase must be ready before the service accepts traffic.
	pushClient, err := fcm.InitClient(ctx, &cfg.Firebase)
	if err != nil {
		logrus.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Optional unread-count cache
	var unreadCache service.UnreadCache
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			logrus.Errorf("Failed to initialize Redis: %v. Continuing without cache...", err)
		} else {
			defer redisClient.Close()
			unreadCache = cache.NewUnreadCountCache(redisClient, cfg.Redis.CacheTTL)
			logrus.Info("Redis unread-count cache initialized")
		}
	}

	// Initialize services
	notificationService := service.NewNotificationService(userRepo, notificationRepo, pushClient, unreadCache)
	emailService := service.NewEmailService(mailer.NewMailer(&cfg.Email))

	// Initialize handlers
	notificationHandler := transport.NewNotificationHandler(notificationService, cfg.App.DefaultPageSize, cfg.App.MaxPageSize)
	emailHandler := transport.NewEmailHandler(emailService)

	// Setup HTTP server
	if cfg.Server.Env == "production" || cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(cfg, notificationHandler, emailHandler)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Printf("Notification service running on port %s", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
