package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/projecthub/config"
	"github.com/ErlanBelekov/projecthub/internal/email"
	"github.com/ErlanBelekov/projecthub/internal/federated"
	"github.com/ErlanBelekov/projecthub/internal/health"
	"github.com/ErlanBelekov/projecthub/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/projecthub/internal/infrastructure/redisstore"
	ctxlog "github.com/ErlanBelekov/projecthub/internal/log"
	"github.com/ErlanBelekov/projecthub/internal/metrics"
	"github.com/ErlanBelekov/projecthub/internal/otp"
	"github.com/ErlanBelekov/projecthub/internal/password"
	"github.com/ErlanBelekov/projecthub/internal/repository"
	"github.com/ErlanBelekov/projecthub/internal/token"
	httptransport "github.com/ErlanBelekov/projecthub/internal/transport/http"
	"github.com/ErlanBelekov/projecthub/internal/transport/http/handler"
	"github.com/ErlanBelekov/projecthub/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := ctxlog.New(cfg.Env, cfg.SlogLevel(), os.Stdout)

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if cfg.MigrateOnStart {
		if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
			stop()
			log.Fatalf("migrate: %v", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	// Credentials
	tokens, err := token.NewIssuer([]byte(cfg.JWTSecret), cfg.JWTExpires)
	if err != nil {
		stop()
		log.Fatalf("token issuer: %v", err)
	}
	hasher, err := password.NewHasher(cfg.BcryptRounds)
	if err != nil {
		stop()
		log.Fatalf("password hasher: %v", err)
	}

	var otpRepo repository.OTPRepository = postgres.NewOTPRepository(pool)
	if cfg.OTPStore == "redis" {
		store, err := redisstore.NewOTPRepository(ctx, cfg.RedisURL)
		if err != nil {
			stop()
			log.Fatalf("redis: %v", err)
		}
		defer store.Close()
		checker.Add("redis", store)
		otpRepo = store
	}

	var fed usecase.FederatedVerifier
	if cfg.FederatedEnabled() {
		google, err := federated.NewGoogleVerifier(ctx, cfg.GoogleClientID)
		if err != nil {
			stop()
			log.Fatalf("google verifier: %v", err)
		}
		fed = google
	} else {
		logger.Warn("GOOGLE_CLIENT_ID not set, federated login disabled")
	}

	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	// Repositories
	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(userRepo, otp.NewEngine(otpRepo), hasher, tokens, fed, sender, logger)
	userUsecase := usecase.NewUserUsecase(userRepo, hasher, sender, cfg.InviteLink, logger)
	activityUsecase := usecase.NewActivityUsecase(activityRepo, logger)
	projectUsecase := usecase.NewProjectUsecase(projectRepo, activityUsecase)
	taskUsecase := usecase.NewTaskUsecase(taskRepo, projectRepo, activityUsecase)
	metricsUsecase := usecase.NewMetricsUsecase(projectRepo, taskRepo)

	handlers := httptransport.Handlers{
		Auth:     handler.NewAuthHandler(authUsecase, logger),
		Users:    handler.NewUserHandler(userUsecase, logger),
		Projects: handler.NewProjectHandler(projectUsecase, logger),
		Tasks:    handler.NewTaskHandler(taskUsecase, logger),
		Activity: handler.NewActivityHandler(activityUsecase, logger),
		Metrics:  handler.NewMetricsHandler(metricsUsecase, logger),
	}

	router := httptransport.NewRouter(logger, handlers, tokens, userRepo, httptransport.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		HSTS:        cfg.Env != "local",
	})

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}
