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

	"github.com/andrewpaige1/lexideck-api/auth"
	"github.com/andrewpaige1/lexideck-api/config"
	"github.com/andrewpaige1/lexideck-api/handlers"
	"github.com/andrewpaige1/lexideck-api/middleware"
	"github.com/andrewpaige1/lexideck-api/store"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	env, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(env.LogLevel)

	db, err := config.Connect(env.DatabaseURL, env.LogLevel == "debug")
	if err != nil {
		logger.WithError(err).Fatal("failed to connect database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.WithError(err).Fatal("failed to open connection pool")
	}
	st := store.New(db)

	if env.SeedFile != "" {
		created, updated, err := config.SeedQuizzes(context.Background(), st, env.SeedFile, logger)
		if err != nil {
			logger.WithError(err).Fatal("failed to seed quizzes")
		}
		logger.WithField("created", created).WithField("updated", updated).Info("quizzes seeded")
	}

	issuer, err := auth.NewIssuer(env.JWTSecret, env.JWTIssuer, env.JWTAudience)
	if err != nil {
		logger.WithError(err).Fatal("failed to build token issuer")
	}
	authMiddleware, err := middleware.EnsureValidToken(issuer, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to build token validator")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(registry)

	h := handlers.New(st, issuer, logger)
	mux := http.NewServeMux()
	h.Routes(mux, middleware.RequireUser(st, logger))
	mux.Handle("GET /metrics", metrics.Handler(registry, sqlDB))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   env.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(middleware.RequestLogger(logger)(authMiddleware(metrics.Instrument(mux))))

	server := &http.Server{
		Addr:              "0.0.0.0:" + env.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithField("addr", server.Addr).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
	sqlDB.Close()
}
