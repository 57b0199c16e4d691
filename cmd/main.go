package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog_service/internal/accounts"
	"catalog_service/internal/catalog"
	"catalog_service/internal/config"
	"catalog_service/internal/http_server/handlers/books"
	"catalog_service/internal/http_server/handlers/categories"
	forgotpassword "catalog_service/internal/http_server/handlers/forgot_password"
	"catalog_service/internal/http_server/handlers/login"
	"catalog_service/internal/http_server/handlers/profile"
	"catalog_service/internal/http_server/handlers/register"
	mwauth "catalog_service/internal/http_server/middleware/auth"
	sl "catalog_service/internal/lib/logger"
	"catalog_service/internal/rabbitmq"
	"catalog_service/internal/storage/postgres"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad("./config/config.yaml")

	log := setupLogger(cfg.Env)

	log.Info("starting catalog service", slog.String("env", cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info("Shutdown signal received")
		cancel()
	}()

	if err := postgres.RunMigrations(postgres.DSN(cfg)); err != nil {
		log.Error("failed to run migrations", sl.Err(err))
		os.Exit(1)
	}

	storage, err := postgres.New(ctx, cfg)
	if err != nil {
		log.Error("failed to connect postgres", sl.Err(err))
		os.Exit(1)
	}
	defer storage.Close()

	msgBroker, err := rabbitmq.New(cfg.RabbitMQ.URL, cfg.RabbitMQ.QueueName)
	if err != nil {
		log.Error("failed to connect rabbitmq", sl.Err(err))
		os.Exit(1)
	}
	defer msgBroker.Close()

	accountsService := accounts.New(
		log,
		storage,
		storage,
		cfg.Tokens.SessionTokenSecret,
		cfg.Tokens.SessionTokenTTL,
		accounts.PasswordHashCost,
	)

	catalogService := catalog.New(log, storage, storage)

	router := setupRouter(
		log,
		accountsService,
		catalogService,
		msgBroker,
		cfg.Tokens.SessionTokenSecret,
	)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server is running", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed", sl.Err(err))
			cancel()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down HTTP server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", sl.Err(err))
	} else {
		log.Info("Server stopped gracefully")
	}

	log.Info("Main service stopped")
}

func setupRouter(
	log *slog.Logger,
	accountsService *accounts.Accounts,
	catalogService *catalog.Catalog,
	msgBroker *rabbitmq.RabbitMQClient,
	tokenSecret string,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/register", register.New(log, accountsService))
	r.Post("/login", login.New(log, accountsService))
	r.Post("/forgot-password", forgotpassword.New(log, accountsService, msgBroker))
	r.Get("/books", books.NewList(log, catalogService))
	r.Get("/categories", categories.New(log, catalogService))

	r.Group(func(r chi.Router) {
		r.Use(mwauth.New(log, tokenSecret))

		r.Get("/profile", profile.New(log, accountsService))
		r.Post("/books", books.NewCreate(log, catalogService))
	})

	return r
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
