package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"catalog_service/internal/config"
	sl "catalog_service/internal/lib/logger"
	"catalog_service/internal/mail"
	"catalog_service/internal/models"
	"catalog_service/internal/rabbitmq"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad("./config/config.yaml")
	log := setupLogger(cfg.Env)

	log.Info("Starting email sender", slog.String("env", cfg.Env))

	startConsumer(ctx, cfg, log)
}

func startConsumer(ctx context.Context, cfg *config.Config, log *slog.Logger) {
	r, err := rabbitmq.New(cfg.RabbitMQ.URL, cfg.RabbitMQ.QueueName)
	if err != nil {
		log.Error("failed to init rabbitmq", sl.Err(err))
		return
	}
	defer r.Close()

	m := &mail.Mailer{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
	}

	done := make(chan struct{})

	go func() {
		defer close(done)

		err := r.StartReading(ctx, func(msg []byte) {
			var mailMsg models.Message
			if err := json.Unmarshal(msg, &mailMsg); err != nil {
				log.Error("failed to unmarshal message", sl.Err(err))
				return
			}

			if err := m.Send(mailMsg.Email, mailMsg.Subject, mailMsg.Body); err != nil {
				log.Error("failed to send message", sl.Err(err))
				return
			}

			log.Info("message sent successfully")
		})
		if err != nil {
			log.Error("failed to start reading", sl.Err(err))
			return
		}
	}()

	log.Info("consumer successfully started")

	select {
	case <-ctx.Done():
		log.Info("shutting down consumer...")
	case <-done:
		log.Info("consumer finished the work")
	}

	log.Info("service gracefully stopped")
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
