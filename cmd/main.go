package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/NgigiN/ledger/internal/api"
	"github.com/NgigiN/ledger/internal/app"
	"github.com/NgigiN/ledger/internal/config"
	"github.com/NgigiN/ledger/internal/discord"
	"github.com/NgigiN/ledger/internal/events"
	"github.com/NgigiN/ledger/internal/storage"
)

func main() {
	// amounts go out as JSON numbers, as the web client expects
	decimal.MarshalJSONWithoutQuotes = true

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file loaded, using the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)

	db, err := storage.NewDatabase(cfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}

	publisher := newPublisher(cfg, logger)
	svc := app.NewService(db, publisher, logger)

	scheduler := app.NewScheduler(app.NewJobs(svc, publisher, logger), cfg.InterestJobSchedule, logger)
	if err := scheduler.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start scheduler")
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(api.NewHandler(svc), cfg.AllowedOrigins(), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	var bot *discord.Bot
	if cfg.DiscordBotToken != "" {
		bot, err = discord.NewBot(cfg, svc, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize the discord bot")
		}
		if err := bot.Start(); err != nil {
			logger.Fatal().Err(err).Msg("failed to start bot")
		}
		logger.Info().Msg("Bot is running...")
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	select {
	case <-scheduler.Stop().Done():
	case <-ctx.Done():
		logger.Warn().Msg("interest job still running at shutdown")
	}
	if bot != nil {
		bot.Stop()
	}
	publisher.Close()
	if err := db.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close database")
	}
	logger.Info().Msg("stopped")
}

func newPublisher(cfg *config.Config, logger zerolog.Logger) events.Publisher {
	fallback := events.Fallback{Logger: logger.With().Str("component", "events").Logger()}
	if cfg.RabbitMQURL == "" {
		return fallback
	}
	producer, err := events.NewProducer(cfg.RabbitMQURL, cfg.EventsExchange)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to RabbitMQ, events will be dropped")
		return fallback
	}
	return producer
}
