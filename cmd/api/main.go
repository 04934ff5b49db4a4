package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/panesgr/chatbot-backend/api/routes"
	"github.com/panesgr/chatbot-backend/internal/ai"
	"github.com/panesgr/chatbot-backend/internal/catalog"
	"github.com/panesgr/chatbot-backend/internal/conversation"
	"github.com/panesgr/chatbot-backend/internal/customers"
	"github.com/panesgr/chatbot-backend/internal/notify"
	"github.com/panesgr/chatbot-backend/internal/reminders"
	"github.com/panesgr/chatbot-backend/internal/sessions"
	"github.com/panesgr/chatbot-backend/internal/transport"
	"github.com/panesgr/chatbot-backend/pkg/config"
	"github.com/panesgr/chatbot-backend/pkg/db"
	"github.com/panesgr/chatbot-backend/pkg/logger"
	"github.com/panesgr/chatbot-backend/pkg/metrics"
	"github.com/panesgr/chatbot-backend/pkg/migrate"
	"github.com/panesgr/chatbot-backend/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	customerStore, cleanupDB := buildCustomerStore(cfg, logg)
	defer cleanupDB()

	sessionStore, cleanupRedis := buildSessionStore(cfg, logg)
	defer cleanupRedis()

	var assistant ai.Client
	if cfg.OpenAI.Configured() {
		assistant = ai.NewOpenAI(cfg.OpenAI)
	}

	var mailer notify.Mailer = notify.Noop{}
	if cfg.Sendgrid.Configured() {
		mailer = notify.NewSendgrid(cfg.Sendgrid)
	}

	conv, err := conversation.New(conversation.Deps{
		Customers:    customerStore,
		Sessions:     sessionStore,
		Catalog:      catalog.NewClient(cfg.Catalog, logg),
		Assistant:    assistant,
		Mailer:       mailer,
		Metrics:      metrics.NewConversationMetrics(prometheus.DefaultRegisterer),
		Logger:       logg,
		HistoryTurns: cfg.AI.HistoryTurns,
		SupportEmail: cfg.App.SupportEmail,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to build conversation service", err)
		os.Exit(1)
	}

	var messenger transport.Messenger = transport.Noop{}
	if cfg.Twilio.Configured() {
		messenger = transport.NewTwilio(cfg.Twilio)
	}
	reminderJob := reminders.New(customerStore, messenger, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:       cfg,
			Logger:       logg,
			Conversation: conv,
			Reminders:    reminderJob,
			Mailer:       mailer,
		}),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}

// buildCustomerStore prefers the durable GORM store when a DSN is present,
// falling back to process memory.
func buildCustomerStore(cfg *config.Config, logg *logger.Logger) (customers.Store, func()) {
	if !cfg.DB.Configured() {
		logg.Info(context.Background(), "no database configured, customer profiles held in memory")
		return customers.NewMemoryStore(), func() {}
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	if err := migrate.MaybeRun(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
		os.Exit(1)
	}
	cleanup := func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}
	return customers.NewGormStore(dbClient.DB()), cleanup
}

// buildSessionStore keys conversation state in Redis when configured so
// restarts and multiple instances share it; otherwise in process memory.
func buildSessionStore(cfg *config.Config, logg *logger.Logger) (sessions.Store, func()) {
	if !cfg.Redis.Configured() {
		logg.Info(context.Background(), "no redis configured, sessions held in memory")
		return sessions.NewMemoryStore(cfg.Session.TTL), func() {}
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	cleanup := func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}
	return sessions.NewRedisStore(redisClient, cfg.Session.TTL, logg), cleanup
}
