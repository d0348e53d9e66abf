package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"imagebot/internal/bot"
	"imagebot/internal/config"
	"imagebot/internal/inference"
	"imagebot/internal/storage"
	"imagebot/internal/storage/ch"
	"imagebot/internal/storage/stubs"
)

// App represents the application
type App struct {
	config *config.Config
	logger *zap.Logger
	db     storage.Storage
	bot    *bot.Bot
	server *http.Server
}

// New creates and initializes a new application instance
func New() (*App, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Load configuration from environment variables
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	app := &App{config: cfg, logger: logger}

	logger.Info("Starting image bot...")

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initBot(); err != nil {
		return nil, err
	}

	app.initHTTPServer()

	return app, nil
}

// initDatabase initializes the generation history storage
func (a *App) initDatabase() error {
	var db storage.Storage
	if a.config.UseMockDB {
		a.logger.Info("Using in-memory history storage")
		db = stubs.NewMockDB()
	} else {
		a.logger.Info("Connecting to ClickHouse",
			zap.String("host", a.config.ClickHouseHost),
			zap.Int("port", a.config.ClickHousePort),
			zap.String("database", a.config.ClickHouseDatabase),
			zap.Bool("tls", a.config.ClickHouseUseTLS),
		)
		clickhouseDB, err := ch.NewClickHouseDB(
			a.config.ClickHouseHost,
			a.config.ClickHousePort,
			a.config.ClickHouseDatabase,
			a.config.ClickHouseUser,
			a.config.ClickHousePassword,
			a.config.ClickHouseUseTLS,
		)
		if err != nil {
			return fmt.Errorf("failed to connect to ClickHouse: %w", err)
		}
		db = clickhouseDB
	}

	if err := db.Initialize(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.logger.Info("Storage initialized successfully")

	a.db = db
	return nil
}

// initBot initializes the Telegram bot and its inference clients
func (a *App) initBot() error {
	clients := map[string]inference.Client{
		bot.BackendHuggingFace: inference.NewHuggingFaceClient(a.config.HFAPIToken, a.config.GenerationTimeout, a.logger),
	}
	if a.config.OpenAIAPIKey != "" {
		clients[bot.BackendOpenAI] = inference.NewOpenAIClient(a.config.OpenAIAPIKey, a.config.GenerationTimeout, a.logger)
	} else {
		a.logger.Info("OPENAI_API_KEY not set, OpenAI provider disabled")
	}

	telegramBot, err := bot.NewBot(a.config.TelegramToken, a.db, clients, a.config.GenerationTimeout, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	a.bot = telegramBot
	return nil
}

// initHTTPServer initializes the HTTP server for health checks and webhook
func (a *App) initHTTPServer() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // Default port
	}

	mux := http.NewServeMux()

	// Liveness endpoints for the hosting platform
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})

	// Webhook endpoint (only used in webhook mode)
	mux.HandleFunc("/telegram-webhook", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			a.logger.Warn("Error decoding webhook update", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// Process update in background to respond quickly to Telegram
		go a.bot.HandleWebhookUpdate(update)

		w.WriteHeader(http.StatusOK)
	})

	a.server = &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Start HTTP server in background
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("port", port))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
}

// Run starts the application and blocks until shutdown
func (a *App) Run() error {
	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if a.config.WebhookMode {
		a.logger.Info("Starting bot in webhook mode", zap.String("webhook_url", a.config.WebhookURL))
		if err := a.bot.StartWebhook(a.config.WebhookURL); err != nil {
			return fmt.Errorf("failed to setup webhook: %w", err)
		}
	} else {
		go func() {
			if err := a.bot.Start(); err != nil {
				a.logger.Fatal("Failed to start bot", zap.Error(err))
			}
		}()
	}

	// Wait for interrupt signal
	<-sigChan

	a.logger.Info("Shutting down...")
	return a.Shutdown()
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := a.db.Close(); err != nil {
		a.logger.Error("Error closing storage", zap.Error(err))
		return err
	}

	a.logger.Info("Shutdown complete")
	_ = a.logger.Sync()
	return nil
}
