package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"imagebot/internal/inference"
	"imagebot/internal/storage"
)

// NewBot creates a new Telegram bot
func NewBot(token string, db storage.Storage, clients map[string]inference.Client, genTimeout time.Duration, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Error("Failed to create bot API", zap.Error(err))
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot created", zap.String("bot_username", api.Self.UserName))

	return &Bot{
		api:        api,
		db:         db,
		clients:    clients,
		sessions:   NewSessionStore(),
		genTimeout: genTimeout,
		logger:     logger,
	}, nil
}
