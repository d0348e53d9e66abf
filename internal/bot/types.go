package bot

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"imagebot/internal/inference"
	"imagebot/internal/storage"
)

// Bot represents the Telegram bot wrapper
type Bot struct {
	api        *tgbotapi.BotAPI
	db         storage.Storage
	clients    map[string]inference.Client // keyed by backend
	sessions   *SessionStore
	genTimeout time.Duration
	logger     *zap.Logger
}
