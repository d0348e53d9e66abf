package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Start starts the bot in polling mode
func (b *Bot) Start() error {
	b.logger.Info("Starting bot in polling mode")

	// Remove webhook (if any was set previously)
	if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		b.logger.Warn("Failed to delete webhook", zap.Error(err))
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Bot started successfully. Waiting for updates...")

	// Handle updates (blocks here)
	b.handleUpdates(updates)
	return nil
}

// StartWebhook sets up the bot to receive updates via webhook
func (b *Bot) StartWebhook(webhookURL string) error {
	b.logger.Info("Setting up webhook", zap.String("webhook_url", webhookURL))

	webhookConfig, err := tgbotapi.NewWebhook(webhookURL + "/telegram-webhook")
	if err != nil {
		return err
	}
	webhookConfig.MaxConnections = 40

	if _, err := b.api.Request(webhookConfig); err != nil {
		b.logger.Error("Failed to set webhook", zap.Error(err), zap.String("webhook_url", webhookURL))
		return err
	}

	info, err := b.api.GetWebhookInfo()
	if err != nil {
		b.logger.Warn("Failed to get webhook info", zap.Error(err))
	} else {
		b.logger.Info("Webhook set successfully",
			zap.String("url", info.URL),
			zap.Int("pending_updates", info.PendingUpdateCount),
		)
	}

	return nil
}

// HandleWebhookUpdate processes a single update from webhook
func (b *Bot) HandleWebhookUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		b.handleMessage(update.Message)
	}

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
	}
}

// handleUpdates processes incoming updates from polling mode
func (b *Bot) handleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		b.HandleWebhookUpdate(update)
	}
}
