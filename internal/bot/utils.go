package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// send delivers a message, logging delivery failures
func (b *Bot) send(c tgbotapi.Chattable) {
	if b.api == nil {
		return // For testing
	}
	if _, err := b.api.Send(c); err != nil {
		b.logger.Error("Failed to send message", zap.Error(err))
	}
}

// request performs an API request with no interesting response
func (b *Bot) request(c tgbotapi.Chattable) {
	if b.api == nil {
		return // For testing
	}
	if _, err := b.api.Request(c); err != nil {
		b.logger.Error("Failed to perform request", zap.Error(err))
	}
}

// enabledBackends reports which inference backends have a client
func (b *Bot) enabledBackends() map[string]bool {
	enabled := make(map[string]bool, len(b.clients))
	for backend := range b.clients {
		enabled[backend] = true
	}
	return enabled
}

// truncate shortens a prompt for history listings
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
