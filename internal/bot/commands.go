package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"imagebot/internal/locales"
)

const historyLimit = 5

// handleStart resets the conversation and shows the language picker
func (b *Bot) handleStart(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	effect, session := b.applyEvent(chatID, Event{Kind: EventStart})
	b.renderNew(chatID, effect, session)
}

// handleHelp shows the localized command list
func (b *Bot) handleHelp(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	session := b.sessions.Get(chatID)
	b.send(tgbotapi.NewMessage(chatID, locales.Text(session.Language, "help")))
}

// handleHistory shows the chat's most recent generations
func (b *Bot) handleHistory(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	session := b.sessions.Get(chatID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	generations, err := b.db.GetLastGenerations(ctx, chatID, historyLimit)
	if err != nil {
		b.logger.Error("Failed to get generation history",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		b.send(tgbotapi.NewMessage(chatID, locales.Text(session.Language, "err_other")))
		return
	}

	if len(generations) == 0 {
		b.send(tgbotapi.NewMessage(chatID, locales.Text(session.Language, "history_empty")))
		return
	}

	var text strings.Builder
	text.WriteString(locales.Text(session.Language, "history_header"))
	text.WriteString("\n\n")
	for i, gen := range generations {
		text.WriteString(fmt.Sprintf("%d. %s — %s, %dx%d (%s)\n",
			i+1,
			truncate(gen.Prompt, 40),
			gen.Model,
			gen.Width, gen.Height,
			gen.Status))
	}

	b.send(tgbotapi.NewMessage(chatID, text.String()))
}
