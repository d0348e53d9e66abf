package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"imagebot/internal/locales"
)

// handleMessage processes a single message
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	// Recover from panics to prevent bot crashes
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleMessage", zap.Any("panic", r))
		}
	}()

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.handleStart(message)
		case "history":
			b.handleHistory(message)
		case "help":
			b.handleHelp(message)
		default:
			b.handleHelp(message)
		}
		return
	}

	chatID := message.Chat.ID
	effect, session := b.applyEvent(chatID, Event{Kind: EventText, Text: message.Text})
	b.renderNew(chatID, effect, session)
}

// handleCallbackQuery processes inline keyboard button clicks
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleCallbackQuery", zap.Any("panic", r))
		}
	}()

	// Answer the callback query to remove the loading state
	b.request(tgbotapi.NewCallback(query.ID, ""))

	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID

	action := DecodeAction(query.Data)
	effect, session := b.applyEvent(chatID, Event{Kind: EventAction, Action: action})
	b.renderEdit(chatID, query.Message.MessageID, effect, session)
}

// applyEvent runs the state machine under the chat's session lock and
// returns the effect plus a snapshot of the committed session
func (b *Bot) applyEvent(chatID int64, ev Event) (Effect, Session) {
	var effect Effect
	var snapshot Session
	b.sessions.Update(chatID, func(s *Session) {
		effect = Transition(s, ev)
		snapshot = *s
	})
	return effect, snapshot
}

// renderNew renders an effect as a fresh message (text events)
func (b *Bot) renderNew(chatID int64, effect Effect, session Session) {
	switch effect.Kind {
	case EffectShowScreen:
		msg := tgbotapi.NewMessage(chatID, screenText(session))
		msg.ReplyMarkup = screenKeyboard(session, b.enabledBackends())
		b.send(msg)

	case EffectGenerate:
		b.startGeneration(chatID, session, effect.Prompt)

	case EffectNotUnderstood:
		b.sendNotUnderstood(chatID, session)
	}
}

// renderEdit renders an effect by editing the originating menu message
// in place (button events)
func (b *Bot) renderEdit(chatID int64, messageID int, effect Effect, session Session) {
	switch effect.Kind {
	case EffectShowScreen:
		edit := tgbotapi.NewEditMessageTextAndMarkup(
			chatID, messageID,
			screenText(session),
			screenKeyboard(session, b.enabledBackends()),
		)
		b.send(edit)

	case EffectGenerate:
		b.startGeneration(chatID, session, effect.Prompt)

	case EffectNotUnderstood:
		b.sendNotUnderstood(chatID, session)
	}
}

func (b *Bot) sendNotUnderstood(chatID int64, session Session) {
	msg := tgbotapi.NewMessage(chatID, locales.Text(session.Language, "not_understood"))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(mainMenuRow(session.Language))
	b.send(msg)
}
