package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"imagebot/internal/inference"
	"imagebot/internal/locales"
	"imagebot/internal/models"
)

// startGeneration acknowledges the prompt and runs the inference call
// in the background so other updates keep flowing
func (b *Bot) startGeneration(chatID int64, session Session, prompt string) {
	b.send(tgbotapi.NewMessage(chatID, locales.Text(session.Language, "generating")))
	go b.runGeneration(chatID, session, prompt)
}

// runGeneration performs one generation end to end: resolve defaults,
// call the backend with a bounded timeout, record history, deliver the
// result. The session stays in prompt mode either way, so the user can
// immediately send the next prompt.
func (b *Bot) runGeneration(chatID int64, session Session, prompt string) {
	provider := defaultProvider
	if p, ok := providerByID(session.Provider); ok {
		provider = p
	}
	model := session.Model
	if model == "" {
		model = provider.Model
	}
	width, height := session.ratioOrDefault().Dimensions()

	client, ok := b.clients[provider.Backend]
	if !ok {
		b.logger.Error("No client for backend", zap.String("backend", provider.Backend))
		b.send(tgbotapi.NewMessage(chatID, locales.Text(session.Language, "err_other")))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.genTimeout)
	defer cancel()

	started := time.Now()
	result, err := client.Generate(ctx, inference.Request{
		Prompt: prompt,
		Model:  model,
		Width:  width,
		Height: height,
	})
	latency := time.Since(started)

	status := "ok"
	if err != nil {
		status = inference.KindOf(err).String()
	}
	b.saveHistory(chatID, prompt, model, width, height, status, latency)

	if err != nil {
		b.logger.Warn("Generation failed",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.String("model", model),
			zap.Duration("latency", latency),
		)
		b.send(tgbotapi.NewMessage(chatID, locales.Text(session.Language, errorKey(err))))
		return
	}

	b.logger.Info("Generation succeeded",
		zap.Int64("chat_id", chatID),
		zap.String("model", model),
		zap.Int("bytes", len(result.Image)),
		zap.Duration("latency", latency),
	)

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "image.png",
		Bytes: result.Image,
	})
	photo.Caption = prompt
	b.send(photo)
	b.send(tgbotapi.NewMessage(chatID, locales.Text(session.Language, "next_prompt")))
}

// saveHistory records the attempt; history is best-effort and never
// blocks the user-facing flow
func (b *Bot) saveHistory(chatID int64, prompt, model string, width, height int, status string, latency time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := b.db.SaveGeneration(ctx, models.Generation{
		ChatID:    chatID,
		Prompt:    prompt,
		Model:     model,
		Width:     width,
		Height:    height,
		Status:    status,
		LatencyMs: latency.Milliseconds(),
		CreatedAt: time.Now(),
	})
	if err != nil {
		b.logger.Error("Failed to save generation history",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// errorKey maps a classified inference failure to its locale key
func errorKey(err error) string {
	switch inference.KindOf(err) {
	case inference.KindAuth:
		return "err_auth"
	case inference.KindNotFound:
		return "err_not_found"
	case inference.KindUnavailable:
		return "err_busy"
	default:
		return "err_other"
	}
}
