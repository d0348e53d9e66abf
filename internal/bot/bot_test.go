package bot

import (
	"context"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"imagebot/internal/inference"
	"imagebot/internal/storage/stubs"
)

// Note: We can't easily mock tgbotapi.BotAPI, so tests focus on internal logic
// without actually sending messages to Telegram

// fakeClient is an inference.Client that records requests and returns
// a canned outcome
type fakeClient struct {
	mu       sync.Mutex
	requests []inference.Request
	result   *inference.Result
	err      error
}

func (f *fakeClient) Generate(ctx context.Context, req inference.Request) (*inference.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.result, f.err
}

func newTestBot(client *fakeClient) (*Bot, *stubs.MockDB) {
	db := stubs.NewMockDB()
	return &Bot{
		api: nil, // Not needed for internal logic tests
		db:  db,
		clients: map[string]inference.Client{
			BackendHuggingFace: client,
		},
		sessions:   NewSessionStore(),
		genTimeout: 5 * time.Second,
		logger:     zap.NewNop(), // Use nop logger for tests
	}, db
}

func textMessage(chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: chatID},
		From: &tgbotapi.User{ID: chatID},
		Text: text,
	}
}

func commandMessage(chatID int64, command string) *tgbotapi.Message {
	msg := textMessage(chatID, command)
	msg.Entities = []tgbotapi.MessageEntity{
		{Type: "bot_command", Offset: 0, Length: len(command)},
	}
	return msg
}

func callbackQuery(chatID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:   "cb",
		From: &tgbotapi.User{ID: chatID},
		Data: data,
		Message: &tgbotapi.Message{
			MessageID: 10,
			Chat:      &tgbotapi.Chat{ID: chatID},
		},
	}
}

func TestBot_MenuWalkViaCallbacks(t *testing.T) {
	// Scenario: /start → ru → AI design → Hugging Face → 1:1
	bot, _ := newTestBot(&fakeClient{})
	chatID := int64(456)

	bot.handleMessage(commandMessage(chatID, "/start"))
	if got := bot.sessions.Get(chatID); got.Screen != ScreenLanguageSelect {
		t.Fatalf("Expected language select after /start, got %+v", got)
	}

	bot.handleCallbackQuery(callbackQuery(chatID, "lang:ru"))
	bot.handleCallbackQuery(callbackQuery(chatID, "design"))
	bot.handleCallbackQuery(callbackQuery(chatID, "provider:flux"))
	bot.handleCallbackQuery(callbackQuery(chatID, "size:1:1"))

	session := bot.sessions.Get(chatID)
	if session.Language != "ru" {
		t.Errorf("Expected language ru, got %q", session.Language)
	}
	if session.Screen != ScreenAwaitingPrompt {
		t.Errorf("Expected awaiting prompt screen, got %v", session.Screen)
	}
	if session.Ratio != RatioSquare {
		t.Errorf("Expected ratio 1:1, got %q", session.Ratio)
	}
	if !session.AwaitingPrompt {
		t.Error("Expected awaitingPrompt to be true")
	}
}

func TestBot_GenerationRequestUsesSelectedRatio(t *testing.T) {
	client := &fakeClient{result: &inference.Result{Image: []byte{1, 2, 3}, MimeType: "image/png"}}
	bot, db := newTestBot(client)
	chatID := int64(456)

	session := Session{
		Language:       "ru",
		Screen:         ScreenAwaitingPrompt,
		Provider:       "flux",
		Model:          "black-forest-labs/FLUX.1-schnell",
		Ratio:          RatioPortrait,
		AwaitingPrompt: true,
	}
	bot.sessions.Update(chatID, func(s *Session) { *s = session })

	bot.runGeneration(chatID, session, "a red fox in snow")

	if len(client.requests) != 1 {
		t.Fatalf("Expected one inference call, got %d", len(client.requests))
	}
	req := client.requests[0]
	if req.Prompt != "a red fox in snow" {
		t.Errorf("Expected prompt to pass through, got %q", req.Prompt)
	}
	if req.Width != 768 || req.Height != 1344 {
		t.Errorf("Expected 768x1344 for 9:16, got %dx%d", req.Width, req.Height)
	}

	// Session stays in prompt mode after success
	if got := bot.sessions.Get(chatID); !got.AwaitingPrompt {
		t.Error("Expected session to remain in prompt mode after success")
	}

	// History recorded the attempt
	generations, err := db.GetLastGenerations(context.Background(), chatID, 10)
	if err != nil {
		t.Fatalf("Failed to read history: %v", err)
	}
	if len(generations) != 1 || generations[0].Status != "ok" {
		t.Fatalf("Expected one successful history entry, got %+v", generations)
	}
}

func TestBot_GenerationFailureKeepsPromptMode(t *testing.T) {
	client := &fakeClient{err: &inference.Error{Kind: inference.KindAuth, Message: "bad token"}}
	bot, db := newTestBot(client)
	chatID := int64(456)

	session := Session{
		Language:       "en",
		Screen:         ScreenAwaitingPrompt,
		Provider:       "flux",
		Model:          "black-forest-labs/FLUX.1-schnell",
		Ratio:          RatioSquare,
		AwaitingPrompt: true,
	}
	bot.sessions.Update(chatID, func(s *Session) { *s = session })

	bot.runGeneration(chatID, session, "a red fox in snow")

	if got := bot.sessions.Get(chatID); !got.AwaitingPrompt || got.Screen != ScreenAwaitingPrompt {
		t.Errorf("Expected session to stay in prompt mode after failure, got %+v", got)
	}

	generations, err := db.GetLastGenerations(context.Background(), chatID, 10)
	if err != nil {
		t.Fatalf("Failed to read history: %v", err)
	}
	if len(generations) != 1 || generations[0].Status != "auth" {
		t.Fatalf("Expected one auth-failed history entry, got %+v", generations)
	}
}

func TestBot_GenerationDefaultsWhenNothingSelected(t *testing.T) {
	client := &fakeClient{result: &inference.Result{Image: []byte{1}, MimeType: "image/png"}}
	bot, _ := newTestBot(client)
	chatID := int64(456)

	// No provider, model or ratio picked: defaults substitute, no failure
	session := Session{Language: "ru", Screen: ScreenAwaitingPrompt, AwaitingPrompt: true}
	bot.runGeneration(chatID, session, "minimal prompt")

	if len(client.requests) != 1 {
		t.Fatalf("Expected one inference call, got %d", len(client.requests))
	}
	req := client.requests[0]
	if req.Model != defaultProvider.Model {
		t.Errorf("Expected default model, got %q", req.Model)
	}
	if req.Width != 1024 || req.Height != 1024 {
		t.Errorf("Expected default 1024x1024, got %dx%d", req.Width, req.Height)
	}
}

func TestBot_WhitespaceTextNeverReachesInference(t *testing.T) {
	client := &fakeClient{result: &inference.Result{Image: []byte{1}}}
	bot, _ := newTestBot(client)
	chatID := int64(456)

	bot.sessions.Update(chatID, func(s *Session) {
		*s = Session{Language: "ru", Screen: ScreenAwaitingPrompt, AwaitingPrompt: true}
	})

	bot.handleMessage(textMessage(chatID, "   \n  "))

	if len(client.requests) != 0 {
		t.Errorf("Expected no inference calls for whitespace, got %d", len(client.requests))
	}
}

func TestBot_PanicRecovery(t *testing.T) {
	bot, _ := newTestBot(&fakeClient{})

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("handleMessage panicked: %v", r)
		}
	}()

	// A message with no Chat would panic without the recover
	bot.handleMessage(&tgbotapi.Message{Text: "hello"})

	t.Log("Panic was successfully recovered")
}

func TestBot_SessionsAreIsolatedPerChat(t *testing.T) {
	bot, _ := newTestBot(&fakeClient{})

	bot.handleCallbackQuery(callbackQuery(1, "lang:ru"))
	bot.handleCallbackQuery(callbackQuery(2, "lang:en"))

	if got := bot.sessions.Get(1); got.Language != "ru" {
		t.Errorf("Expected chat 1 language ru, got %q", got.Language)
	}
	if got := bot.sessions.Get(2); got.Language != "en" {
		t.Errorf("Expected chat 2 language en, got %q", got.Language)
	}
}
