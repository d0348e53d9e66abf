package bot

import "sync"

// Screen is the current position in the fixed menu tree
type Screen int

const (
	ScreenLanguageSelect Screen = iota
	ScreenMainMenu
	ScreenProviderMenu
	ScreenSizeMenu
	ScreenAwaitingPrompt
)

// Ratio is a named image shape with a fixed pixel mapping
type Ratio string

const (
	RatioSquare    Ratio = "1:1"
	RatioPortrait  Ratio = "9:16"
	RatioLandscape Ratio = "16:9"
)

// Dimensions returns the pixel pair for the ratio. The zero value maps
// to the 1:1 default so an unset ratio never fails a generation.
func (r Ratio) Dimensions() (width, height int) {
	switch r {
	case RatioPortrait:
		return 768, 1344
	case RatioLandscape:
		return 1344, 768
	default:
		return 1024, 1024
	}
}

// ParseRatio validates a ratio tag coming off the wire
func ParseRatio(s string) (Ratio, bool) {
	switch Ratio(s) {
	case RatioSquare, RatioPortrait, RatioLandscape:
		return Ratio(s), true
	}
	return "", false
}

// Session is the per-chat conversation state
type Session struct {
	Language       string
	Screen         Screen
	Provider       string
	Model          string
	Ratio          Ratio
	AwaitingPrompt bool
}

// ratioOrDefault substitutes the default shape when none was picked
func (s Session) ratioOrDefault() Ratio {
	if s.Ratio == "" {
		return RatioSquare
	}
	return s.Ratio
}

type sessionEntry struct {
	mu      sync.Mutex
	session Session
}

// SessionStore holds one Session per chat. Access to a given chat's
// session is serialized: Update holds that chat's lock for the whole
// callback, so two rapid events for one chat cannot race while events
// for different chats proceed in parallel.
type SessionStore struct {
	mu      sync.Mutex
	entries map[int64]*sessionEntry
}

// NewSessionStore creates an empty store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		entries: make(map[int64]*sessionEntry),
	}
}

func (st *SessionStore) entry(chatID int64) *sessionEntry {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.entries[chatID]
	if !ok {
		e = &sessionEntry{}
		st.entries[chatID] = e
	}
	return e
}

// Update runs fn with exclusive access to the chat's session.
// The mutation has committed by the time Update returns.
func (st *SessionStore) Update(chatID int64, fn func(*Session)) {
	e := st.entry(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.session)
}

// Get returns a snapshot copy of the chat's session
func (st *SessionStore) Get(chatID int64) Session {
	e := st.entry(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}
