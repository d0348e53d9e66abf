package bot

import "strings"

// EventKind distinguishes the normalized inbound event types
type EventKind int

const (
	EventStart EventKind = iota
	EventAction
	EventText
)

// Event is a normalized inbound update for one chat
type Event struct {
	Kind   EventKind
	Action Action
	Text   string
}

// EffectKind is what the caller must do after a transition
type EffectKind int

const (
	// EffectShowScreen renders the session's current screen
	EffectShowScreen EffectKind = iota
	// EffectGenerate runs an image generation with Effect.Prompt
	EffectGenerate
	// EffectNotUnderstood renders the fallback with a main-menu button
	EffectNotUnderstood
)

// Effect is the outbound side of a transition
type Effect struct {
	Kind   EffectKind
	Screen Screen
	Prompt string
}

// Transition advances the session for one event and returns the effect
// to render. It touches nothing but the session: all I/O happens in the
// caller, after the mutation has committed.
func Transition(s *Session, ev Event) Effect {
	switch ev.Kind {
	case EventStart:
		*s = Session{Screen: ScreenLanguageSelect}
		return Effect{Kind: EffectShowScreen, Screen: ScreenLanguageSelect}

	case EventAction:
		return applyAction(s, ev.Action)

	case EventText:
		return applyText(s, ev.Text)
	}

	return Effect{Kind: EffectNotUnderstood}
}

func applyAction(s *Session, a Action) Effect {
	switch a.Kind {
	case ActionSelectLanguage:
		s.Language = a.Language
		s.Screen = ScreenMainMenu
		s.AwaitingPrompt = false
		return Effect{Kind: EffectShowScreen, Screen: ScreenMainMenu}

	case ActionOpenDesign:
		if s.Language == "" {
			return forceLanguageSelect(s)
		}
		s.Screen = ScreenProviderMenu
		return Effect{Kind: EffectShowScreen, Screen: ScreenProviderMenu}

	case ActionSelectProvider:
		if s.Language == "" {
			return forceLanguageSelect(s)
		}
		p, ok := providerByID(a.Provider)
		if !ok {
			return Effect{Kind: EffectNotUnderstood}
		}
		s.Provider = p.ID
		s.Model = p.Model
		s.Screen = ScreenSizeMenu
		return Effect{Kind: EffectShowScreen, Screen: ScreenSizeMenu}

	case ActionSelectSize:
		if s.Language == "" {
			return forceLanguageSelect(s)
		}
		s.Ratio = a.Ratio
		s.Screen = ScreenAwaitingPrompt
		s.AwaitingPrompt = true
		return Effect{Kind: EffectShowScreen, Screen: ScreenAwaitingPrompt}

	case ActionMainMenu:
		if s.Language == "" {
			return forceLanguageSelect(s)
		}
		s.Screen = ScreenMainMenu
		s.AwaitingPrompt = false
		return Effect{Kind: EffectShowScreen, Screen: ScreenMainMenu}
	}

	// Unrecognized tags are recoverable: screen stays put
	return Effect{Kind: EffectNotUnderstood}
}

func applyText(s *Session, text string) Effect {
	trimmed := strings.TrimSpace(text)

	// Whitespace is never a prompt, regardless of screen
	if trimmed == "" {
		return Effect{Kind: EffectShowScreen, Screen: s.Screen}
	}

	// A language must be picked before anything else is reachable
	if s.Language == "" {
		return forceLanguageSelect(s)
	}

	if s.Screen == ScreenAwaitingPrompt && s.AwaitingPrompt {
		// Session stays in prompt mode: the next plain message is a
		// new prompt without re-navigating the menu
		return Effect{Kind: EffectGenerate, Prompt: trimmed}
	}

	// User typed instead of tapping a button: re-render the menu
	return Effect{Kind: EffectShowScreen, Screen: s.Screen}
}

func forceLanguageSelect(s *Session) Effect {
	s.Screen = ScreenLanguageSelect
	s.AwaitingPrompt = false
	return Effect{Kind: EffectShowScreen, Screen: ScreenLanguageSelect}
}
