package bot

import "strings"

// ActionKind is the closed set of button actions. Callback data is
// decoded into an Action once at the boundary; nothing downstream
// matches on raw callback strings.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionSelectLanguage
	ActionOpenDesign
	ActionSelectProvider
	ActionSelectSize
	ActionMainMenu
)

// Action is a decoded button press with its typed payload
type Action struct {
	Kind     ActionKind
	Language string
	Provider string
	Ratio    Ratio
}

const (
	prefixLang     = "lang:"
	prefixProvider = "provider:"
	prefixSize     = "size:"
	tagDesign      = "design"
	tagMainMenu    = "menu:main"
)

// languageNames doubles as the set of selectable languages and their
// button labels
var languageNames = map[string]string{
	"ru": "🇷🇺 Русский",
	"en": "🇬🇧 English",
}

// languageOrder fixes the button order on the language screen
var languageOrder = []string{"ru", "en"}

// DecodeAction parses callback data into an Action, validating every
// payload. Anything unrecognized decodes to ActionUnknown.
func DecodeAction(data string) Action {
	switch {
	case data == tagDesign:
		return Action{Kind: ActionOpenDesign}

	case data == tagMainMenu:
		return Action{Kind: ActionMainMenu}

	case strings.HasPrefix(data, prefixLang):
		lang := strings.TrimPrefix(data, prefixLang)
		if _, ok := languageNames[lang]; ok {
			return Action{Kind: ActionSelectLanguage, Language: lang}
		}

	case strings.HasPrefix(data, prefixProvider):
		id := strings.TrimPrefix(data, prefixProvider)
		if _, ok := providerByID(id); ok {
			return Action{Kind: ActionSelectProvider, Provider: id}
		}

	case strings.HasPrefix(data, prefixSize):
		if ratio, ok := ParseRatio(strings.TrimPrefix(data, prefixSize)); ok {
			return Action{Kind: ActionSelectSize, Ratio: ratio}
		}
	}

	return Action{Kind: ActionUnknown}
}

// Encode renders the callback data for a button carrying this action
func (a Action) Encode() string {
	switch a.Kind {
	case ActionSelectLanguage:
		return prefixLang + a.Language
	case ActionOpenDesign:
		return tagDesign
	case ActionSelectProvider:
		return prefixProvider + a.Provider
	case ActionSelectSize:
		return prefixSize + string(a.Ratio)
	case ActionMainMenu:
		return tagMainMenu
	}
	return ""
}
