package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"imagebot/internal/locales"
)

// screenText returns the localized text for the session's screen
func screenText(s Session) string {
	switch s.Screen {
	case ScreenMainMenu:
		return locales.Text(s.Language, "main_menu")
	case ScreenProviderMenu:
		return locales.Text(s.Language, "choose_provider")
	case ScreenSizeMenu:
		return locales.Text(s.Language, "choose_size")
	case ScreenAwaitingPrompt:
		return locales.Textf(s.Language, "prompt_instructions", map[string]string{
			"ratio": string(s.ratioOrDefault()),
		})
	default:
		return locales.Text(s.Language, "choose_language")
	}
}

// screenKeyboard builds the inline keyboard for the session's screen.
// enabled filters providers down to backends that have a configured
// client.
func screenKeyboard(s Session, enabled map[string]bool) tgbotapi.InlineKeyboardMarkup {
	switch s.Screen {
	case ScreenMainMenu:
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					locales.Text(s.Language, "btn_ai_design"),
					Action{Kind: ActionOpenDesign}.Encode(),
				),
			),
		)

	case ScreenProviderMenu:
		var rows [][]tgbotapi.InlineKeyboardButton
		for _, p := range providers {
			if !enabled[p.Backend] {
				continue
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					p.Name,
					Action{Kind: ActionSelectProvider, Provider: p.ID}.Encode(),
				),
			))
		}
		rows = append(rows, mainMenuRow(s.Language))
		return tgbotapi.NewInlineKeyboardMarkup(rows...)

	case ScreenSizeMenu:
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				sizeButton(RatioSquare),
				sizeButton(RatioPortrait),
				sizeButton(RatioLandscape),
			),
			mainMenuRow(s.Language),
		)

	case ScreenAwaitingPrompt:
		return tgbotapi.NewInlineKeyboardMarkup(mainMenuRow(s.Language))

	default:
		var rows [][]tgbotapi.InlineKeyboardButton
		for _, lang := range languageOrder {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					languageNames[lang],
					Action{Kind: ActionSelectLanguage, Language: lang}.Encode(),
				),
			))
		}
		return tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
}

func sizeButton(r Ratio) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(
		string(r),
		Action{Kind: ActionSelectSize, Ratio: r}.Encode(),
	)
}

func mainMenuRow(lang string) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(
			locales.Text(lang, "btn_main_menu"),
			Action{Kind: ActionMainMenu}.Encode(),
		),
	)
}
