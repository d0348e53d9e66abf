package locales

import (
	"strings"
	"testing"
)

func TestText_KnownLanguage(t *testing.T) {
	if got := Text("en", "main_menu"); got == "main_menu" {
		t.Error("Expected a translated string for en/main_menu, got the key back")
	}
	ru := Text("ru", "main_menu")
	en := Text("en", "main_menu")
	if ru == en {
		t.Error("Expected ru and en translations to differ")
	}
}

func TestText_FallsBackToDefaultLanguage(t *testing.T) {
	if got, want := Text("de", "main_menu"), Text(DefaultLang, "main_menu"); got != want {
		t.Errorf("Expected fallback to %s, got %q", DefaultLang, got)
	}
	if got, want := Text("", "main_menu"), Text(DefaultLang, "main_menu"); got != want {
		t.Errorf("Expected empty language to fall back, got %q", got)
	}
}

func TestText_MissingKeyReturnsKey(t *testing.T) {
	if got := Text("en", "no_such_key"); got != "no_such_key" {
		t.Errorf("Expected key echo for missing key, got %q", got)
	}
}

func TestTextf_SubstitutesPlaceholders(t *testing.T) {
	got := Textf("en", "prompt_instructions", map[string]string{"ratio": "9:16"})
	if !strings.Contains(got, "9:16") {
		t.Errorf("Expected ratio substituted into %q", got)
	}
	if strings.Contains(got, "{ratio}") {
		t.Errorf("Expected placeholder replaced, got %q", got)
	}
}

func TestAllLanguagesCoverTheSameKeys(t *testing.T) {
	base := translations[DefaultLang]
	for lang, table := range translations {
		for key := range base {
			if _, ok := table[key]; !ok {
				t.Errorf("Language %s is missing key %s", lang, key)
			}
		}
		for key := range table {
			if _, ok := base[key]; !ok {
				t.Errorf("Language %s has extra key %s", lang, key)
			}
		}
	}
}
