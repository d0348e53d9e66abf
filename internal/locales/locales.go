package locales

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultLang is used when the requested language or key is missing
const DefaultLang = "ru"

//go:embed *.json
var localeFiles embed.FS

var translations map[string]map[string]string

func init() {
	translations = make(map[string]map[string]string)

	entries, err := localeFiles.ReadDir(".")
	if err != nil {
		panic(fmt.Sprintf("failed to read embedded locales: %v", err))
	}

	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".json")
		content, err := localeFiles.ReadFile(entry.Name())
		if err != nil {
			panic(fmt.Sprintf("failed to read locale %s: %v", entry.Name(), err))
		}

		table := make(map[string]string)
		if err := json.Unmarshal(content, &table); err != nil {
			panic(fmt.Sprintf("failed to parse locale %s: %v", entry.Name(), err))
		}
		translations[lang] = table
	}
}

// Languages returns the codes of all embedded languages
func Languages() []string {
	langs := make([]string, 0, len(translations))
	for lang := range translations {
		langs = append(langs, lang)
	}
	return langs
}

// Text returns the string for the given language and key, falling back
// to DefaultLang when the language or key is missing
func Text(lang, key string) string {
	if table, ok := translations[lang]; ok {
		if val, ok := table[key]; ok {
			return val
		}
	}
	if val, ok := translations[DefaultLang][key]; ok {
		return val
	}
	return key
}

// Textf returns Text with {placeholder} occurrences substituted
func Textf(lang, key string, repl map[string]string) string {
	s := Text(lang, key)
	for name, value := range repl {
		s = strings.ReplaceAll(s, "{"+name+"}", value)
	}
	return s
}
