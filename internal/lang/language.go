// Package lang resolves the target language of generated filenames.
//
// Users may type an ISO 639-1 code ("fr"), a locale ("pt-BR") or an English
// language name ("French"). Prompts always receive the English display name,
// which models follow more reliably than bare codes.
package lang

import (
	"fmt"
	"strings"
)

// baseNames maps ISO 639-1 codes to English language names.
// This is not exhaustive but covers the languages vision models handle well.
var baseNames = map[string]string{
	"af": "Afrikaans",
	"ar": "Arabic",
	"bg": "Bulgarian",
	"bn": "Bengali",
	"ca": "Catalan",
	"cs": "Czech",
	"da": "Danish",
	"de": "German",
	"el": "Greek",
	"en": "English",
	"es": "Spanish",
	"et": "Estonian",
	"fa": "Persian",
	"fi": "Finnish",
	"fr": "French",
	"gu": "Gujarati",
	"he": "Hebrew",
	"hi": "Hindi",
	"hr": "Croatian",
	"hu": "Hungarian",
	"id": "Indonesian",
	"it": "Italian",
	"ja": "Japanese",
	"kn": "Kannada",
	"ko": "Korean",
	"lt": "Lithuanian",
	"lv": "Latvian",
	"mk": "Macedonian",
	"ml": "Malayalam",
	"mr": "Marathi",
	"ms": "Malay",
	"nl": "Dutch",
	"no": "Norwegian",
	"pa": "Punjabi",
	"pl": "Polish",
	"pt": "Portuguese",
	"ro": "Romanian",
	"ru": "Russian",
	"sk": "Slovak",
	"sl": "Slovenian",
	"sr": "Serbian",
	"sv": "Swedish",
	"sw": "Swahili",
	"ta": "Tamil",
	"te": "Telugu",
	"th": "Thai",
	"tl": "Tagalog",
	"tr": "Turkish",
	"uk": "Ukrainian",
	"ur": "Urdu",
	"vi": "Vietnamese",
	"zh": "Chinese",
}

// localeNames holds display names for common regional variants.
var localeNames = map[string]string{
	"en-us": "American English",
	"en-gb": "British English",
	"fr-ca": "Canadian French",
	"es-mx": "Mexican Spanish",
	"pt-br": "Brazilian Portuguese",
	"pt-pt": "European Portuguese",
	"zh-cn": "Simplified Chinese",
	"zh-tw": "Traditional Chinese",
}

// codesByName is the reverse index of baseNames and localeNames, keyed by lowercase name.
var codesByName = func() map[string]string {
	m := make(map[string]string, len(baseNames)+len(localeNames))
	for code, name := range baseNames {
		m[strings.ToLower(name)] = code
	}
	for code, name := range localeNames {
		m[strings.ToLower(name)] = code
	}
	return m
}()

// Language is a validated target language.
// The zero value means "not specified" and resolves to English.
type Language struct {
	code string
}

// English is the default output language.
var English = Language{code: "en"}

// Parse resolves a language code, locale or English name.
// Empty input returns the zero Language.
// Returns ErrInvalid if the base language is not recognized.
func Parse(s string) (Language, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Language{}, nil
	}

	if code, ok := codesByName[strings.ToLower(s)]; ok {
		return Language{code: code}, nil
	}

	normalized := Normalize(s)
	if _, ok := baseNames[BaseCode(normalized)]; !ok {
		return Language{}, fmt.Errorf("unknown language %q (use a name like 'English' or an ISO 639-1 code like 'fr', 'pt-BR'): %w",
			s, ErrInvalid)
	}
	return Language{code: normalized}, nil
}

// MustParse parses a language, panicking if invalid.
// Use only for constants and tests.
func MustParse(s string) Language {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Normalize normalizes a language code to lowercase with hyphen separator.
// Accepts: "pt-BR", "pt_BR", "PT-BR", "pt-br" -> "pt-br"
func Normalize(code string) string {
	return strings.ToLower(strings.ReplaceAll(code, "_", "-"))
}

// BaseCode extracts the ISO 639-1 base language code from a locale.
// Examples: "pt-BR" -> "pt", "zh-CN" -> "zh", "en" -> "en"
func BaseCode(code string) string {
	normalized := Normalize(code)
	if idx := strings.Index(normalized, "-"); idx != -1 {
		return normalized[:idx]
	}
	return normalized
}

// IsZero returns true if no language was specified.
func (l Language) IsZero() bool {
	return l.code == ""
}

// OrDefault returns the language, or English if zero.
func (l Language) OrDefault() Language {
	if l.IsZero() {
		return English
	}
	return l
}

// Code returns the normalized code ("pt-br"), or empty for the zero value.
func (l Language) Code() string {
	return l.code
}

// String returns the display name.
func (l Language) String() string {
	return l.DisplayName()
}

// DisplayName returns the English name used in prompts.
// Regional variants without a dedicated name fall back to the base language name.
func (l Language) DisplayName() string {
	l = l.OrDefault()
	if name, ok := localeNames[l.code]; ok {
		return name
	}
	if name, ok := baseNames[BaseCode(l.code)]; ok {
		return name
	}
	return l.code
}

// IsCJK reports whether the language is written mainly with Han, Kana or Hangul.
func (l Language) IsCJK() bool {
	switch BaseCode(l.code) {
	case "zh", "ja", "ko":
		return true
	}
	return false
}
