// Package casing converts free text into filename case styles.
//
// Word segmentation is Unicode aware: letters, digits and combining marks form
// words, everything else separates them. Scripts without case (Han, Hiragana,
// Hangul, Thai...) pass through unchanged inside their word.
package casing

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canonical style names.
// These match the names stored in config files and presets.
const (
	Camel       = "camelCase"
	Capital     = "capitalCase"
	Constant    = "constantCase"
	Dot         = "dotCase"
	Kebab       = "kebabCase"
	No          = "noCase"
	Pascal      = "pascalCase"
	PascalSnake = "pascalSnakeCase"
	Path        = "pathCase"
	Sentence    = "sentenceCase"
	Snake       = "snakeCase"
	Train       = "trainCase"
)

// ---------------------------------------------------------------------------
// Style type - represents a validated case style
// ---------------------------------------------------------------------------

// Style represents a validated case style.
// Zero value is invalid and must not be passed to Convert.
// Use ParseStyle to create from user input, or the pre-parsed values.
type Style struct {
	name string
}

// Compile-time interface compliance check.
var _ fmt.Stringer = Style{}

// Pre-parsed styles for use in code.
var (
	CamelStyle       = Style{name: Camel}
	CapitalStyle     = Style{name: Capital}
	ConstantStyle    = Style{name: Constant}
	DotStyle         = Style{name: Dot}
	KebabStyle       = Style{name: Kebab}
	NoStyle          = Style{name: No}
	PascalStyle      = Style{name: Pascal}
	PascalSnakeStyle = Style{name: PascalSnake}
	PathStyle        = Style{name: Path}
	SentenceStyle    = Style{name: Sentence}
	SnakeStyle       = Style{name: Snake}
	TrainStyle       = Style{name: Train}
)

// styleOrder is the canonical order used by Names and in error messages.
var styleOrder = []string{
	Camel, Capital, Constant, Dot, Kebab, No,
	Pascal, PascalSnake, Path, Sentence, Snake, Train,
}

// aliases maps a squashed lowercase spelling to the canonical name.
// "kebab", "kebab-case", "kebab_case" and "kebabCase" all squash to "kebab" or "kebabcase".
var aliases = map[string]string{
	"camel":       Camel,
	"capital":     Capital,
	"title":       Capital,
	"constant":    Constant,
	"dot":         Dot,
	"kebab":       Kebab,
	"param":       Kebab,
	"no":          No,
	"none":        No,
	"pascal":      Pascal,
	"pascalsnake": PascalSnake,
	"path":        Path,
	"sentence":    Sentence,
	"snake":       Snake,
	"train":       Train,
}

// ParseStyle validates and parses a case style name.
// Accepts canonical names (kebabCase) and the usual spellings (kebab, kebab-case, KEBAB_CASE).
// Returns ErrUnknownStyle if the name is not recognized.
func ParseStyle(s string) (Style, error) {
	if strings.TrimSpace(s) == "" {
		return Style{}, fmt.Errorf("case style cannot be empty: %w", ErrUnknownStyle)
	}
	key := squash(s)
	key = strings.TrimSuffix(key, "case")
	if name, ok := aliases[key]; ok {
		return Style{name: name}, nil
	}
	return Style{}, fmt.Errorf("unknown case style %q (use one of: %s): %w",
		s, strings.Join(styleOrder, ", "), ErrUnknownStyle)
}

// MustParseStyle parses a style name, panicking if invalid.
// Use only for constants and tests.
func MustParseStyle(s string) Style {
	st, err := ParseStyle(s)
	if err != nil {
		panic(err)
	}
	return st
}

// squash lowercases s and drops separators so spellings compare equal.
func squash(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if r == '-' || r == '_' || r == ' ' || r == '.' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// String returns the canonical style name.
// Returns empty string for zero value.
func (s Style) String() string {
	return s.name
}

// IsZero returns true if no style is set.
func (s Style) IsZero() bool {
	return s.name == ""
}

// OrDefault returns the style, or KebabStyle if zero.
func (s Style) OrDefault() Style {
	if s.IsZero() {
		return KebabStyle
	}
	return s
}

// Names returns the canonical style names in stable order.
func Names() []string {
	result := make([]string, len(styleOrder))
	copy(result, styleOrder)
	return result
}

// ---------------------------------------------------------------------------
// Conversion
// ---------------------------------------------------------------------------

// Convert rewrites text in the given style.
// Panics if called with the zero Style; validate with ParseStyle first.
func Convert(text string, s Style) string {
	words := Split(text)
	if len(words) == 0 {
		return ""
	}

	// Casers keep internal state and are not safe for concurrent use.
	lower := cases.Lower(language.Und)
	upper := cases.Upper(language.Und)
	title := cases.Title(language.Und)

	join := func(sep string, fn func(i int, w string) string) string {
		out := make([]string, len(words))
		for i, w := range words {
			out[i] = fn(i, w)
		}
		return strings.Join(out, sep)
	}
	toLower := func(_ int, w string) string { return lower.String(w) }
	toTitle := func(_ int, w string) string { return title.String(w) }

	switch s.name {
	case Camel:
		words = mergeSingleRunes(words)
		return join("", func(i int, w string) string {
			if i == 0 {
				return lower.String(w)
			}
			return pascalWord(title, i, w)
		})
	case Capital:
		return join(" ", toTitle)
	case Constant:
		return join("_", func(_ int, w string) string { return upper.String(w) })
	case Dot:
		return join(".", toLower)
	case Kebab:
		return join("-", toLower)
	case No:
		return join(" ", toLower)
	case Pascal:
		words = mergeSingleRunes(words)
		return join("", func(i int, w string) string { return pascalWord(title, i, w) })
	case PascalSnake:
		return join("_", toTitle)
	case Path:
		return join("/", toLower)
	case Sentence:
		return join(" ", func(i int, w string) string {
			if i == 0 {
				return title.String(w)
			}
			return lower.String(w)
		})
	case Snake:
		return join("_", toLower)
	case Train:
		return join("-", toTitle)
	}
	panic(fmt.Sprintf("casing.Convert called with invalid style %q", s.name))
}

// pascalWord capitalizes w. A word after the first that starts with a digit
// gets an underscore prefix so "version 2" stays readable as "Version_2".
func pascalWord(title cases.Caser, i int, w string) string {
	if i > 0 && startsWithDigit(w) {
		return "_" + title.String(w)
	}
	return title.String(w)
}

// mergeSingleRunes joins runs of one-rune words ("x", "y" -> "xy"). Without
// separators "XY" would split back as a single acronym.
func mergeSingleRunes(words []string) []string {
	out := make([]string, 0, len(words))
	prevSingle := false
	for _, w := range words {
		single := utf8.RuneCountInString(w) == 1
		if single && prevSingle {
			out[len(out)-1] += w
			continue
		}
		out = append(out, w)
		prevSingle = single
	}
	return out
}

func startsWithDigit(w string) bool {
	for _, r := range w {
		return unicode.IsDigit(r)
	}
	return false
}

// Split breaks text into words.
// Boundaries: any rune that is not a letter, digit or mark; an upper-case
// letter after anything but another upper-case letter ("fooBar", "東京Night");
// an upper-case run followed by a capitalized word ("XMLParser" -> "XML", "Parser").
func Split(text string) []string {
	runes := []rune(text)
	var words []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		if !isWordRune(r) {
			flush()
			continue
		}
		if len(cur) > 0 && unicode.IsUpper(r) {
			prev := cur[len(cur)-1]
			switch {
			case !unicode.IsUpper(prev):
				flush()
			case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
