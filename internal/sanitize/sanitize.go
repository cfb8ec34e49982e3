// Package sanitize turns a raw model response into a filename candidate.
//
// Models rarely answer with just a filename. They prepend reasoning
// ("Think: the answer is ..."), chain clauses with hyphens, add quotes or an
// extension. Clean strips all of that and bounds the length; case conversion
// happens afterwards.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

// extSuffix matches a trailing file extension such as ".jpg" or ".md".
var extSuffix = regexp.MustCompile(`(?i)\.[a-z][a-z0-9]{1,3}$`)

// Sanitizer cleans model responses.
// A Sanitizer is immutable after construction and safe for concurrent use.
type Sanitizer struct {
	rules     []Rule
	stopwords map[string]struct{}
	slack     int
}

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithRules replaces the preamble rule table.
func WithRules(rules []Rule) Option {
	return func(s *Sanitizer) {
		s.rules = append([]Rule(nil), rules...)
	}
}

// WithStopwords replaces the hyphen-segment stoplist.
// Matching is case-insensitive.
func WithStopwords(words []string) Option {
	return func(s *Sanitizer) {
		s.stopwords = stopset(words)
	}
}

// WithSlack sets how many runes beyond maxChars are kept.
// Negative values are ignored.
func WithSlack(n int) Option {
	return func(s *Sanitizer) {
		if n >= 0 {
			s.slack = n
		}
	}
}

// New creates a Sanitizer with the default rules, stoplist and slack.
func New(opts ...Option) *Sanitizer {
	s := &Sanitizer{
		rules:     DefaultRules,
		stopwords: stopset(DefaultStopwords),
		slack:     DefaultSlack,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSanitizer = New()

// Clean cleans raw with the default Sanitizer.
func Clean(raw string, maxChars int) (string, error) {
	return defaultSanitizer.Clean(raw, maxChars)
}

// maxPasses bounds the cleanup loop for rule sets whose replacements grow text.
const maxPasses = 8

// Clean extracts a filename candidate from raw, at most maxChars+slack runes long.
// Passes repeat until the text stops changing, so a truncation that exposes
// a new preamble match is cleaned too. Returns ErrEmptyResult if nothing
// usable remains.
func (s *Sanitizer) Clean(raw string, maxChars int) (string, error) {
	text := strings.TrimSpace(strings.Map(controlToSpace, raw))

	for range maxPasses {
		next := s.pass(text, maxChars+s.slack)
		if next == text {
			break
		}
		text = next
	}

	if text == "" {
		return "", ErrEmptyResult
	}
	return text, nil
}

// pass applies the rules, segment choice, trimming, truncation to limit
// runes and extension removal once.
func (s *Sanitizer) pass(text string, limit int) string {
	for _, r := range s.rules {
		text = r.Pattern.ReplaceAllString(text, r.Replacement)
	}

	if strings.Contains(text, "-") {
		text = s.pickSegment(strings.Split(text, "-"))
	}

	text = trimEdges(text)
	text = truncate(text, limit)
	return dropExtension(text)
}

// pickSegment selects the meaningful clause of a hyphen-chained answer.
// The first CJK segment longer than three runes wins; otherwise the last
// remaining segment. Returns "" when every segment is filtered out.
func (s *Sanitizer) pickSegment(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		word := strings.ToLower(strings.TrimSpace(p))
		if word == "" || len([]rune(word)) <= 1 {
			continue
		}
		if _, stop := s.stopwords[word]; stop {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return ""
	}
	for _, p := range kept {
		if hasCJK(p) && len([]rune(strings.TrimSpace(p))) > 3 {
			return p
		}
	}
	return kept[len(kept)-1]
}

// dropExtension removes trailing extension-like suffixes until none is left.
func dropExtension(text string) string {
	for {
		stripped := trimEdges(extSuffix.ReplaceAllString(text, ""))
		if stripped == text {
			return text
		}
		text = stripped
	}
}

func trimEdges(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || r == '_' || r == '-'
	})
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return trimEdges(string(runes[:n]))
}

func controlToSpace(r rune) rune {
	if unicode.IsControl(r) {
		return ' '
	}
	return r
}

func hasCJK(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
			return true
		}
	}
	return false
}

func stopset(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return set
}
