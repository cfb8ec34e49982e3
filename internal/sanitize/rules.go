package sanitize

import "regexp"

// Rule removes or rewrites one kind of reasoning preamble.
// Every match of Pattern is replaced, not just the first.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// DefaultRules is the preamble table applied in order.
// English rules are case-insensitive and word-bounded so they do not eat into
// ordinary words ("thinking", "answers"). Chinese rules drop everything up to
// and including the marker, since models put their reasoning first.
var DefaultRules = []Rule{
	{Name: "think", Pattern: regexp.MustCompile(`(?i)\bthink\b[:-]?\s*`)},
	{Name: "final-answer", Pattern: regexp.MustCompile(`(?i)\bthe\s+final\s+answer\s+(is|would\s+be)\b[:-]?\s*`)},
	{Name: "the-answer", Pattern: regexp.MustCompile(`(?i)\bthe\s+answer\s+(is|would\s+be)\b[:-]?\s*`)},
	{Name: "so-filename", Pattern: regexp.MustCompile(`(?i)\bso\s+the\s+filename\s+(is|would\s+be|should\s+be)\b[:-]?\s*`)},
	{Name: "therefore", Pattern: regexp.MustCompile(`(?i)\btherefore\b[,:]?\s*`)},
	{Name: "filename-should-be", Pattern: regexp.MustCompile(`(?i)\bthe\s+filename\s+should\s+be\b[:-]?\s*`)},
	{Name: "answer", Pattern: regexp.MustCompile(`(?i)\banswer\b[:-]?\s*`)},
	{Name: "zh-therefore", Pattern: regexp.MustCompile(`^.*?因此[，：、,:]?\s*`)},
	{Name: "zh-so", Pattern: regexp.MustCompile(`^.*?所以[，：、,:]?\s*`)},
	{Name: "zh-filename", Pattern: regexp.MustCompile(`^.*?文件名[应该是为：:，,、\s]*`)},
}

// DefaultStopwords are hyphen segments that never make a filename on their own.
var DefaultStopwords = []string{"think", "answer", "final", "therefore", "so", "the"}

// DefaultSlack is the number of runes kept beyond the requested maximum,
// so case conversion still sees whole words.
const DefaultSlack = 10
