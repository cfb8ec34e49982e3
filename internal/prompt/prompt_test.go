package prompt_test

// Notes:
// - Unlike most prompt code, the exact text is part of the contract here:
//   section order must stay fixed so results are reproducible.
// - Expected prompts are spelled out line by line.

import (
	"strings"
	"testing"

	"github.com/alnah/airename/internal/casing"
	"github.com/alnah/airename/internal/lang"
	"github.com/alnah/airename/internal/prompt"
)

var rules = []string{
	"Generate a concise, descriptive filename for the following content:",
	"- Use snakeCase format",
	"- Maximum 30 characters",
	"- Use French language in the filename",
	"- Exclude file extension",
	"- Avoid special characters",
	"- Output only the filename",
	"",
	"IMPORTANT: Your entire response should be just the filename in snakeCase format, in French language, and max 30 characters. Do not include any other text.",
}

func lines(parts ...[]string) string {
	var all []string
	for _, p := range parts {
		all = append(all, p...)
	}
	return strings.Join(all, "\n")
}

// ---------------------------------------------------------------------------
// TestBuild - section ordering and optional sections
// ---------------------------------------------------------------------------

func TestBuild(t *testing.T) {
	t.Parallel()

	base := prompt.Options{
		Case:     casing.SnakeStyle,
		MaxChars: 30,
		Language: lang.MustParse("fr"),
	}

	withAll := base
	withAll.VideoPrompt = "VIDEO"
	withAll.Content = "quarterly numbers"
	withAll.CustomInstructions = "prefix with date"

	withContent := base
	withContent.Content = "quarterly numbers"

	withCustom := base
	withCustom.CustomInstructions = "prefix with date"

	tests := []struct {
		name string
		opts prompt.Options
		want string
	}{
		{
			name: "rules only",
			opts: base,
			want: lines(rules),
		},
		{
			name: "content appended",
			opts: withContent,
			want: lines(rules, []string{"", "Content:", "quarterly numbers"}),
		},
		{
			name: "custom instructions appended",
			opts: withCustom,
			want: lines(rules, []string{"", "Custom instructions:", "prefix with date"}),
		},
		{
			name: "all sections in order",
			opts: withAll,
			want: lines(
				[]string{"VIDEO", ""},
				rules,
				[]string{"", "Content:", "quarterly numbers"},
				[]string{"", "Custom instructions:", "prefix with date"},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := prompt.Build(tt.opts)
			if got != tt.want {
				t.Errorf("Build() =\n%s\n\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	got := prompt.Build(prompt.Options{MaxChars: 50})
	if !strings.Contains(got, "- Use kebabCase format") {
		t.Errorf("Build() missing default case line:\n%s", got)
	}
	if !strings.Contains(got, "- Use English language in the filename") {
		t.Errorf("Build() missing default language line:\n%s", got)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()

	opts := prompt.Options{
		Case:        casing.PascalStyle,
		MaxChars:    20,
		Language:    lang.MustParse("Japanese"),
		Content:     "meeting notes",
		VideoPrompt: prompt.VideoContext(3),
	}
	if prompt.Build(opts) != prompt.Build(opts) {
		t.Error("Build() is not deterministic")
	}
}

func TestBuild_TruncatesContent(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("文", prompt.MaxContentChars+500)
	got := prompt.Build(prompt.Options{MaxChars: 50, Content: content})

	idx := strings.Index(got, "Content:\n")
	if idx < 0 {
		t.Fatalf("Build() missing content section")
	}
	embedded := got[idx+len("Content:\n"):]
	if n := len([]rune(embedded)); n != prompt.MaxContentChars {
		t.Errorf("embedded content has %d runes, want %d", n, prompt.MaxContentChars)
	}
}

// ---------------------------------------------------------------------------
// TestVideoContext
// ---------------------------------------------------------------------------

func TestVideoContext(t *testing.T) {
	t.Parallel()

	if got := prompt.VideoContext(3); !strings.Contains(got, "3 attached images") {
		t.Errorf("VideoContext(3) = %q, want frame count", got)
	}
	if got := prompt.VideoContext(1); strings.Contains(got, "images") {
		t.Errorf("VideoContext(1) = %q, want singular wording", got)
	}
}
