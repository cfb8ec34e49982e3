// Package prompt assembles the instruction sent to the model for one file.
//
// Build is a pure function: the same Options always produce the same string,
// so prompts can be asserted byte for byte in tests.
package prompt

import (
	"fmt"
	"strings"

	"github.com/alnah/airename/internal/casing"
	"github.com/alnah/airename/internal/lang"
)

// MaxContentChars bounds the text content embedded in a prompt, in runes.
// Large documents add latency without improving the filename.
const MaxContentChars = 10000

// Options holds everything the prompt depends on.
// Zero Case and Language resolve to kebabCase and English.
type Options struct {
	Case               casing.Style
	MaxChars           int
	Language           lang.Language
	Content            string
	VideoPrompt        string
	CustomInstructions string
}

// Build returns the prompt for opts.
// Sections are always in this order: video context, generic rules,
// content, custom instructions. Empty optional sections are omitted.
func Build(opts Options) string {
	style := opts.Case.OrDefault().String()
	language := opts.Language.OrDefault().DisplayName()

	var lines []string

	if opts.VideoPrompt != "" {
		lines = append(lines, opts.VideoPrompt, "")
	}

	lines = append(lines,
		"Generate a concise, descriptive filename for the following content:",
		fmt.Sprintf("- Use %s format", style),
		fmt.Sprintf("- Maximum %d characters", opts.MaxChars),
		fmt.Sprintf("- Use %s language in the filename", language),
		"- Exclude file extension",
		"- Avoid special characters",
		"- Output only the filename",
		"",
		fmt.Sprintf("IMPORTANT: Your entire response should be just the filename in %s format, in %s language, and max %d characters. Do not include any other text.",
			style, language, opts.MaxChars),
	)

	if opts.Content != "" {
		lines = append(lines, "", "Content:", truncate(opts.Content, MaxContentChars))
	}

	if opts.CustomInstructions != "" {
		lines = append(lines, "", "Custom instructions:", opts.CustomInstructions)
	}

	return strings.Join(lines, "\n")
}

// VideoContext returns the prefix describing frames sampled from one video.
func VideoContext(frames int) string {
	if frames == 1 {
		return "The attached image is a frame extracted from a video. Name the video, not the frame."
	}
	return fmt.Sprintf("The %d attached images are frames extracted at evenly spaced intervals from a single video, in order. Name the video as a whole, not an individual frame.", frames)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
