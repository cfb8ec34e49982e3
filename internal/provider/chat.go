package provider

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/airename/internal/apierr"
)

// chatCompleter abstracts the chat completion call for testing.
// *openai.Client implements this implicitly.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Compile-time interface compliance checks.
var (
	_ Invoker       = (*ChatInvoker)(nil)
	_ chatCompleter = (*openai.Client)(nil)
)

// ChatInvoker calls an OpenAI-compatible /v1/chat/completions endpoint.
// It serves both OpenAI and LM Studio.
type ChatInvoker struct {
	cfg    Config
	client chatCompleter
}

func newChatInvoker(cfg Config, o options) *ChatInvoker {
	client := o.completer
	if client == nil {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		clientCfg.BaseURL = cfg.Endpoint + "/v1"
		clientCfg.HTTPClient = o.httpClient
		client = openai.NewClientWithConfig(clientCfg)
	}
	return &ChatInvoker{cfg: cfg, client: client}
}

// Invoke sends a single user message holding the prompt and one inline
// image part per image, and returns the first choice's content.
func (c *ChatInvoker) Invoke(ctx context.Context, prompt string, images [][]byte) (string, error) {
	ctx, cancel, budget := withBudget(ctx, c.cfg.Timeout)
	defer cancel()

	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: prompt},
	}
	for _, img := range images {
		parts = append(parts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: dataURL(img)},
		})
	}

	req := openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classify(c.cfg, budget, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices: %w", c.cfg.Kind.DisplayName(), ErrEmptyResponse)
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%s returned an empty message: %w", c.cfg.Kind.DisplayName(), ErrEmptyResponse)
	}
	return content, nil
}

// dataURL inlines an image as a base64 data URL.
// The MIME type is sniffed; unknown content is labelled image/jpeg.
func dataURL(img []byte) string {
	mime := http.DetectContentType(img)
	if !strings.HasPrefix(mime, "image/") {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img)
}

// providerError builds a ProviderError from an error body.
func providerError(cfg Config, status int, msg string) error {
	return &apierr.ProviderError{
		Provider:   cfg.Kind.DisplayName(),
		StatusCode: status,
		Message:    msg,
	}
}
