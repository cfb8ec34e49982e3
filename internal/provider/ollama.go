package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Compile-time interface compliance check.
var _ Invoker = (*OllamaInvoker)(nil)

// OllamaInvoker calls Ollama's /api/generate endpoint without streaming.
type OllamaInvoker struct {
	cfg        Config
	httpClient httpDoer
}

func newOllamaInvoker(cfg Config, client httpDoer) *OllamaInvoker {
	return &OllamaInvoker{cfg: cfg, httpClient: client}
}

// ollamaRequest represents an Ollama generate request.
type ollamaRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Stream bool     `json:"stream"`
	Images []string `json:"images,omitempty"`
}

// ollamaResponse represents a non-streaming Ollama generate response.
type ollamaResponse struct {
	Response string          `json:"response"`
	Error    json.RawMessage `json:"error,omitempty"`
}

// Invoke sends prompt and images (base64-encoded) and returns the response field.
func (o *OllamaInvoker) Invoke(ctx context.Context, prompt string, images [][]byte) (string, error) {
	ctx, cancel, budget := withBudget(ctx, o.cfg.Timeout)
	defer cancel()

	text, err := o.generate(ctx, prompt, images)
	if err != nil {
		return "", classify(o.cfg, budget, err)
	}
	return text, nil
}

func (o *OllamaInvoker) generate(ctx context.Context, prompt string, images [][]byte) (_ string, err error) {
	reqBody := ollamaRequest{
		Model:  o.cfg.Model,
		Prompt: prompt,
		Stream: false,
	}
	for _, img := range images {
		reqBody.Images = append(reqBody.Images, base64.StdEncoding.EncodeToString(img))
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.Endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if o.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", err
	}

	var result ollamaResponse
	parseErr := json.Unmarshal(respBody, &result)

	if msg := errorMessage(result.Error); msg != "" {
		return "", providerError(o.cfg, resp.StatusCode, msg)
	}
	if resp.StatusCode != http.StatusOK {
		return "", providerError(o.cfg, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	if parseErr != nil {
		return "", fmt.Errorf("failed to parse response: %w", parseErr)
	}
	if strings.TrimSpace(result.Response) == "" {
		return "", ErrEmptyResponse
	}
	return result.Response, nil
}

// errorMessage extracts the message of an Ollama-style error field.
// Both {"error":"..."} and {"error":{"message":"..."}} appear in the wild.
func errorMessage(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	return string(raw)
}
