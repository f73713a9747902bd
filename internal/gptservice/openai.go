package gptservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini-2024-07-18"
)

// Completer is the single call contract the pipeline has with the model
// provider: one prompt in, raw text out.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client talks to the OpenAI responses endpoint. It issues exactly one
// request per Complete call: generation is nondeterministic anyway, so a
// failed attempt is reported to the caller instead of retried blindly.
// The caller owns the request timeout through ctx.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient reads the credential and model from the environment. A missing
// key is not an error here; Complete reports it before touching the network
// so the failure is attributable to configuration, not to the provider.
func NewClient() *Client {
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:     os.Getenv("OPENAI_API_KEY"),
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
}

type completionRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// responseEnvelope covers the output-shape variants the provider emits:
// a convenience text field, or a sequence of content blocks whose text may
// live under either "text" or "value".
type responseEnvelope struct {
	OutputText string `json:"output_text"`
	Output     []struct {
		Content []contentBlock `json:"content"`
	} `json:"output"`
}

type contentBlock struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

func (b contentBlock) fragment() string {
	if b.Text != "" {
		return b.Text
	}
	return b.Value
}

func (e responseEnvelope) text() string {
	if e.OutputText != "" {
		return e.OutputText
	}
	var sb strings.Builder
	for _, item := range e.Output {
		for _, block := range item.Content {
			sb.WriteString(block.fragment())
		}
	}
	return sb.String()
}

// Complete sends the prompt and returns the provider's raw textual output.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload, err := json.Marshal(completionRequest{Model: c.model, Input: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Info().Str("model", c.model).Msg("Calling OpenAI responses API")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("provider returned status %s: %s", resp.Status, string(body))
	}

	var envelope responseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("failed to decode provider envelope: %w", err)
	}

	raw := envelope.text()
	if raw == "" {
		return "", ErrEmptyCompletion
	}
	return raw, nil
}
