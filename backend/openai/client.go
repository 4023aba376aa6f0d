// Package openai implements the backend interfaces against an
// OpenAI-compatible HTTP API: chat completions, audio transcription, and
// speech synthesis. Any endpoint speaking the same wire format works via
// BaseURL.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/parley-sh/parley/backend"
	"github.com/parley-sh/parley/core/protocol"
)

const defaultTimeout = 60 * time.Second

// Client talks to an OpenAI-compatible API.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	voice   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithVoice selects the synthesis voice for Speak.
func WithVoice(voice string) Option {
	return func(c *Client) { c.voice = voice }
}

// NewClient creates a Client for the given endpoint and model.
func NewClient(apiKey, baseURL, model string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		voice:   "alloy",
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks that the client has enough configuration to make requests.
func (c *Client) Validate() error {
	if c.baseURL == "" {
		return errors.New("base URL is empty")
	}
	if c.model == "" {
		return errors.New("model is empty")
	}
	return nil
}

// Send implements backend.Chat via the chat completions endpoint.
func (c *Client) Send(ctx context.Context, req backend.ChatRequest) (string, error) {
	messages := make([]protocol.Message, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, protocol.NewMessage(protocol.RoleSystem, req.System))
	}
	messages = append(messages, req.Messages...)

	body := map[string]any{
		"model":    c.model,
		"messages": messages,
	}
	for k, v := range req.Options {
		body[k] = v
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(msg))
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", nil
	}

	return decoded.Choices[0].Message.Content, nil
}

// Transcribe implements backend.Transcriber via the audio transcription
// endpoint. The captured file is uploaded as multipart form data.
func (c *Client) Transcribe(ctx context.Context, req backend.AudioRequest) (string, error) {
	f, err := os.Open(req.Audio)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filepath.Base(req.Audio))
	if err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("failed to read audio file: %w", err)
	}
	if err := form.WriteField("model", c.model); err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}
	for k, v := range req.Options {
		if err := form.WriteField(k, fmt.Sprint(v)); err != nil {
			return "", fmt.Errorf("failed to build form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", form.FormDataContentType())
	c.authorize(httpReq)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(msg))
	}

	var decoded struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return decoded.Text, nil
}

// Speak implements backend.Speaker via the speech synthesis endpoint. The
// synthesized audio is written to a temp file and handed to the first
// available player. Playback failures are swallowed; speech is best-effort.
func (c *Client) Speak(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"voice": c.voice,
		"input": text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/speech", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(msg))
	}

	tmp, err := os.CreateTemp("", "parley-speech-*.mp3")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write audio: %w", err)
	}

	play(ctx, tmp.Name())
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
