// Package transcription sends recorded audio to a Whisper-compatible
// speech-to-text API.
package transcription

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"commons/internal/middleware"
	"commons/internal/observability"
	"commons/internal/resilience"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
)

// ErrTranscriptionFailed is the single error surfaced to callers for any
// provider, network or audio failure.
var ErrTranscriptionFailed = errors.New("transcription failed")

// errProviderRejected marks a request the provider refused because of the
// audio itself. It is the caller's failure, not the provider's.
var errProviderRejected = errors.New("provider rejected audio")

const (
	defaultModel    = "whisper-1"
	defaultLanguage = "en"
)

// Transcriber turns raw audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Config holds the provider connection settings.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client calls POST {BaseURL}/audio/transcriptions.
type Client struct {
	apiKey   string
	baseURL  string
	model    string
	language string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker[string]
	now      func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithModel overrides the speech-to-text model name.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithClock overrides the clock used for recording file names.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func NewClient(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	c := &Client{
		apiKey:   cfg.APIKey,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		model:    defaultModel,
		language: defaultLanguage,
		http:     &http.Client{Timeout: timeout},
		now:      time.Now,
		breaker: resilience.NewBreaker[string](resilience.BreakerConfig{
			Name: "transcription",
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, errProviderRejected)
			},
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe returns the text for audio. Failures are logged with detail and
// reported as ErrTranscriptionFailed.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		observability.TranscriptionRequests.WithLabelValues("empty").Inc()
		return "", ErrTranscriptionFailed
	}

	start := time.Now()
	text, err := c.breaker.Execute(func() (string, error) {
		return c.send(ctx, audio)
	})
	observability.TranscriptionLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := "error"
		switch {
		case resilience.IsRejected(err):
			outcome = "circuit_open"
		case errors.Is(err, errProviderRejected):
			outcome = "rejected"
		}
		observability.TranscriptionRequests.WithLabelValues(outcome).Inc()
		middleware.Logger.ErrorContext(ctx, "transcription failed", "error", err, "audio_bytes", len(audio))
		return "", ErrTranscriptionFailed
	}

	observability.TranscriptionRequests.WithLabelValues("ok").Inc()
	return text, nil
}

func (c *Client) send(ctx context.Context, audio []byte) (text string, err error) {
	ctx, span := observability.StartClientSpan(ctx, "transcription.create",
		attribute.String("transcription.model", c.model),
		attribute.Int("transcription.audio_bytes", len(audio)))
	defer func() { observability.EndSpan(span, err) }()

	body, contentType, err := c.multipartBody(audio)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		detail := truncate(string(raw), 200)
		if isAudioRejection(resp.StatusCode) {
			return "", fmt.Errorf("%w: provider returned %d: %s", errProviderRejected, resp.StatusCode, detail)
		}
		return "", fmt.Errorf("provider returned %d: %s", resp.StatusCode, detail)
	}

	var out transcriptionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return strings.TrimSpace(out.Text), nil
}

func (c *Client) multipartBody(audio []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := fmt.Sprintf("recording-%d.webm", c.now().UnixMilli())
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, "", fmt.Errorf("write audio: %w", err)
	}
	for field, value := range map[string]string{
		"model":           c.model,
		"language":        c.language,
		"response_format": "json",
	} {
		if err := w.WriteField(field, value); err != nil {
			return nil, "", fmt.Errorf("write %s: %w", field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// isAudioRejection reports 4xx statuses caused by the submitted audio.
// Auth failures and throttling stay provider failures since they hit every caller.
func isAudioRejection(status int) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return false
	}
	return status >= 400 && status < 500
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
