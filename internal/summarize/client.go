package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "openai/gpt-oss-120b"

	maxRetryDelay = 30 * time.Second
)

// ErrEmptyText is returned for a request with nothing to summarize.
var ErrEmptyText = errors.New("no text provided")

// Summarizer produces a summary of paper text.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (Result, error)
	Model() string
}

// Config holds everything the model client needs. It is passed in at
// construction; the client never reads the environment itself.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	MaxInputTokens int
	HTTPClient     *http.Client // optional (tests)
}

// Request is one summarization call.
type Request struct {
	Text        string
	SectionName string
	Mode        Mode
}

// Result is a model answer plus call metadata.
type Result struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Mode      Mode   `json:"mode" yaml:"mode"`
	Model     string `json:"model" yaml:"model"`
	Clipped   bool   `json:"clipped" yaml:"clipped"`
	LatencyMs int64  `json:"latency_ms" yaml:"latency_ms"`
	// Parsed is set for chain-of-thought answers.
	Parsed *Parsed `json:"parsed,omitempty" yaml:"parsed,omitempty"`
}

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	client         openai.Client
	httpClient     *http.Client
	model          string
	maxRetries     int
	retryDelay     time.Duration
	maxInputTokens int
	log            *slog.Logger

	Stats *LLMStats
}

func NewClient(cfg Config, log *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithHTTPClient(httpClient),
		// retry-go owns retries, see Summarize.
		option.WithMaxRetries(0),
	}

	return &Client{
		client:         openai.NewClient(opts...),
		httpClient:     httpClient,
		model:          cfg.Model,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
		maxInputTokens: cfg.MaxInputTokens,
		log:            log,
		Stats:          NewLLMStats(time.Hour),
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Summarize sends one prompt and returns the trimmed answer. Rate limits,
// server errors and transport failures are retried with exponential backoff.
func (c *Client) Summarize(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return Result{}, ErrEmptyText
	}
	if req.Mode == "" {
		req.Mode = Baseline
	}
	gen, ok := generationByMode[req.Mode]
	if !ok {
		return Result{}, fmt.Errorf("unknown summary mode %q", req.Mode)
	}

	text, clipped := ClipToTokens(req.Text, c.maxInputTokens)
	prompt := BuildPrompt(req.Mode, text, req.SectionName)

	callID := uuid.NewString()
	log := c.log.With("call_id", callID, "mode", string(req.Mode), "model", c.model)
	if clipped {
		log.Warn("input clipped to token budget", "max_input_tokens", c.maxInputTokens)
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(gen.temperature),
		MaxTokens:   openai.Int(gen.maxTokens),
	}

	start := time.Now()
	completion, err := retry.DoWithData(
		func() (*openai.ChatCompletion, error) {
			return c.client.Chat.Completions.New(ctx, params)
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries+1)),
		retry.Delay(c.retryDelay),
		retry.MaxDelay(maxRetryDelay),
		retry.MaxJitter(max(c.retryDelay/2, time.Millisecond)),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.LastErrorOnly(true),
		retry.RetryIf(IsRetryable),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("retryable model error", "attempt", n, "error", err)
		}),
	)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		c.Stats.Record(req.Mode, elapsed, true)
		log.Error("summarize failed", "error", err, "duration_ms", elapsed)
		return Result{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		c.Stats.Record(req.Mode, elapsed, true)
		return Result{}, errors.New("chat completion: empty response")
	}
	c.Stats.Record(req.Mode, elapsed, false)
	log.Info("summarize complete", "duration_ms", elapsed, "clipped", clipped)

	result := Result{
		ID:        callID,
		Text:      strings.TrimSpace(completion.Choices[0].Message.Content),
		Mode:      req.Mode,
		Model:     c.model,
		Clipped:   clipped,
		LatencyMs: elapsed,
	}
	if req.Mode == ChainOfThought {
		parsed := ParseChainOfThought(result.Text)
		result.Parsed = &parsed
	}
	return result, nil
}

// IsRetryable reports whether a failed call is worth repeating: rate limits,
// 5xx responses and transport errors are; cancellation and 4xx are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	return true
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
