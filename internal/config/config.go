package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/blongho/cap5610-project/internal/parser"
	"github.com/blongho/cap5610-project/internal/sections"
	"github.com/blongho/cap5610-project/internal/summarize"
)

type Config struct {
	Port string `yaml:"port"`

	// OpenAI-compatible model endpoint
	OpenAIAPIKey      string        `yaml:"openai_api_key"`
	OpenAIBaseURL     string        `yaml:"openai_base_url"`
	OpenAIModel       string        `yaml:"openai_model"`
	LLMTimeout        time.Duration `yaml:"llm_timeout"`
	LLMMaxRetries     int           `yaml:"llm_max_retries"`
	LLMMaxInputTokens int           `yaml:"llm_max_input_tokens"`

	// Auth
	APIKey string `yaml:"api_key"`

	CORSOrigins []string `yaml:"cors_origins"`

	// Upload limits
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
	PreviewChars   int   `yaml:"preview_chars"`

	// Segmentation
	SectionDuplicatePolicy string `yaml:"section_duplicate_policy"`

	// PDF
	PDFFallbackPdftotext bool `yaml:"pdf_fallback_pdftotext"`
	PDFValidate          bool `yaml:"pdf_validate"`
	AcceptExtraFormats   bool `yaml:"accept_extra_formats"`
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8000"),

		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     envOr("OPENAI_BASE_URL", "https://api.groq.com/openai/v1"),
		OpenAIModel:       envOr("OPENAI_MODEL", "openai/gpt-oss-120b"),
		LLMTimeout:        envDuration("LLM_TIMEOUT", 120*time.Second),
		LLMMaxRetries:     envInt("LLM_MAX_RETRIES", 3),
		LLMMaxInputTokens: envInt("LLM_MAX_INPUT_TOKENS", 12000),

		APIKey: os.Getenv("API_KEY"),

		CORSOrigins: envList("CORS_ORIGINS", []string{"http://localhost:5173"}),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB
		PreviewChars:   envInt("PREVIEW_CHARS", 2000),

		SectionDuplicatePolicy: envOr("SECTION_DUPLICATE_POLICY", "overwrite"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", false),
		PDFValidate:          envBool("PDF_VALIDATE", true),
		AcceptExtraFormats:   envBool("ACCEPT_EXTRA_FORMATS", false),
	}
	cfg.applyDefaults()
	return cfg
}

// LoadFile loads the environment and then overlays the YAML file at path.
// Keys absent from the file keep their environment value.
func LoadFile(path string) (Config, error) {
	cfg := Load()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LLMTimeout <= 0 {
		c.LLMTimeout = 120 * time.Second
	}
	if c.LLMMaxRetries < 0 {
		c.LLMMaxRetries = 0
	}
	if c.LLMMaxInputTokens < 0 {
		c.LLMMaxInputTokens = 0
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 52428800
	}
	if c.PreviewChars <= 0 {
		c.PreviewChars = 2000
	}
}

// Policy returns the parsed duplicate section policy. Call Validate first.
func (c Config) Policy() sections.Policy {
	p, _ := sections.ParsePolicy(c.SectionDuplicatePolicy)
	return p
}

// Summarize returns the model client settings.
func (c Config) Summarize() summarize.Config {
	return summarize.Config{
		APIKey:         c.OpenAIAPIKey,
		BaseURL:        c.OpenAIBaseURL,
		Model:          c.OpenAIModel,
		Timeout:        c.LLMTimeout,
		MaxRetries:     c.LLMMaxRetries,
		MaxInputTokens: c.LLMMaxInputTokens,
	}
}

// Parser returns the document source options.
func (c Config) Parser() parser.Options {
	return parser.Options{
		PdftotextFallback: c.PDFFallbackPdftotext,
		ExtraFormats:      c.AcceptExtraFormats,
	}
}

// Validate checks settings every command needs.
func (c Config) Validate() error {
	if _, err := sections.ParsePolicy(c.SectionDuplicatePolicy); err != nil {
		return fmt.Errorf("SECTION_DUPLICATE_POLICY: %w", err)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT %q is not a number", c.Port)
	}
	return nil
}

// ValidateLLM checks the settings needed to reach the model endpoint.
func (c Config) ValidateLLM() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.OpenAIModel == "" {
		return fmt.Errorf("OPENAI_MODEL is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList splits a comma-separated value, dropping empty entries.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
