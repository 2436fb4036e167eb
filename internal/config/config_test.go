package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL", "LLM_TIMEOUT",
		"LLM_MAX_RETRIES", "LLM_MAX_INPUT_TOKENS", "API_KEY", "CORS_ORIGINS",
		"MAX_UPLOAD_BYTES", "PREVIEW_CHARS", "SECTION_DUPLICATE_POLICY",
		"PDF_FALLBACK_PDFTOTEXT", "PDF_VALIDATE", "ACCEPT_EXTRA_FORMATS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8000" {
		t.Errorf("expected port 8000, got %q", cfg.Port)
	}
	if cfg.OpenAIBaseURL != "https://api.groq.com/openai/v1" || cfg.OpenAIModel != "openai/gpt-oss-120b" {
		t.Errorf("unexpected model defaults: %q %q", cfg.OpenAIBaseURL, cfg.OpenAIModel)
	}
	if cfg.LLMTimeout != 120*time.Second || cfg.LLMMaxRetries != 3 || cfg.LLMMaxInputTokens != 12000 {
		t.Errorf("unexpected llm defaults: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://localhost:5173"}) {
		t.Errorf("unexpected cors origins %v", cfg.CORSOrigins)
	}
	if cfg.MaxUploadBytes != 52428800 || cfg.PreviewChars != 2000 {
		t.Errorf("unexpected upload defaults: %d %d", cfg.MaxUploadBytes, cfg.PreviewChars)
	}
	if cfg.SectionDuplicatePolicy != "overwrite" {
		t.Errorf("unexpected policy %q", cfg.SectionDuplicatePolicy)
	}
	if cfg.PDFFallbackPdftotext || !cfg.PDFValidate || cfg.AcceptExtraFormats {
		t.Errorf("unexpected pdf flags: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LLM_TIMEOUT", "30s")
	t.Setenv("LLM_MAX_RETRIES", "not-a-number")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("PREVIEW_CHARS", "-5")
	t.Setenv("ACCEPT_EXTRA_FORMATS", "true")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.LLMTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.LLMTimeout)
	}
	if cfg.LLMMaxRetries != 3 {
		t.Errorf("expected fallback retries, got %d", cfg.LLMMaxRetries)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Errorf("unexpected cors origins %v", cfg.CORSOrigins)
	}
	if cfg.PreviewChars != 2000 {
		t.Errorf("expected non-positive preview to fall back, got %d", cfg.PreviewChars)
	}
	if !cfg.AcceptExtraFormats {
		t.Error("expected extra formats enabled")
	}
}

func TestLoadFileOverridesEnv(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "env-model")
	t.Setenv("PORT", "8123")

	path := filepath.Join(t.TempDir(), "papersum.yaml")
	data := "openai_model: file-model\nllm_timeout: 45s\nsection_duplicate_policy: append\ncors_origins:\n  - http://c.test\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OpenAIModel != "file-model" {
		t.Errorf("expected file to override env, got %q", cfg.OpenAIModel)
	}
	if cfg.Port != "8123" {
		t.Errorf("expected env value for missing key, got %q", cfg.Port)
	}
	if cfg.LLMTimeout != 45*time.Second {
		t.Errorf("expected 45s, got %v", cfg.LLMTimeout)
	}
	if cfg.SectionDuplicatePolicy != "append" {
		t.Errorf("expected append, got %q", cfg.SectionDuplicatePolicy)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://c.test"}) {
		t.Errorf("unexpected cors origins %v", cfg.CORSOrigins)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("port: [unclosed"), 0o644)
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
	if _, err := LoadFile(""); err != nil {
		t.Errorf("empty path should load env only, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{Port: "8000", SectionDuplicatePolicy: "overwrite"}, false},
		{"first wins", Config{Port: "8000", SectionDuplicatePolicy: "first_wins"}, false},
		{"bad policy", Config{Port: "8000", SectionDuplicatePolicy: "merge"}, true},
		{"bad port", Config{Port: "http", SectionDuplicatePolicy: "append"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateLLM(t *testing.T) {
	if err := (Config{OpenAIModel: "m"}).ValidateLLM(); err == nil {
		t.Error("expected missing key error")
	}
	if err := (Config{OpenAIAPIKey: "k", OpenAIModel: "m"}).ValidateLLM(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
