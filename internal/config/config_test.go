package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLMProvider != "openai" {
		t.Fatalf("default provider should be openai, got %q", cfg.LLMProvider)
	}
	if cfg.LLMTimeoutSec != 30 || cfg.BatchWorkers != 4 || cfg.Port != "8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MappingPath != "rep_dealer_mapping.csv" {
		t.Fatalf("unexpected mapping default: %q", cfg.MappingPath)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "llm_provider: anthropic\nllm_model: claude-sonnet-4-5-20250929\nbatch_workers: 8\nllm_rate_per_sec: 1.5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLMProvider != "anthropic" || cfg.BatchWorkers != 8 || cfg.LLMRatePerSec != 1.5 {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	if cfg.LLMTimeoutSec != 30 {
		t.Fatalf("unset yaml keys should keep defaults, got %d", cfg.LLMTimeoutSec)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("llm_provider: anthropic\nport: \"9000\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_MAX_RETRIES", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLMProvider != "openai" {
		t.Fatalf("env must win over yaml, got %q", cfg.LLMProvider)
	}
	if cfg.LLMMaxRetries != 2 {
		t.Fatalf("int env override not applied: %d", cfg.LLMMaxRetries)
	}
	if cfg.Port != "9000" {
		t.Fatalf("yaml value without env override should stand, got %q", cfg.Port)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("llm_provider: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	if _, err := Load(); err == nil {
		t.Fatal("malformed config file should fail loudly")
	}
}
