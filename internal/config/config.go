package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LLMProvider     string `yaml:"llm_provider"` // "openai" (default) or "anthropic"
	LLMModel        string `yaml:"llm_model"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	LLMTimeoutSec   int    `yaml:"llm_timeout_sec"`
	LLMMaxRetries   int    `yaml:"llm_max_retries"` // 0 = surface the first failure to the caller

	MappingPath  string `yaml:"mapping_path"`
	AuditLogPath string `yaml:"audit_log_path"`

	BatchWorkers  int     `yaml:"batch_workers"`
	LLMRatePerSec float64 `yaml:"llm_rate_per_sec"`

	Port string `yaml:"port"`
}

// Load reads config.yaml (or CONFIG_PATH) if present, then applies env-var
// overrides on top. Missing file is fine; env alone can configure everything.
func Load() (Config, error) {
	cfg := Config{
		LLMProvider:   "openai",
		LLMTimeoutSec: 30,
		MappingPath:   "rep_dealer_mapping.csv",
		AuditLogPath:  "ticket_classifier_log.jsonl",
		BatchWorkers:  4,
		LLMRatePerSec: 3,
		Port:          "8080",
	}

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", configPath, err)
		}
	}

	envOverride(&cfg.LLMProvider, "LLM_PROVIDER")
	envOverride(&cfg.LLMModel, "LLM_MODEL")
	envOverride(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverrideInt(&cfg.LLMTimeoutSec, "LLM_TIMEOUT_SEC")
	envOverrideInt(&cfg.LLMMaxRetries, "LLM_MAX_RETRIES")
	envOverride(&cfg.MappingPath, "MAPPING_PATH")
	envOverride(&cfg.AuditLogPath, "AUDIT_LOG_PATH")
	envOverrideInt(&cfg.BatchWorkers, "BATCH_WORKERS")
	envOverrideFloat(&cfg.LLMRatePerSec, "LLM_RATE_PER_SEC")
	envOverride(&cfg.Port, "PORT")

	return cfg, nil
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envOverrideFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
