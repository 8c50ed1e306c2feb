package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cvescope/backend/internal/prompt"
)

// Supported inference providers.
const (
	ProviderOpenAI = "openai"
	ProviderArk    = "ark"
)

// Config aggregates every configurable concern of the gateway.
type Config struct {
	Server    ServerConfig
	Inference InferenceConfig
	Prompt    PromptConfig
	Assets    AssetsConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	inference, err := loadInferenceConfig()
	if err != nil {
		return nil, err
	}

	promptCfg, err := loadPromptConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		Inference: inference,
		Prompt:    promptCfg,
		Assets:    loadAssetsConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// InferenceConfig describes the hosted model endpoint the gateway proxies to.
type InferenceConfig struct {
	Provider    string
	Model       string
	APIKey      string
	AccessKey   string
	SecretKey   string
	BaseURL     string
	Region      string
	MaxTokens   int
	Temperature *float64
	TopP        *float64
	Stream      bool
}

// Enabled reports whether the required credentials are present.
func (c InferenceConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// defaultMaxTokens is the generation cap forwarded with every request.
const defaultMaxTokens = 1024

func loadInferenceConfig() (InferenceConfig, error) {
	temperature, err := parseOptionalFloatEnv("INFERENCE_TEMPERATURE")
	if err != nil {
		return InferenceConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("INFERENCE_TOP_P")
	if err != nil {
		return InferenceConfig{}, err
	}

	stream, err := parseBoolEnv("INFERENCE_STREAM", true)
	if err != nil {
		return InferenceConfig{}, err
	}

	maxTokens := defaultMaxTokens
	if override, err := parseOptionalIntEnv("INFERENCE_MAX_TOKENS"); err != nil {
		return InferenceConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return InferenceConfig{}, fmt.Errorf("INFERENCE_MAX_TOKENS must be positive, got %d", *override)
		}
		maxTokens = *override
	}

	return InferenceConfig{
		Provider:    getEnvOrDefault("INFERENCE_PROVIDER", ProviderOpenAI),
		Model:       strings.TrimSpace(os.Getenv("INFERENCE_MODEL")),
		APIKey:      strings.TrimSpace(os.Getenv("INFERENCE_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		BaseURL:     strings.TrimSpace(os.Getenv("INFERENCE_BASE_URL")),
		Region:      getEnvOrDefault("INFERENCE_REGION", "cn-beijing"),
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
		Stream:      stream,
	}, nil
}

// PromptConfig carries the classifier system prompt injected into chat
// requests. The text is opaque configuration, resolved once at startup.
type PromptConfig struct {
	System string
}

func loadPromptConfig() (PromptConfig, error) {
	if path := strings.TrimSpace(os.Getenv("SYSTEM_PROMPT_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return PromptConfig{}, fmt.Errorf("read SYSTEM_PROMPT_FILE: %w", err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return PromptConfig{}, fmt.Errorf("SYSTEM_PROMPT_FILE %q is empty", path)
		}
		return PromptConfig{System: text}, nil
	}

	if text := strings.TrimSpace(os.Getenv("SYSTEM_PROMPT")); text != "" {
		return PromptConfig{System: text}, nil
	}

	return PromptConfig{System: prompt.Default()}, nil
}

// AssetsConfig locates the static UI bundle. An empty dir disables asset
// serving entirely.
type AssetsConfig struct {
	Dir string
}

func loadAssetsConfig() AssetsConfig {
	return AssetsConfig{Dir: getEnvOrDefault("STATIC_DIR", "./static")}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
