package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the codelovable configuration
type Config struct {
	Model            string `json:"model"`             // Generation backend as "provider:model"
	APIKey           string `json:"api_key"`           // API key for the generation backend
	BaseURL          string `json:"base_url"`          // Base URL override (optional)
	DefaultFramework string `json:"default_framework"` // Framework for new projects
	MaxTokens        int    `json:"max_tokens"`        // Response token cap
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Model:            "anthropic:claude-3-5-sonnet-20241022",
		DefaultFramework: "nextjs",
		MaxTokens:        4000,
	}
}

// LoadConfig loads configuration from global and local sources
func LoadConfig(workspacePath string) (*Config, error) {
	cfg := DefaultConfig()

	globalCfg, err := loadGlobalConfig()
	if err == nil {
		mergeCfg(cfg, globalCfg)
	}

	// Local config takes precedence
	localCfg, err := loadLocalConfig(workspacePath)
	if err == nil {
		mergeCfg(cfg, localCfg)
	}

	return cfg, nil
}

// Get retrieves a configuration value by key
func (c *Config) Get(key string) (interface{}, error) {
	switch key {
	case "model":
		return c.Model, nil
	case "api_key":
		return c.APIKey, nil
	case "base_url":
		return c.BaseURL, nil
	case "default_framework":
		return c.DefaultFramework, nil
	case "max_tokens":
		return c.MaxTokens, nil
	default:
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
}

// Set updates a configuration value by key
func (c *Config) Set(key string, value interface{}) error {
	// CLI input is always string
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string value for %s", key)
	}

	switch key {
	case "model":
		c.Model = str
		return nil
	case "api_key":
		c.APIKey = str
		return nil
	case "base_url":
		c.BaseURL = str
		return nil
	case "default_framework":
		c.DefaultFramework = str
		return nil
	case "max_tokens":
		val, err := strconv.Atoi(str)
		if err != nil || val <= 0 {
			return fmt.Errorf("expected positive numeric value for max_tokens, got: %s", str)
		}
		c.MaxTokens = val
		return nil
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

// loadGlobalConfig loads configuration from ~/.codelovable/config.json
func loadGlobalConfig() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(homeDir, ".codelovable", "config.json")
	return loadConfigFromFile(configPath)
}

// loadLocalConfig loads configuration from <workspace>/.codelovable/config.json
func loadLocalConfig(workspacePath string) (*Config, error) {
	configPath := filepath.Join(workspacePath, ".codelovable", "config.json")
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SaveLocalConfig saves configuration to <workspace>/.codelovable/config.json
func SaveLocalConfig(workspacePath string, cfg *Config) error {
	dir := filepath.Join(workspacePath, ".codelovable")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0o644)
}

// mergeCfg merges source config into destination config
func mergeCfg(dst, src *Config) {
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.APIKey != "" {
		dst.APIKey = src.APIKey
	}
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.DefaultFramework != "" {
		dst.DefaultFramework = src.DefaultFramework
	}
	if src.MaxTokens > 0 {
		dst.MaxTokens = src.MaxTokens
	}
}
