// Package config handles smsagent configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultSearchPaths returns the config file search order.
// An explicit path (from -config flag) is checked first.
// Then: ./smsagent.yaml, ~/.config/smsagent/smsagent.yaml,
// /etc/smsagent/smsagent.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"smsagent.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "smsagent", "smsagent.yaml"))
	}

	paths = append(paths, "/etc/smsagent/smsagent.yaml")
	return paths
}

// FindConfig locates a config file. If explicit is non-empty, it must exist.
// Otherwise, searches DefaultSearchPaths and returns the first that exists.
// Returns the path found, or an error if nothing was found.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", DefaultSearchPaths())
}

// Config holds all smsagent configuration.
type Config struct {
	Listen   ListenConfig   `yaml:"listen"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Business BusinessConfig `yaml:"business"`
	DataDir  string         `yaml:"data_dir"`
	LogLevel string         `yaml:"log_level"`
}

// ListenConfig defines the API server settings.
type ListenConfig struct {
	Address string `yaml:"address"` // Bind address (default: "" = all interfaces)
	Port    int    `yaml:"port"`
}

// OpenAIConfig defines OpenAI API settings.
type OpenAIConfig struct {
	APIKey string `yaml:"api_key"`
	// Model is used by the specialist agents.
	Model string `yaml:"model"`
	// ClassifierModel is used for intent classification. Falls back to
	// Model when empty.
	ClassifierModel string `yaml:"classifier_model"`
	// BaseURL overrides the API endpoint (for proxies and tests).
	BaseURL string `yaml:"base_url"`
}

// BusinessConfig identifies the business the assistant answers for.
// These values appear verbatim in customer-facing replies, so they are
// configuration rather than constants.
type BusinessConfig struct {
	Name  string `yaml:"name"`
	Owner string `yaml:"owner"`
	Phone string `yaml:"phone"`
	// SiteURL is the public site, used to shorten service links for SMS.
	SiteURL string `yaml:"site_url"`
	// LinkEndpoint is the external service-selection link issuer.
	LinkEndpoint string `yaml:"link_endpoint"`
	// EmailDomain synthesizes fallback addresses for SMS-only leads.
	EmailDomain string `yaml:"email_domain"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Listen: ListenConfig{Port: 8080},
		OpenAI: OpenAIConfig{
			Model:           "gpt-4o-mini",
			ClassifierModel: "gpt-4o-mini",
		},
		Business: BusinessConfig{
			Name:        "M10 DJ Company",
			Owner:       "Ben",
			Phone:       "(901) 410-2020",
			SiteURL:     "https://m10djcompany.com",
			EmailDomain: "m10djcompany.com",
		},
		DataDir: ".",
	}
}
