// Package config defines the application configuration structures.
//
// All settings come from environment variables (cmd loads a .env file
// before config is read). Separated from cmd to allow other packages
// (ai, warehouse, store, tui) to depend on config without importing Cobra.
//
// Design decisions:
//   - Load takes a lookup function instead of reading os.Getenv directly,
//     so tests can feed it a plain map.
//   - Missing AI or store settings do not fail Load. The affected
//     capability is reported as unavailable and the app degrades: chat
//     still runs and answers every message with a fixed notice.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// LookupFunc resolves an environment variable, reporting whether it was set.
type LookupFunc func(string) (string, bool)

// DefaultTable is the one analytical table the assistant may query.
const DefaultTable = "logistics_maintenance_predictions"

// DefaultRowLimit caps how many result rows are rendered into text.
// The warehouse may return more; only the first N become prompt input.
const DefaultRowLimit = 50

// Config holds all application settings.
type Config struct {
	AI        AIConfig
	Warehouse WarehouseConfig
	Store     StoreConfig
	Chat      ChatConfig
}

// AIConfig holds the completion provider selection and credentials.
type AIConfig struct {
	Provider  string // "azure", "openai", "anthropic", "ollama", "placeholder"
	Azure     AzureConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Ollama    OllamaConfig
}

// AzureConfig holds Azure OpenAI settings (the primary backend).
type AzureConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
}

// OpenAIConfig holds OpenAI-specific settings.
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// AnthropicConfig holds Anthropic-specific settings.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OllamaConfig holds Ollama-specific settings.
type OllamaConfig struct {
	Host  string
	Model string
}

// WarehouseConfig holds the analytical warehouse connection settings.
// When the SSH tunnel is active, the caller overrides Host/Port with the
// local tunnel endpoint before building the DSN.
type WarehouseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	SSLMode      string
	Table        string
	QueryTimeout time.Duration
	SSH          SSHConfig
}

// DSN builds a pgx-compatible connection string.
func (w WarehouseConfig) DSN() string {
	return "host=" + w.Host +
		" port=" + strconv.Itoa(w.Port) +
		" user=" + w.User +
		" password=" + w.Password +
		" dbname=" + w.Database +
		" sslmode=" + w.SSLMode
}

// SSHConfig holds SSH tunnel settings for warehouses behind a bastion.
type SSHConfig struct {
	Enabled       bool
	Host          string
	Port          int
	User          string
	KeyPath       string
	KeyPassphrase string
}

// StoreConfig holds the session store settings.
type StoreConfig struct {
	Path string
}

// ChatConfig holds orchestrator tuning knobs.
type ChatConfig struct {
	RowLimit int  // max rows rendered into result text
	Progress bool // emit advisory progress events before the final response
}

// LoadFromEnv reads configuration from the process environment.
func LoadFromEnv() (*Config, error) {
	return Load(os.LookupEnv)
}

// Load reads configuration through the given lookup function.
func Load(lookup LookupFunc) (*Config, error) {
	if lookup == nil {
		return nil, fmt.Errorf("lookup function is required")
	}

	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := &Config{
		AI: AIConfig{
			Provider: strings.ToLower(get("FLEETCHAT_AI_PROVIDER", "azure")),
			Azure: AzureConfig{
				Endpoint:   get("AZURE_LLM_ENDPOINT", ""),
				APIKey:     get("AZURE_LLM_KEY", ""),
				Deployment: get("AZURE_LLM_DEPLOYMENT_NAME", ""),
				APIVersion: get("AZURE_LLM_API_VERSION", "2024-02-01"),
			},
			OpenAI: OpenAIConfig{
				APIKey: get("OPENAI_API_KEY", ""),
				Model:  get("OPENAI_MODEL", "gpt-4o"),
			},
			Anthropic: AnthropicConfig{
				APIKey: get("ANTHROPIC_API_KEY", ""),
				Model:  get("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
			},
			Ollama: OllamaConfig{
				Host:  get("OLLAMA_HOST", "http://localhost:11434"),
				Model: get("OLLAMA_MODEL", "llama3.2"),
			},
		},
		Warehouse: WarehouseConfig{
			Host:     get("WAREHOUSE_HOST", ""),
			Port:     5432,
			User:     get("WAREHOUSE_USER", ""),
			Password: get("WAREHOUSE_PASSWORD", ""),
			Database: get("WAREHOUSE_DATABASE", ""),
			SSLMode:  get("WAREHOUSE_SSLMODE", "prefer"),
			Table:    get("WAREHOUSE_TABLE", DefaultTable),
		},
		Store: StoreConfig{
			Path: get("FLEETCHAT_DB_PATH", defaultStorePath()),
		},
		Chat: ChatConfig{
			RowLimit: DefaultRowLimit,
			Progress: true,
		},
	}

	if raw := get("WAREHOUSE_PORT", ""); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p <= 0 {
			return nil, fmt.Errorf("WAREHOUSE_PORT: expected a positive integer, got %q", raw)
		}
		cfg.Warehouse.Port = p
	}

	if raw := get("WAREHOUSE_QUERY_TIMEOUT", "30s"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("WAREHOUSE_QUERY_TIMEOUT: invalid duration %q", raw)
		}
		cfg.Warehouse.QueryTimeout = d
	}

	if raw := get("FLEETCHAT_ROW_LIMIT", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("FLEETCHAT_ROW_LIMIT: expected a positive integer, got %q", raw)
		}
		cfg.Chat.RowLimit = n
	}

	if raw := get("FLEETCHAT_PROGRESS", ""); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("FLEETCHAT_PROGRESS: expected a boolean, got %q", raw)
		}
		cfg.Chat.Progress = b
	}

	cfg.Warehouse.SSH = loadSSH(get)

	return cfg, nil
}

func loadSSH(get func(key, fallback string) string) SSHConfig {
	ssh := SSHConfig{
		Host:          get("WAREHOUSE_SSH_HOST", ""),
		User:          get("WAREHOUSE_SSH_USER", ""),
		KeyPath:       get("WAREHOUSE_SSH_KEY", ""),
		KeyPassphrase: get("WAREHOUSE_SSH_KEY_PASSPHRASE", ""),
		Port:          22,
	}
	if raw := get("WAREHOUSE_SSH_PORT", ""); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p > 0 {
			ssh.Port = p
		}
	}
	if b, err := strconv.ParseBool(get("WAREHOUSE_SSH_ENABLED", "false")); err == nil {
		ssh.Enabled = b
	}
	return ssh
}

// AIAvailable reports whether the selected provider has the settings it
// needs. An unavailable provider degrades chat to a fixed notice instead
// of aborting startup.
func (c *Config) AIAvailable() bool {
	switch c.AI.Provider {
	case "azure":
		return c.AI.Azure.Endpoint != "" && c.AI.Azure.APIKey != "" && c.AI.Azure.Deployment != ""
	case "openai":
		return c.AI.OpenAI.APIKey != ""
	case "anthropic":
		return c.AI.Anthropic.APIKey != ""
	case "ollama", "placeholder":
		return true
	default:
		return false
	}
}

// WarehouseAvailable reports whether Fleet Manager mode can reach a warehouse.
func (c *Config) WarehouseAvailable() bool {
	return c.Warehouse.Host != "" && c.Warehouse.Database != ""
}

func defaultStorePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "fleetchat.db"
	}
	return filepath.Join(homeDir, ".fleetchat", "fleetchat.db")
}
