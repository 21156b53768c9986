package config

import (
	"strings"
	"testing"
	"time"
)

func mapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(mapLookup(nil))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AI.Provider != "azure" {
		t.Errorf("provider = %q, want azure", cfg.AI.Provider)
	}
	if cfg.AI.Azure.APIVersion != "2024-02-01" {
		t.Errorf("api version = %q", cfg.AI.Azure.APIVersion)
	}
	if cfg.Warehouse.Table != DefaultTable {
		t.Errorf("table = %q, want %q", cfg.Warehouse.Table, DefaultTable)
	}
	if cfg.Warehouse.Port != 5432 {
		t.Errorf("port = %d, want 5432", cfg.Warehouse.Port)
	}
	if cfg.Warehouse.SSLMode != "prefer" {
		t.Errorf("sslmode = %q", cfg.Warehouse.SSLMode)
	}
	if cfg.Warehouse.QueryTimeout != 30*time.Second {
		t.Errorf("query timeout = %v, want 30s", cfg.Warehouse.QueryTimeout)
	}
	if cfg.Chat.RowLimit != DefaultRowLimit {
		t.Errorf("row limit = %d, want %d", cfg.Chat.RowLimit, DefaultRowLimit)
	}
	if !cfg.Chat.Progress {
		t.Error("progress should default to on")
	}
	if cfg.Warehouse.SSH.Enabled {
		t.Error("ssh should default to off")
	}
	if cfg.Warehouse.SSH.Port != 22 {
		t.Errorf("ssh port = %d, want 22", cfg.Warehouse.SSH.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(mapLookup(map[string]string{
		"FLEETCHAT_AI_PROVIDER":   "Ollama", // case-insensitive
		"OLLAMA_HOST":             "http://gpu-box:11434",
		"WAREHOUSE_HOST":          "wh.internal",
		"WAREHOUSE_PORT":          "5439",
		"WAREHOUSE_USER":          "fleet",
		"WAREHOUSE_PASSWORD":      "secret",
		"WAREHOUSE_DATABASE":      "analytics",
		"WAREHOUSE_TABLE":         "maintenance_v2",
		"WAREHOUSE_QUERY_TIMEOUT": "90s",
		"FLEETCHAT_ROW_LIMIT":     "100",
		"FLEETCHAT_PROGRESS":      "false",
		"WAREHOUSE_SSH_ENABLED":   "true",
		"WAREHOUSE_SSH_HOST":      "bastion.internal",
		"WAREHOUSE_SSH_PORT":      "2222",
	}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AI.Provider != "ollama" {
		t.Errorf("provider = %q, want ollama", cfg.AI.Provider)
	}
	if cfg.AI.Ollama.Host != "http://gpu-box:11434" {
		t.Errorf("ollama host = %q", cfg.AI.Ollama.Host)
	}
	if cfg.Warehouse.Port != 5439 {
		t.Errorf("port = %d", cfg.Warehouse.Port)
	}
	if cfg.Warehouse.Table != "maintenance_v2" {
		t.Errorf("table = %q", cfg.Warehouse.Table)
	}
	if cfg.Warehouse.QueryTimeout != 90*time.Second {
		t.Errorf("timeout = %v", cfg.Warehouse.QueryTimeout)
	}
	if cfg.Chat.RowLimit != 100 {
		t.Errorf("row limit = %d", cfg.Chat.RowLimit)
	}
	if cfg.Chat.Progress {
		t.Error("progress should be off")
	}
	if !cfg.Warehouse.SSH.Enabled || cfg.Warehouse.SSH.Port != 2222 {
		t.Errorf("ssh = %+v", cfg.Warehouse.SSH)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"WAREHOUSE_PORT": "not-a-number"}},
		{"negative port", map[string]string{"WAREHOUSE_PORT": "-1"}},
		{"bad timeout", map[string]string{"WAREHOUSE_QUERY_TIMEOUT": "soon"}},
		{"zero row limit", map[string]string{"FLEETCHAT_ROW_LIMIT": "0"}},
		{"bad progress", map[string]string{"FLEETCHAT_PROGRESS": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(mapLookup(tt.env)); err == nil {
				t.Errorf("Load(%v) should fail", tt.env)
			}
		})
	}
}

func TestLoadBlankFallsBack(t *testing.T) {
	// Set-but-empty variables fall back to the default instead of
	// producing empty settings.
	cfg, err := Load(mapLookup(map[string]string{
		"FLEETCHAT_AI_PROVIDER": "",
		"WAREHOUSE_SSLMODE":     "   ",
	}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.Provider != "azure" {
		t.Errorf("provider = %q, want azure", cfg.AI.Provider)
	}
	if cfg.Warehouse.SSLMode != "prefer" {
		t.Errorf("sslmode = %q, want prefer", cfg.Warehouse.SSLMode)
	}
}

func TestAIAvailable(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{
			name: "azure complete",
			env: map[string]string{
				"AZURE_LLM_ENDPOINT":        "https://x.openai.azure.com",
				"AZURE_LLM_KEY":             "k",
				"AZURE_LLM_DEPLOYMENT_NAME": "gpt-4o",
			},
			want: true,
		},
		{
			name: "azure missing key",
			env: map[string]string{
				"AZURE_LLM_ENDPOINT":        "https://x.openai.azure.com",
				"AZURE_LLM_DEPLOYMENT_NAME": "gpt-4o",
			},
			want: false,
		},
		{
			name: "openai with key",
			env: map[string]string{
				"FLEETCHAT_AI_PROVIDER": "openai",
				"OPENAI_API_KEY":        "sk-test",
			},
			want: true,
		},
		{
			name: "anthropic without key",
			env:  map[string]string{"FLEETCHAT_AI_PROVIDER": "anthropic"},
			want: false,
		},
		{
			name: "ollama needs nothing",
			env:  map[string]string{"FLEETCHAT_AI_PROVIDER": "ollama"},
			want: true,
		},
		{
			name: "unknown provider",
			env:  map[string]string{"FLEETCHAT_AI_PROVIDER": "skynet"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(mapLookup(tt.env))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got := cfg.AIAvailable(); got != tt.want {
				t.Errorf("AIAvailable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWarehouseAvailable(t *testing.T) {
	cfg, err := Load(mapLookup(nil))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WarehouseAvailable() {
		t.Error("warehouse should be unavailable without host and database")
	}

	cfg, err = Load(mapLookup(map[string]string{
		"WAREHOUSE_HOST":     "wh.internal",
		"WAREHOUSE_DATABASE": "analytics",
	}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.WarehouseAvailable() {
		t.Error("warehouse should be available with host and database")
	}
}

func TestDSN(t *testing.T) {
	w := WarehouseConfig{
		Host:     "localhost",
		Port:     5439,
		User:     "fleet",
		Password: "secret",
		Database: "analytics",
		SSLMode:  "require",
	}
	dsn := w.DSN()
	for _, part := range []string{
		"host=localhost", "port=5439", "user=fleet",
		"password=secret", "dbname=analytics", "sslmode=require",
	} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSN missing %q: %s", part, dsn)
		}
	}
}
