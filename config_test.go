package reasonmap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Chat.Provider != "gemini" {
		t.Errorf("Provider = %q", cfg.Chat.Provider)
	}
	if cfg.Concurrency <= 0 {
		t.Errorf("Concurrency = %d", cfg.Concurrency)
	}
	if cfg.OutputDir == "" {
		t.Error("OutputDir empty")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
db_name: lsat
storage_dir: local
concurrency: 8
chat:
  provider: openai
  model: gpt-4o-mini
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DBName != "lsat" || cfg.Concurrency != 8 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Chat.Provider != "openai" || cfg.Chat.Model != "gpt-4o-mini" {
		t.Errorf("chat = %+v", cfg.Chat)
	}
	// Unset fields keep defaults.
	if cfg.Temperature != DefaultConfig().Temperature {
		t.Errorf("Temperature = %v", cfg.Temperature)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestResolveDBPath(t *testing.T) {
	explicit := Config{DBPath: "/tmp/x.db"}
	if got := explicit.ResolveDBPath(); got != "/tmp/x.db" {
		t.Errorf("explicit path = %q", got)
	}

	local := Config{DBName: "lsat", StorageDir: "local"}
	if got := local.ResolveDBPath(); got != "lsat.db" {
		t.Errorf("local path = %q", got)
	}

	home := Config{DBName: "lsat", StorageDir: "home"}
	got := home.ResolveDBPath()
	if !strings.HasSuffix(got, filepath.Join(".reasonmap", "lsat.db")) {
		t.Errorf("home path = %q", got)
	}
}
