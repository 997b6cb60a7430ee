package reasonmap

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bbiangul/reasonmap/llm"
)

// Config holds all configuration for the reasoning-map engine.
type Config struct {
	// DBPath is the full path to the SQLite database file.
	// If empty, defaults to ~/.reasonmap/<DBName>.db
	DBPath string `json:"db_path" yaml:"db_path"`

	// DBName is the name for the database (used when DBPath is empty).
	// Defaults to "reasonmap".
	DBName string `json:"db_name" yaml:"db_name"`

	// StorageDir controls where the database is created when DBPath
	// is not explicitly set. Options: "home" (default) uses ~/.reasonmap/,
	// "local" uses the current working directory.
	StorageDir string `json:"storage_dir" yaml:"storage_dir"`

	// OutputDir is where per-problem map files (.dot/.mmd) are written.
	// Defaults to "maps" in the working directory.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Chat configures the LLM used to produce step-by-step reasoning.
	Chat llm.Config `json:"chat" yaml:"chat"`

	// Concurrency is the maximum number of in-flight LLM requests
	// during a batch run.
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// Temperature and MaxTokens are passed through to chat requests.
	Temperature float64 `json:"temperature" yaml:"temperature"`
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens"`
}

// DefaultConfig returns a Config with sensible defaults.
// Database is stored in ~/.reasonmap/reasonmap.db by default.
func DefaultConfig() Config {
	return Config{
		DBName:     "reasonmap",
		StorageDir: "home",
		OutputDir:  "maps",
		Chat: llm.Config{
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
		},
		Concurrency: 4,
		Temperature: 0.5,
		MaxTokens:   1024,
	}
}

// LoadConfig reads a YAML config file, layered over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// ResolveDBPath computes the final database path from config fields.
func (c *Config) ResolveDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}

	name := c.DBName
	if name == "" {
		name = "reasonmap"
	}

	switch c.StorageDir {
	case "local", "cwd":
		return name + ".db"
	default: // "home" or empty
		home, err := os.UserHomeDir()
		if err != nil {
			return name + ".db" // fallback to cwd
		}
		dir := filepath.Join(home, ".reasonmap")
		return filepath.Join(dir, name+".db")
	}
}
