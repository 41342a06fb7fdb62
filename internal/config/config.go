package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Osascript is the bridge binary used to reach Things
	Osascript string `yaml:"osascript"`
	// ScriptTimeoutSec bounds a single bridge call; 0 disables the limit
	ScriptTimeoutSec int `yaml:"script_timeout_sec"`
	// DateLang fills the DATE_LANG column
	DateLang string `yaml:"date_lang"`
	// Timezone fills the TIMEZONE column; empty leaves it to the importer
	Timezone string `yaml:"timezone"`
	// Output is the default dry-run preview format
	Output string `yaml:"output"`
	// Quiet suppresses progress and the import instructions
	Quiet bool `yaml:"quiet"`
}

// Load loads configuration from multiple sources with precedence:
// 1. Environment variables
// 2. ./.env.local (dotenv) - walks up parent directories to find it
// 3. ~/.config/things2todoist/config.yaml (YAML)
func Load() (*Config, error) {
	cfg := &Config{
		Osascript:        "osascript",
		ScriptTimeoutSec: 120,
		DateLang:         "en",
		Output:           "table",
	}

	// Load .env.local if it exists (walking up parent directories)
	if envPath := findEnvLocal(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	// ~/.config/things2todoist/config.yaml is optional
	_ = loadYAMLConfig(cfg)

	// Override with environment variables
	if osascript := os.Getenv("THINGS2TODOIST_OSASCRIPT"); osascript != "" {
		cfg.Osascript = osascript
	}
	if timeout := os.Getenv("THINGS2TODOIST_SCRIPT_TIMEOUT"); timeout != "" {
		if sec, err := strconv.Atoi(timeout); err == nil {
			cfg.ScriptTimeoutSec = sec
		}
	}
	if dateLang := os.Getenv("THINGS2TODOIST_DATE_LANG"); dateLang != "" {
		cfg.DateLang = dateLang
	}
	if timezone := os.Getenv("THINGS2TODOIST_TIMEZONE"); timezone != "" {
		cfg.Timezone = timezone
	}
	if output := os.Getenv("THINGS2TODOIST_OUTPUT"); output != "" {
		cfg.Output = output
	}
	if quiet := os.Getenv("THINGS2TODOIST_QUIET"); quiet != "" {
		cfg.Quiet = quiet == "1" || quiet == "true"
	}

	return cfg, nil
}

// loadYAMLConfig loads configuration from ~/.config/things2todoist/config.yaml
func loadYAMLConfig(cfg *Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(homeDir, ".config", "things2todoist", "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// findEnvLocal searches for .env.local starting from cwd and walking up
// parent directories. Stops at the user's home directory.
// Returns the path to .env.local if found, empty string otherwise.
func findEnvLocal() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// If we can't get home dir, just check cwd
		if _, err := os.Stat(".env.local"); err == nil {
			return ".env.local"
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Clean paths for reliable comparison
	homeDir = filepath.Clean(homeDir)
	dir := filepath.Clean(cwd)

	for {
		envPath := filepath.Join(dir, ".env.local")
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}

		// Stop if we've reached home directory
		if dir == homeDir {
			break
		}

		// Get parent directory
		parent := filepath.Dir(dir)

		// Stop if we've reached the filesystem root
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}
