package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. BOOKSHELF_STORAGE_PATH.
const EnvPrefix = "BOOKSHELF"

// Config holds all application configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StorageConfig selects where the library lives
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // "text" or "bolt"
	Path    string `mapstructure:"path"`    // Relative to the working directory unless absolute
}

// UIConfig holds interactive session settings
type UIConfig struct {
	Suggestions int `mapstructure:"suggestions"` // Max "did you mean" titles, 0 disables
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "text",
			Path:    DefaultStoragePath("text"),
		},
		UI: UIConfig{
			Suggestions: 3,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// DefaultStoragePath returns the library file used when storage.path is unset.
func DefaultStoragePath(backend string) string {
	if backend == "bolt" {
		return "library.db"
	}
	return "library.txt"
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "bookshelf", "bookshelf.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "bookshelf", "bookshelf.log")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "bookshelf")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "bookshelf")
	}
}

// LoadConfig loads config.yaml from the given directories (first found wins)
// and applies environment overrides on top of the defaults. With no
// directories it searches DefaultConfigDir and the working directory.
func LoadConfig(dirs ...string) (*Config, error) {
	if len(dirs) == 0 {
		dirs = []string{DefaultConfigDir(), "."}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Defaults double as the key list AutomaticEnv needs for Unmarshal
	def := DefaultConfig()
	v.SetDefault("storage.backend", def.Storage.Backend)
	// The path default depends on the backend, so it is filled in after Unmarshal
	_ = v.BindEnv("storage.path", EnvPrefix+"_STORAGE_PATH")
	v.SetDefault("ui.suggestions", def.UI.Suggestions)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath(cfg.Storage.Backend)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "text", "bolt":
	default:
		return fmt.Errorf("storage.backend must be \"text\" or \"bolt\", got %q", c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		return errors.New("storage.path must not be empty")
	}
	if c.UI.Suggestions < 0 {
		return fmt.Errorf("ui.suggestions must not be negative, got %d", c.UI.Suggestions)
	}
	return nil
}
