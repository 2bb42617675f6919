package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultServerURL is the analysis service base URL used when nothing overrides it.
const DefaultServerURL = "http://localhost:5000"

// Supported editor languages, in cycle order.
const (
	LanguagePython = "python"
	LanguageC      = "c"
	LanguageCPP    = "cpp"
)

// Languages lists the languages the analysis service accepts.
var Languages = []string{LanguagePython, LanguageC, LanguageCPP}

// Config holds client configuration.
type Config struct {
	// ServerURL is the base URL of the analysis service.
	ServerURL string

	// Timeout bounds a single HTTP request to the service. Default: 30s.
	Timeout time.Duration

	// Language is the editor language selected at startup.
	Language string

	// DBPath overrides the local SQLite database location when non-empty.
	DBPath string

	// LogPath overrides the TUI log file location when non-empty.
	LogPath string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ServerURL: DefaultServerURL,
		Timeout:   30 * time.Second,
		Language:  LanguagePython,
	}
}

// FromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func FromEnv() Config {
	cfg := DefaultConfig()

	if u := os.Getenv("CODEVAL_SERVER"); u != "" {
		cfg.ServerURL = u
	}
	if t := os.Getenv("CODEVAL_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}
	if l := os.Getenv("CODEVAL_LANGUAGE"); l != "" {
		cfg.Language = strings.ToLower(l)
	}
	if p := os.Getenv("CODEVAL_DB"); p != "" {
		cfg.DBPath = p
	}
	if p := os.Getenv("CODEVAL_LOG"); p != "" {
		cfg.LogPath = p
	}

	return cfg
}

// Validate checks the configuration for values the client cannot work with.
func (c Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server URL is required")
	}
	if !strings.HasPrefix(c.ServerURL, "http://") && !strings.HasPrefix(c.ServerURL, "https://") {
		return fmt.Errorf("server URL %q must start with http:// or https://", c.ServerURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if !IsLanguage(c.Language) {
		return fmt.Errorf("unknown language: %q", c.Language)
	}
	return nil
}

// IsLanguage reports whether lang is one of the supported languages.
func IsLanguage(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// NextLanguage returns the language after lang in cycle order.
func NextLanguage(lang string) string {
	for i, l := range Languages {
		if l == lang {
			return Languages[(i+1)%len(Languages)]
		}
	}
	return Languages[0]
}

// LanguageLabel returns the display name for a language key.
func LanguageLabel(lang string) string {
	switch lang {
	case LanguagePython:
		return "Python"
	case LanguageC:
		return "C"
	case LanguageCPP:
		return "C++"
	default:
		return lang
	}
}
