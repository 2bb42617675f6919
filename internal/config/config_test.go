package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("CODEVAL_SERVER", "https://eval.example.com")
	t.Setenv("CODEVAL_TIMEOUT", "5s")
	t.Setenv("CODEVAL_LANGUAGE", "CPP")
	t.Setenv("CODEVAL_DB", "/tmp/codeval.db")

	cfg := FromEnv()
	assert.Equal(t, "https://eval.example.com", cfg.ServerURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, LanguageCPP, cfg.Language)
	assert.Equal(t, "/tmp/codeval.db", cfg.DBPath)
	require.NoError(t, cfg.Validate())
}

func TestFromEnvIgnoresBadTimeout(t *testing.T) {
	t.Setenv("CODEVAL_TIMEOUT", "soon")
	cfg := FromEnv()
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty server", func(c *Config) { c.ServerURL = "" }, true},
		{"no scheme", func(c *Config) { c.ServerURL = "localhost:5000" }, true},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, true},
		{"unknown language", func(c *Config) { c.Language = "rust" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNextLanguageCycles(t *testing.T) {
	assert.Equal(t, LanguageC, NextLanguage(LanguagePython))
	assert.Equal(t, LanguageCPP, NextLanguage(LanguageC))
	assert.Equal(t, LanguagePython, NextLanguage(LanguageCPP))
	assert.Equal(t, LanguagePython, NextLanguage("cobol"))
}
