package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/speech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv(EnvGeminiAPIKey, "k-123")

	var c Config
	c.LoadDefaults()

	assert.Equal(t, "sqlite", c.StorageDriver)
	assert.Equal(t, filepath.Join("/data", "polyglot", "polyglot.db"), c.DatabaseDSN)
	assert.Empty(t, c.CatalogPath)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Empty(t, c.LogFile)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, "k-123", c.GeminiAPIKey)
	assert.Equal(t, "gemini-2.0-flash", c.SpeechModel)
	assert.Equal(t, 8*time.Second, c.ListenTimeout)
	assert.Equal(t, 10*time.Second, c.PhraseTimeLimit)
	assert.Equal(t, speech.DefaultRecordCommand, c.RecordCommand)
	require.NoError(t, c.Validate())
}

func TestXDGDataHome_Fallback(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "/home/ana")
	assert.Equal(t, filepath.Join("/home/ana", ".local", "share"), XDGDataHome())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"driver", func(c *Config) { c.StorageDriver = "mysql" }, "StorageDriver"},
		{"dsn", func(c *Config) { c.DatabaseDSN = "" }, "DatabaseDSN"},
		{"level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel"},
		{"cost low", func(c *Config) { c.BcryptCost = 3 }, "BcryptCost"},
		{"cost high", func(c *Config) { c.BcryptCost = 32 }, "BcryptCost"},
		{"listen", func(c *Config) { c.ListenTimeout = 0 }, "ListenTimeout"},
		{"phrase", func(c *Config) { c.PhraseTimeLimit = -time.Second }, "PhraseTimeLimit"},
		{"record", func(c *Config) { c.RecordCommand = "" }, "RecordCommand"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)

			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
