package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/speech"
	"github.com/go-playground/validator/v10"
)

const EnvGeminiAPIKey = "GEMINI_API_KEY"

// Config holds runtime settings for polyglot.
//
// Units: ListenTimeout and PhraseTimeLimit are time.Duration values.
// An empty CatalogPath selects the built-in catalog; an empty LogFile
// logs to stderr; an empty GeminiAPIKey disables voice recognition.
type Config struct {
	StorageDriver   string `validate:"oneof=sqlite postgres"`
	DatabaseDSN     string `validate:"required"`
	CatalogPath     string
	LogLevel        string `validate:"oneof=debug info warn warning error"`
	LogFile         string
	BcryptCost      int `validate:"min=4,max=31"`
	GeminiAPIKey    string
	SpeechModel     string        `validate:"required"`
	ListenTimeout   time.Duration `validate:"gt=0"`
	PhraseTimeLimit time.Duration `validate:"gt=0"`
	RecordCommand   string        `validate:"required"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageDriver = "sqlite"
	c.DatabaseDSN = DefaultDBPath()
	c.CatalogPath = ""
	c.LogLevel = "warn"
	c.LogFile = ""
	c.BcryptCost = 10
	c.GeminiAPIKey = os.Getenv(EnvGeminiAPIKey)
	c.SpeechModel = "gemini-2.0-flash"
	c.ListenTimeout = 8 * time.Second
	c.PhraseTimeLimit = 10 * time.Second
	c.RecordCommand = speech.DefaultRecordCommand
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: invalid value %v", fe.Field(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), "polyglot", "polyglot.db")
}
