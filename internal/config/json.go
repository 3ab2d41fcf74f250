package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Duration is a time.Duration that unmarshals from either a string such as
// "8s" or an integer number of nanoseconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		return err
	case nil:
		return nil
	}
	return errors.New("invalid duration")
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After
// parsing, set values are copied into the runtime Config.
type JsonConfig struct {
	StorageDriver   string   `json:"storage_driver"`
	DatabaseDSN     string   `json:"database_dsn"`
	CatalogPath     string   `json:"catalog_path"`
	LogLevel        string   `json:"log_level"`
	LogFile         string   `json:"log_file"`
	BcryptCost      int      `json:"bcrypt_cost"`
	GeminiAPIKey    string   `json:"gemini_api_key"`
	SpeechModel     string   `json:"speech_model"`
	ListenTimeout   Duration `json:"listen_timeout"`
	PhraseTimeLimit Duration `json:"phrase_time_limit"`
	RecordCommand   string   `json:"record_command"`
}

func readJson(path string) (*JsonConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &jc, nil
}

// applyJson copies the set fields of jc into cfg unless keep reports that
// the field was given on the command line.
func applyJson(cfg *Config, jc *JsonConfig, keep func(flag string) bool) {
	setString := func(flag string, dst *string, v string) {
		if v != "" && !keep(flag) {
			*dst = v
		}
	}
	setString(flagStorage, &cfg.StorageDriver, jc.StorageDriver)
	setString(flagDSN, &cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(flagCatalog, &cfg.CatalogPath, jc.CatalogPath)
	setString(flagLogLevel, &cfg.LogLevel, jc.LogLevel)
	setString(flagLogFile, &cfg.LogFile, jc.LogFile)
	setString(flagSpeechModel, &cfg.SpeechModel, jc.SpeechModel)
	setString(flagRecordCommand, &cfg.RecordCommand, jc.RecordCommand)

	if jc.GeminiAPIKey != "" {
		cfg.GeminiAPIKey = jc.GeminiAPIKey
	}
	if jc.BcryptCost != 0 && !keep(flagBcryptCost) {
		cfg.BcryptCost = jc.BcryptCost
	}
	if jc.ListenTimeout.Duration != 0 && !keep(flagListenTimeout) {
		cfg.ListenTimeout = jc.ListenTimeout.Duration
	}
	if jc.PhraseTimeLimit.Duration != 0 && !keep(flagPhraseLimit) {
		cfg.PhraseTimeLimit = jc.PhraseTimeLimit.Duration
	}
}
