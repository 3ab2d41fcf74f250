package config

import (
	"github.com/spf13/pflag"
)

const (
	flagConfig        = "config"
	flagStorage       = "storage"
	flagDSN           = "dsn"
	flagCatalog       = "catalog"
	flagLogLevel      = "log-level"
	flagLogFile       = "log-file"
	flagBcryptCost    = "bcrypt-cost"
	flagSpeechModel   = "speech-model"
	flagListenTimeout = "listen-timeout"
	flagPhraseLimit   = "phrase-limit"
	flagRecordCommand = "record-command"
)

// Loader binds a Config to a flag set and resolves the final values once
// the flags are parsed.
type Loader struct {
	cfg        *Config
	fs         *pflag.FlagSet
	configFile string
}

// NewLoader applies defaults to a new Config and registers its flags on fs.
//
// Supported flags:
//
//	-c, --config string          JSON config file
//	    --storage string         storage driver: sqlite or postgres
//	    --dsn string             database path (sqlite) or connection string (postgres)
//	    --catalog string         TOML catalog file (default: built-in)
//	    --log-level string       debug, info, warn or error
//	    --log-file string        log file (default: stderr)
//	    --bcrypt-cost int        bcrypt work factor
//	    --speech-model string    Gemini model used for transcription
//	    --listen-timeout dur     time to wait for speech to start
//	    --phrase-limit dur       maximum length of a spoken answer
//	    --record-command string  audio capture command
func NewLoader(fs *pflag.FlagSet) *Loader {
	cfg := &Config{}
	cfg.LoadDefaults()

	l := &Loader{cfg: cfg, fs: fs}
	fs.StringVarP(&l.configFile, flagConfig, "c", "", "JSON config file")
	fs.StringVar(&cfg.StorageDriver, flagStorage, cfg.StorageDriver, "storage driver: sqlite or postgres")
	fs.StringVar(&cfg.DatabaseDSN, flagDSN, cfg.DatabaseDSN, "database path (sqlite) or connection string (postgres)")
	fs.StringVar(&cfg.CatalogPath, flagCatalog, cfg.CatalogPath, "TOML catalog file (default: built-in)")
	fs.StringVar(&cfg.LogLevel, flagLogLevel, cfg.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.LogFile, flagLogFile, cfg.LogFile, "log file (default: stderr)")
	fs.IntVar(&cfg.BcryptCost, flagBcryptCost, cfg.BcryptCost, "bcrypt work factor")
	fs.StringVar(&cfg.SpeechModel, flagSpeechModel, cfg.SpeechModel, "Gemini model used for transcription")
	fs.DurationVar(&cfg.ListenTimeout, flagListenTimeout, cfg.ListenTimeout, "time to wait for speech to start")
	fs.DurationVar(&cfg.PhraseTimeLimit, flagPhraseLimit, cfg.PhraseTimeLimit, "maximum length of a spoken answer")
	fs.StringVar(&cfg.RecordCommand, flagRecordCommand, cfg.RecordCommand, "audio capture command ({seconds} is the phrase limit)")
	return l
}

// Load overlays the JSON file, if one was given, beneath the flags that
// were set explicitly, and validates the result. Call it after the flag set
// has been parsed.
func (l *Loader) Load() (*Config, error) {
	if l.configFile != "" {
		jc, err := readJson(l.configFile)
		if err != nil {
			return nil, err
		}
		applyJson(l.cfg, jc, l.changed)
	}
	if err := l.cfg.Validate(); err != nil {
		return nil, err
	}
	return l.cfg, nil
}

func (l *Loader) changed(name string) bool {
	f := l.fs.Lookup(name)
	return f != nil && f.Changed
}
