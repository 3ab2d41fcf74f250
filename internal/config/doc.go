// Package config loads runtime configuration for polyglot.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults). The Gemini API key
//     default comes from the GEMINI_API_KEY environment variable.
//  2. Optional JSON file selected with -c/--config.
//  3. Command-line flags, which override earlier values when given.
//
// # JSON schema
//
// Durations accept strings like "8s" or integer nanoseconds:
//
//	{
//	  "storage_driver": "sqlite",
//	  "database_dsn": "/home/ana/.local/share/polyglot/polyglot.db",
//	  "catalog_path": "",
//	  "log_level": "info",
//	  "log_file": "",
//	  "bcrypt_cost": 10,
//	  "gemini_api_key": "",
//	  "speech_model": "gemini-2.0-flash",
//	  "listen_timeout": "8s",
//	  "phrase_time_limit": "10s",
//	  "record_command": "rec -q -c 1 -r 16000 -b 16 -t wav - trim 0 {seconds}"
//	}
//
// Absent or empty JSON fields keep the earlier value.
package config
