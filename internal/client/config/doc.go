// Package config loads runtime configuration for the FileDrive CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c / -config or $FILEDRIVE_CONFIG.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend API base URL
//	-r string   identity provider region
//	-i string   identity provider app client id
//	-t int      request timeout (seconds)
//	-s string   session database path
//	-d string   download directory
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations accept Go duration strings or integer nanoseconds; absent keys
// keep their current value:
//
//	{
//	  "api_base_url": "https://api.example.com/prod",
//	  "cognito_region": "eu-north-1",
//	  "cognito_client_id": "4abc...",
//	  "request_timeout": "30s",
//	  "session_db_path": "session.db",
//	  "download_dir": "download",
//	  "max_upload_size": 104857600,
//	  "log_level": "info",
//	  "log_format": "json"
//	}
package config
