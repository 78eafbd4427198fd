package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/filedrive/internal/flagx"
	"github.com/dmitrijs2005/filedrive/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero" so a partial file only overrides
// what it names.
type JsonConfig struct {
	APIBaseURL      *string         `json:"api_base_url"`
	CognitoRegion   *string         `json:"cognito_region"`
	CognitoClientID *string         `json:"cognito_client_id"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	SessionDBPath   *string         `json:"session_db_path"`
	DownloadDir     *string         `json:"download_dir"`
	MaxUploadSize   *int64          `json:"max_upload_size"`
	LogLevel        *string         `json:"log_level"`
	LogFormat       *string         `json:"log_format"`
}

// parseJson overlays cfg with values from the JSON file named by
// flagx.ConfigPath. It does nothing when no file is configured and panics on
// read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setIf(&cfg.APIBaseURL, jc.APIBaseURL)
	setIf(&cfg.CognitoRegion, jc.CognitoRegion)
	setIf(&cfg.CognitoClientID, jc.CognitoClientID)
	setIf(&cfg.SessionDBPath, jc.SessionDBPath)
	setIf(&cfg.DownloadDir, jc.DownloadDir)
	setIf(&cfg.MaxUploadSize, jc.MaxUploadSize)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
