package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/scewiki/internal/flagx"
	"github.com/dmitrijs2005/scewiki/internal/timex"
)

// JsonConfig is a DTO used only for unmarshalling. Absent fields keep the
// value already in Config; durations accept "3s" or integer nanoseconds.
type JsonConfig struct {
	Storage       *string         `json:"storage"`
	Driver        *string         `json:"db_driver"`
	DSN           *string         `json:"dsn"`
	KVBackend     *string         `json:"kv_backend"`
	DocumentKey   *string         `json:"document_key"`
	SessionSecret *string         `json:"session_secret"`
	SessionTTL    *timex.Duration `json:"session_ttl"`
	MailDelay     *timex.Duration `json:"mail_delay"`
	LogBackend    *string         `json:"log_backend"`
	LogLevel      *string         `json:"log_level"`
	LogJSON       *bool           `json:"log_json"`
	S3User        *string         `json:"s3_user"`
	S3Password    *string         `json:"s3_password"`
	S3Bucket      *string         `json:"s3_bucket"`
	S3Region      *string         `json:"s3_region"`
	S3Endpoint    *string         `json:"s3_endpoint"`
	S3Prefix      *string         `json:"s3_prefix"`
}

// parseJSON overlays cfg with the JSON file named by -c/-config in args.
// No flag means no file.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.Storage, jc.Storage)
	setString(&cfg.Driver, jc.Driver)
	setString(&cfg.DSN, jc.DSN)
	setString(&cfg.KVBackend, jc.KVBackend)
	setString(&cfg.DocumentKey, jc.DocumentKey)
	setString(&cfg.SessionSecret, jc.SessionSecret)
	setString(&cfg.LogBackend, jc.LogBackend)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.S3User, jc.S3User)
	setString(&cfg.S3Password, jc.S3Password)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3Prefix, jc.S3Prefix)

	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.MailDelay != nil {
		cfg.MailDelay = jc.MailDelay.Duration
	}
	if jc.LogJSON != nil {
		cfg.LogJSON = *jc.LogJSON
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
