// Package config resolves the runtime settings of the archive. Sources are
// applied in order, later ones overriding earlier ones:
//
//	defaults -> JSON file (-c / -config) -> SCEWIKI_* environment -> flags
package config

import (
	"fmt"
	"time"
)

// Storage backends.
const (
	StorageSQL      = "sql"
	StorageDocument = "document"
)

// Key/value backends for document storage.
const (
	KVSQL    = "sql"
	KVS3     = "s3"
	KVMemory = "memory"
)

// Config holds runtime settings for scewiki.
type Config struct {
	// Storage selects per-entity SQL tables or the single archive document.
	Storage string `env:"STORAGE"`
	// Driver is the database/sql driver: "sqlite" or "pgx".
	Driver string `env:"DB_DRIVER"`
	DSN    string `env:"DSN"`
	// KVBackend holds the archive document when Storage is "document".
	KVBackend string `env:"KV_BACKEND"`

	// DocumentKey, when set, seals the stored document with AES-GCM.
	DocumentKey   string        `env:"DOCUMENT_KEY"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL"`
	MailDelay     time.Duration `env:"MAIL_DELAY"`

	LogBackend string `env:"LOG_BACKEND"`
	LogLevel   string `env:"LOG_LEVEL"`
	LogJSON    bool   `env:"LOG_JSON"`

	S3User     string `env:"S3_USER"`
	S3Password string `env:"S3_PASSWORD"`
	S3Bucket   string `env:"S3_BUCKET"`
	S3Region   string `env:"S3_REGION"`
	S3Endpoint string `env:"S3_ENDPOINT"`
	S3Prefix   string `env:"S3_PREFIX"`
}

// LoadDefaults populates c with defaults suitable for a local archive.
func (c *Config) LoadDefaults() {
	c.Storage = StorageSQL
	c.Driver = "sqlite"
	c.DSN = "scewiki.db"
	c.KVBackend = KVSQL
	c.MailDelay = time.Second
	c.LogBackend = "slog"
	c.LogLevel = "info"
	c.S3Bucket = "scewiki"
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config from defaults, the JSON file named in args,
// the environment and the flags in args.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, nil); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown backend names.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQL, StorageDocument:
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}
	switch c.Driver {
	case "sqlite", "pgx":
	default:
		return fmt.Errorf("unknown database driver %q", c.Driver)
	}
	switch c.KVBackend {
	case KVSQL, KVS3, KVMemory:
	default:
		return fmt.Errorf("unknown kv backend %q", c.KVBackend)
	}
	if c.KVBackend == KVS3 && c.S3Bucket == "" {
		return fmt.Errorf("s3 bucket is required")
	}
	return nil
}
