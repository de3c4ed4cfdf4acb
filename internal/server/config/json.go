package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/snipkeeper/internal/flagx"
	"github.com/dmitrijs2005/snipkeeper/internal/timex"
)

// JSONConfig is the on-disk shape of the configuration file. Durations accept
// both "24h" style strings and integer nanoseconds.
type JSONConfig struct {
	HTTPAddress                 string         `json:"http_address"`
	APIPrefix                   string         `json:"api_prefix"`
	DatabaseDSN                 string         `json:"database_dsn"`
	Storage                     string         `json:"storage"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	AvatarBackend               string         `json:"avatar_backend"`
	AvatarMaxBytes              int64          `json:"avatar_max_bytes"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	OTLPEndpoint                string         `json:"otlp_endpoint"`
	LogLevel                    string         `json:"log_level"`
}

// parseJSON overlays values from the file named by -c / -config. Only keys
// present with a non-zero value replace what is already in config.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JSONConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.HTTPAddress, c.HTTPAddress)
	setString(&config.APIPrefix, c.APIPrefix)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.Storage, c.Storage)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.AvatarBackend, c.AvatarBackend)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.OTLPEndpoint, c.OTLPEndpoint)
	setString(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.AvatarMaxBytes != 0 {
		config.AvatarMaxBytes = c.AvatarMaxBytes
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
