package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseJSON(t *testing.T) {
	path := writeJSON(t, `{
		"http_address": ":6000",
		"database_dsn": "postgres://u:p@db:5432/x",
		"secret_key": "k",
		"access_token_validity_duration": "90m",
		"avatar_max_bytes": 1024,
		"s3_bucket": "pics",
		"otlp_endpoint": "http://collector:4318"
	}`)

	c := defaults()
	require.NoError(t, parseJSON(c, []string{"-c", path}))

	assert.Equal(t, ":6000", c.HTTPAddress)
	assert.Equal(t, "postgres://u:p@db:5432/x", c.DatabaseDSN)
	assert.Equal(t, "k", c.SecretKey)
	assert.Equal(t, 90*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, int64(1024), c.AvatarMaxBytes)
	assert.Equal(t, "pics", c.S3Bucket)
	assert.Equal(t, "http://collector:4318", c.OTLPEndpoint)
	// keys absent from the file keep their previous value
	assert.Equal(t, "/api", c.APIPrefix)
	assert.Equal(t, 10, c.BcryptCost)
}

func TestParseJSON_NoFlag(t *testing.T) {
	c := defaults()
	require.NoError(t, parseJSON(c, []string{"-a", ":1"}))
	assert.Equal(t, defaults(), c)
}

func TestParseJSON_MissingFile(t *testing.T) {
	c := defaults()
	err := parseJSON(c, []string{"-config", filepath.Join(t.TempDir(), "nope.json")})
	assert.Error(t, err)
}

func TestParseJSON_Malformed(t *testing.T) {
	path := writeJSON(t, `{"http_address":`)
	c := defaults()
	assert.Error(t, parseJSON(c, []string{"-c", path}))
}
