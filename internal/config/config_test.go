package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600))
	return dir
}

func TestLoad_DefaultsWithMinimalFile(t *testing.T) {
	dir := writeConfig(t, "auth:\n  signing_key: k\n  encryption_key: e\n")

	cfg, err := Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, SessionMemory, cfg.Session.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, time.Minute, cfg.Session.SweepInterval)
	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, 8*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "microwave/heating/events", cfg.MQTT.Topic)
	assert.False(t, cfg.MQTT.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_FileValues(t *testing.T) {
	dir := writeConfig(t, `
port: "9090"
log:
  level: DEBUG
  encoding: json
auth:
  signing_key: secret
  encryption_key: enc
  token_ttl: 1h
session:
  driver: bbolt
  idle_timeout: 5m
  bolt_path: /tmp/s.db
storage:
  driver: json
  json_path: /tmp/p.json
mqtt:
  enabled: true
  broker: tcp://localhost:1883
`)

	cfg, err := Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Encoding)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, SessionBolt, cfg.Session.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, "/tmp/s.db", cfg.Session.BoltPath)
	assert.Equal(t, StorageJSON, cfg.Storage.Driver)
	assert.True(t, cfg.MQTT.Enabled)
	assert.Equal(t, "tcp://localhost:1883", cfg.MQTT.Broker)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := writeConfig(t, "auth:\n  signing_key: from-file\n  encryption_key: e\n")
	t.Setenv("MICROWAVE_AUTH_SIGNING_KEY", "from-env")
	t.Setenv("MICROWAVE_SESSION_DRIVER", "sqlite")

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.SigningKey)
	assert.Equal(t, SessionSQLite, cfg.Session.Driver)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("MICROWAVE_AUTH_SIGNING_KEY", "k")
	t.Setenv("MICROWAVE_AUTH_ENCRYPTION_KEY", "e")

	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, "microwave.db", cfg.DB.Path)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := writeConfig(t, "port: \"7000\"\nauth:\n  signing_key: k\n  encryption_key: e\n")

	cfg, err := Load("", filepath.Join(dir, "config.yml"))
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)

	_, err = Load("", filepath.Join(dir, "nope.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Auth:    AuthConfig{SigningKey: "k", EncryptionKey: "e"},
		Session: SessionConfig{Driver: SessionMemory, SweepInterval: time.Minute},
		Storage: StorageConfig{Driver: StorageSQLite},
	}
	require.NoError(t, valid.Validate())

	cases := map[string]func(c *Config){
		"unknown session driver": func(c *Config) { c.Session.Driver = "redis" },
		"unknown storage driver": func(c *Config) { c.Storage.Driver = "xml" },
		"missing signing key":    func(c *Config) { c.Auth.SigningKey = "" },
		"missing encryption key": func(c *Config) { c.Auth.EncryptionKey = "" },
		"mqtt without broker":    func(c *Config) { c.MQTT.Enabled = true },
		"zero sweep interval":    func(c *Config) { c.Session.SweepInterval = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
