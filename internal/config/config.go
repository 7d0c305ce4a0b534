// Package config loads configs/config.yml with MICROWAVE_ environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Session and storage drivers.
const (
	SessionMemory = "memory"
	SessionSQLite = "sqlite"
	SessionBolt   = "bbolt"

	StorageSQLite = "sqlite"
	StorageJSON   = "json"
)

const envPrefix = "MICROWAVE"

type Config struct {
	Port    string
	Server  ServerConfig
	Log     LogConfig
	DB      DBConfig
	Auth    AuthConfig
	Session SessionConfig
	Storage StorageConfig
	MQTT    MQTTConfig
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

type LogConfig struct {
	Level    string
	Encoding string
}

type DBConfig struct {
	Path string
}

type AuthConfig struct {
	SigningKey    string
	TokenTTL      time.Duration
	EncryptionKey string
}

type SessionConfig struct {
	Driver        string
	IdleTimeout   time.Duration
	SweepInterval time.Duration
	BoltPath      string
}

type StorageConfig struct {
	Driver   string
	JSONPath string
}

type MQTTConfig struct {
	Enabled  bool
	Broker   string
	Topic    string
	ClientID string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")

	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")

	v.SetDefault("db.path", "microwave.db")

	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", 8*time.Hour)
	v.SetDefault("auth.encryption_key", "")

	v.SetDefault("session.driver", SessionMemory)
	v.SetDefault("session.idle_timeout", 30*time.Minute)
	v.SetDefault("session.sweep_interval", time.Minute)
	v.SetDefault("session.bolt_path", "sessions.db")

	v.SetDefault("storage.driver", StorageSQLite)
	v.SetDefault("storage.json_path", "custom_programs.json")

	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.topic", "microwave/heating/events")
	v.SetDefault("mqtt.client_id", "microwave")
}

// Load reads the named config file (or config.yml under dir) and applies
// environment overrides such as MICROWAVE_AUTH_SIGNING_KEY. A missing file
// is not an error.
func Load(dir, file string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yml")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Port: v.GetString("port"),
		Server: ServerConfig{
			ReadHeaderTimeout: v.GetDuration("server.read_header_timeout"),
			WriteTimeout:      v.GetDuration("server.write_timeout"),
			IdleTimeout:       v.GetDuration("server.idle_timeout"),
			ShutdownTimeout:   v.GetDuration("server.shutdown_timeout"),
		},
		Log: LogConfig{
			Level:    strings.ToLower(v.GetString("log.level")),
			Encoding: strings.ToLower(v.GetString("log.encoding")),
		},
		DB: DBConfig{Path: v.GetString("db.path")},
		Auth: AuthConfig{
			SigningKey:    v.GetString("auth.signing_key"),
			TokenTTL:      v.GetDuration("auth.token_ttl"),
			EncryptionKey: v.GetString("auth.encryption_key"),
		},
		Session: SessionConfig{
			Driver:        strings.ToLower(v.GetString("session.driver")),
			IdleTimeout:   v.GetDuration("session.idle_timeout"),
			SweepInterval: v.GetDuration("session.sweep_interval"),
			BoltPath:      v.GetString("session.bolt_path"),
		},
		Storage: StorageConfig{
			Driver:   strings.ToLower(v.GetString("storage.driver")),
			JSONPath: v.GetString("storage.json_path"),
		},
		MQTT: MQTTConfig{
			Enabled:  v.GetBool("mqtt.enabled"),
			Broker:   v.GetString("mqtt.broker"),
			Topic:    v.GetString("mqtt.topic"),
			ClientID: v.GetString("mqtt.client_id"),
		},
	}
	return cfg, cfg.Validate()
}

// Validate rejects unknown drivers and settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Session.Driver {
	case SessionMemory, SessionSQLite, SessionBolt:
	default:
		return fmt.Errorf("unknown session.driver %q", c.Session.Driver)
	}
	switch c.Storage.Driver {
	case StorageSQLite, StorageJSON:
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	if c.Auth.SigningKey == "" {
		return errors.New("auth.signing_key is required")
	}
	if c.Auth.EncryptionKey == "" {
		return errors.New("auth.encryption_key is required")
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return errors.New("mqtt.broker is required when mqtt.enabled is set")
	}
	if c.Session.SweepInterval <= 0 {
		return errors.New("session.sweep_interval must be positive")
	}
	return nil
}
