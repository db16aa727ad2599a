// Package config manages the guidance server settings: listen address,
// protocol keys, timeouts and the optional observability endpoints.
// Values come from environment variables with defaults, so deployments
// adjust behavior without code changes.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the root of all guidance server settings.
type Config struct {
	Server   ServerConfig
	Keys     KeyConfig
	Timeouts TimeoutConfig
	Monitor  MonitorConfig
	Redis    RedisConfig
	Logging  LoggingConfig
}

// ServerConfig holds the TCP listen settings.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr renders the listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// KeyConfig holds the 16-bit authentication keys.
type KeyConfig struct {
	ServerKey uint16 `mapstructure:"server_key"`
	ClientKey uint16 `mapstructure:"client_key"`
}

// TimeoutConfig holds the three protocol timeouts in milliseconds.
type TimeoutConfig struct {
	ReadMillis       int `mapstructure:"read_ms"`
	RechargeMillis   int `mapstructure:"recharge_ms"`
	AcceptIdleMillis int `mapstructure:"accept_idle_ms"`
}

// Read returns the normal-mode read deadline.
func (t *TimeoutConfig) Read() time.Duration {
	return time.Duration(t.ReadMillis) * time.Millisecond
}

// Recharge returns the charging-mode read deadline.
func (t *TimeoutConfig) Recharge() time.Duration {
	return time.Duration(t.RechargeMillis) * time.Millisecond
}

// AcceptIdle returns the listener's accept-idle deadline.
func (t *TimeoutConfig) AcceptIdle() time.Duration {
	return time.Duration(t.AcceptIdleMillis) * time.Millisecond
}

// MonitorConfig holds the operator WebSocket endpoint settings.
type MonitorConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// RedisConfig holds the audit stream settings. An empty URL disables it.
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// LoggingConfig holds the log output settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads the configuration from environment variables and defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("GUIDANCE_HOST", "0.0.0.0")
	v.SetDefault("GUIDANCE_PORT", 2222)

	v.SetDefault("GUIDANCE_SERVER_KEY", 54621)
	v.SetDefault("GUIDANCE_CLIENT_KEY", 45328)

	v.SetDefault("GUIDANCE_READ_TIMEOUT_MS", 1000)
	v.SetDefault("GUIDANCE_RECHARGE_TIMEOUT_MS", 5000)
	v.SetDefault("GUIDANCE_ACCEPT_IDLE_MS", 15000)

	v.SetDefault("GUIDANCE_MONITOR_ENABLED", false)
	v.SetDefault("GUIDANCE_MONITOR_PORT", 8080)

	v.SetDefault("REDIS_URL", "")

	v.SetDefault("GUIDANCE_LOG_LEVEL", "info")

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("GUIDANCE_HOST"),
			Port: v.GetInt("GUIDANCE_PORT"),
		},
		Keys: KeyConfig{
			ServerKey: v.GetUint16("GUIDANCE_SERVER_KEY"),
			ClientKey: v.GetUint16("GUIDANCE_CLIENT_KEY"),
		},
		Timeouts: TimeoutConfig{
			ReadMillis:       v.GetInt("GUIDANCE_READ_TIMEOUT_MS"),
			RechargeMillis:   v.GetInt("GUIDANCE_RECHARGE_TIMEOUT_MS"),
			AcceptIdleMillis: v.GetInt("GUIDANCE_ACCEPT_IDLE_MS"),
		},
		Monitor: MonitorConfig{
			Enabled: v.GetBool("GUIDANCE_MONITOR_ENABLED"),
			Port:    v.GetInt("GUIDANCE_MONITOR_PORT"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("GUIDANCE_LOG_LEVEL"),
		},
	}
	return cfg, nil
}
