package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	envPrusaAPIKey  = "PRUSABRIDGE_PRUSA_API_KEY"
	envMQTTPassword = "PRUSABRIDGE_MQTT_PASSWORD"
)

// Config is the root configuration structure for the Prusa MQTT bridge.
// It is loaded once at startup and treated as read-only afterwards.
type Config struct {
	// Printer (PrusaLink) settings
	PrusaIP      string `yaml:"prusa_ip"`
	PrusaAPIKey  string `yaml:"prusa_api_key"`
	PrusaTimeout int    `yaml:"prusa_timeout"` // seconds

	// MQTT broker settings
	MQTTBroker   string `yaml:"mqtt_broker"`
	MQTTPort     int    `yaml:"mqtt_port"`
	MQTTTopic    string `yaml:"mqtt_topic"`
	MQTTClientID string `yaml:"mqtt_client_id"`
	MQTTUsername string `yaml:"mqtt_username"`
	MQTTPassword string `yaml:"mqtt_password"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// MQTTConfig is the subset of settings the MQTT publisher needs.
type MQTTConfig struct {
	Host     string
	Port     int
	Topic    string
	ClientID string
	Username string
	Password string
}

// PrinterConfig is the subset of settings the printer status client needs.
type PrinterConfig struct {
	Address string
	APIKey  string
	Timeout time.Duration
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: ErrConfigMissing if the file cannot be read,
//     ErrConfigInvalid if it cannot be parsed or fails validation
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigMissing, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrConfigInvalid, path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with defaults for every optional key.
// Required keys are left empty so that Validate can detect their absence.
func defaultConfig() *Config {
	return &Config{
		PrusaTimeout: 5,
		MQTTClientID: "prusa-mqtt",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides lets secrets live outside the config file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envPrusaAPIKey); v != "" {
		cfg.PrusaAPIKey = v
	}
	if v := os.Getenv(envMQTTPassword); v != "" {
		cfg.MQTTPassword = v
	}
}

// Validate checks the configuration for missing or out-of-range values.
// All problems are reported together.
//
// Returns:
//   - error: ErrConfigInvalid describing every failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.PrusaIP) == "" {
		errs = append(errs, "prusa_ip is required")
	}
	if strings.TrimSpace(c.PrusaAPIKey) == "" {
		errs = append(errs, "prusa_api_key is required")
	}
	if strings.TrimSpace(c.MQTTBroker) == "" {
		errs = append(errs, "mqtt_broker is required")
	}
	if c.MQTTPort == 0 {
		errs = append(errs, "mqtt_port is required")
	} else if c.MQTTPort < 1 || c.MQTTPort > 65535 {
		errs = append(errs, "mqtt_port must be between 1 and 65535")
	}
	if strings.TrimSpace(c.MQTTTopic) == "" {
		errs = append(errs, "mqtt_topic is required")
	} else if strings.ContainsAny(c.MQTTTopic, "+#") {
		errs = append(errs, "mqtt_topic must not contain wildcards")
	}
	if c.PrusaTimeout < 0 {
		errs = append(errs, "prusa_timeout must not be negative")
	}
	if c.MQTTPassword != "" && c.MQTTUsername == "" {
		errs = append(errs, "mqtt_password requires mqtt_username")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, errors.New(strings.Join(errs, "; ")))
	}

	return nil
}

// MQTT returns the broker settings.
func (c *Config) MQTT() MQTTConfig {
	return MQTTConfig{
		Host:     c.MQTTBroker,
		Port:     c.MQTTPort,
		Topic:    strings.TrimRight(c.MQTTTopic, "/"),
		ClientID: c.MQTTClientID,
		Username: c.MQTTUsername,
		Password: c.MQTTPassword,
	}
}

// Printer returns the printer API settings.
// A zero prusa_timeout falls back to the default of five seconds.
func (c *Config) Printer() PrinterConfig {
	timeout := c.PrusaTimeout
	if timeout == 0 {
		timeout = 5
	}
	return PrinterConfig{
		Address: c.PrusaIP,
		APIKey:  c.PrusaAPIKey,
		Timeout: time.Duration(timeout) * time.Second,
	}
}
