// Package config loads daemon settings from three layers: compiled-in
// defaults, an optional YAML file, then LIVEBRIDGE_* environment
// variables. Later layers win.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Stock defaults.
const (
	DefaultHost          = "localhost"
	DefaultPort          = 9877
	DefaultMaxClients    = 10
	DefaultMaxBuffer     = 1 << 20
	DefaultClientTimeout = 300 * time.Second
	DefaultBridgeTimeout = 10 * time.Second
	DefaultMutateDelay   = 100 * time.Millisecond
	DefaultLogLevel      = "info"
)

// EnvPrefix is the prefix of every recognized environment variable.
const EnvPrefix = "LIVEBRIDGE_"

// Duration wraps time.Duration so YAML values like "300s" or "1.5s"
// decode directly.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds every tunable of the daemon and the control client.
type Config struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	MaxClients int    `yaml:"max_clients"`
	MaxBuffer  int    `yaml:"max_buffer"`

	ClientTimeout Duration `yaml:"client_timeout"`
	BridgeTimeout Duration `yaml:"bridge_timeout"`
	MutateDelay   Duration `yaml:"mutate_delay"`

	LogLevel string `yaml:"log_level"`

	// RateLimit caps commands per second across all connections; 0
	// disables limiting. RateBurst is the token bucket size.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`

	// EtcdEndpoints, when non-empty, turns on instance registration and
	// discovery.
	EtcdEndpoints []string `yaml:"etcd_endpoints"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Host:          DefaultHost,
		Port:          DefaultPort,
		MaxClients:    DefaultMaxClients,
		MaxBuffer:     DefaultMaxBuffer,
		ClientTimeout: Duration(DefaultClientTimeout),
		BridgeTimeout: Duration(DefaultBridgeTimeout),
		MutateDelay:   Duration(DefaultMutateDelay),
		LogLevel:      DefaultLogLevel,
	}
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load builds the configuration: defaults, then the YAML file at path
// (skipped when path is empty; missing files are an error), then the
// environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.validate()
}

func (c *Config) applyEnv() error {
	if v, ok := lookup("HOST"); ok {
		c.Host = v
	}
	if v, ok := lookup("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPORT: %w", EnvPrefix, err)
		}
		c.Port = port
	}
	if v, ok := lookup("MAX_CLIENTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMAX_CLIENTS: %w", EnvPrefix, err)
		}
		c.MaxClients = n
	}
	if v, ok := lookup("MAX_BUFFER"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMAX_BUFFER: %w", EnvPrefix, err)
		}
		c.MaxBuffer = n
	}
	if err := envDuration("CLIENT_TIMEOUT", &c.ClientTimeout); err != nil {
		return err
	}
	if err := envDuration("BRIDGE_TIMEOUT", &c.BridgeTimeout); err != nil {
		return err
	}
	if err := envDuration("MUTATE_DELAY", &c.MutateDelay); err != nil {
		return err
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("RATE_LIMIT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sRATE_LIMIT: %w", EnvPrefix, err)
		}
		c.RateLimit = f
	}
	if v, ok := lookup("RATE_BURST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sRATE_BURST: %w", EnvPrefix, err)
		}
		c.RateBurst = n
	}
	if v, ok := lookup("ETCD_ENDPOINTS"); ok {
		c.EtcdEndpoints = splitList(v)
	}
	return nil
}

func (c Config) validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.MaxClients <= 0 {
		return fmt.Errorf("max_clients must be positive, got %d", c.MaxClients)
	}
	if c.MaxBuffer <= 0 {
		return fmt.Errorf("max_buffer must be positive, got %d", c.MaxBuffer)
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	return v, ok
}

func envDuration(key string, dst *Duration) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	*dst = Duration(parsed)
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
