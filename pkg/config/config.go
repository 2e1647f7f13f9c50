package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/shiplog"
	ConfigFileName    = "shiplog.yml"
)

// Modes
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
	ModeTest        = "test"
)

// Log levels
const (
	LogLevelInfo  = "info"
	LogLevelDebug = "debug"
)

// Attribute sources
const (
	SourceDefault     = "default"
	SourceFile        = "file"
	SourceEnvironment = "environment"
)

const masked = "********"

// ErrMissingSecret is returned by Validate when no JWT secret is configured.
var ErrMissingSecret = errors.New("jwt_secret is required (set JWT_SECRET)")

// Config holds shiplog settings.
type Config struct {
	Mode        string `yaml:"mode" json:"mode"`
	BindAddress string `yaml:"bind_address" json:"bind_address"`
	Port        int    `yaml:"port" json:"port"`
	JWTSecret   string `yaml:"jwt_secret" json:"-"`
	DatabaseURL string `yaml:"database_url" json:"-"`
	// TokenTTLSeconds is the lifetime of issued tokens.
	TokenTTLSeconds int    `yaml:"token_ttl" json:"token_ttl"`
	BcryptCost      int    `yaml:"bcrypt_cost" json:"bcrypt_cost"`
	LogLevel        string `yaml:"log_level" json:"log_level"`

	sources        map[string]string
	configFilePath string
}

// Attribute is a configuration value and where it came from.
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

func newDefault() *Config {
	return &Config{
		Mode:            ModeDevelopment,
		BindAddress:     "0.0.0.0",
		Port:            3000,
		TokenTTLSeconds: int((7 * 24 * time.Hour).Seconds()),
		BcryptCost:      10,
		LogLevel:        LogLevelInfo,
		sources:         make(map[string]string),
	}
}

func attributeNames() []string {
	return []string{
		"mode", "bind_address", "port", "jwt_secret", "database_url",
		"token_ttl", "bcrypt_cost", "log_level",
	}
}

// Load reads the config file, if present, and applies environment overrides.
// A missing file is not an error; an unparsable one is.
func Load() (*Config, error) {
	c := newDefault()
	for _, name := range attributeNames() {
		c.sources[name] = SourceDefault
	}

	dir := os.Getenv("SHIPLOG_CONFIG_PATH")
	if dir == "" {
		dir = DefaultConfigPath
	}
	c.configFilePath = filepath.Join(dir, ConfigFileName)

	data, err := os.ReadFile(c.configFilePath)
	switch {
	case err == nil:
		var file Config
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", c.configFilePath, err)
		}
		c.applyFileConfig(&file)
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read config file %s: %w", c.configFilePath, err)
	}

	if err := c.applyEnvConfig(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyFileConfig(file *Config) {
	setString := func(name string, dst *string, v string) {
		if v != "" {
			*dst = v
			c.sources[name] = SourceFile
		}
	}
	setInt := func(name string, dst *int, v int) {
		if v != 0 {
			*dst = v
			c.sources[name] = SourceFile
		}
	}

	setString("mode", &c.Mode, file.Mode)
	setString("bind_address", &c.BindAddress, file.BindAddress)
	setInt("port", &c.Port, file.Port)
	setString("jwt_secret", &c.JWTSecret, file.JWTSecret)
	setString("database_url", &c.DatabaseURL, file.DatabaseURL)
	setInt("token_ttl", &c.TokenTTLSeconds, file.TokenTTLSeconds)
	setInt("bcrypt_cost", &c.BcryptCost, file.BcryptCost)
	setString("log_level", &c.LogLevel, file.LogLevel)
}

func (c *Config) applyEnvConfig() error {
	setString := func(name, env string, dst *string) {
		if val := os.Getenv(env); val != "" {
			*dst = val
			c.sources[name] = SourceEnvironment
		}
	}
	setInt := func(name, env string, dst *int) error {
		val := os.Getenv(env)
		if val == "" {
			return nil
		}
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", env, val, err)
		}
		*dst = i
		c.sources[name] = SourceEnvironment
		return nil
	}

	setString("mode", "SHIPLOG_ENV", &c.Mode)
	setString("bind_address", "BIND_ADDRESS", &c.BindAddress)
	setString("jwt_secret", "JWT_SECRET", &c.JWTSecret)
	setString("database_url", "DATABASE_URL", &c.DatabaseURL)
	setString("log_level", "SHIPLOG_LOG_LEVEL", &c.LogLevel)

	if err := setInt("port", "PORT", &c.Port); err != nil {
		return err
	}
	if err := setInt("token_ttl", "SHIPLOG_TOKEN_TTL", &c.TokenTTLSeconds); err != nil {
		return err
	}
	return setInt("bcrypt_cost", "SHIPLOG_BCRYPT_COST", &c.BcryptCost)
}

// ConfigFilePath returns the path of the config file that was consulted.
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns where an attribute's value came from.
func (c *Config) Source(name string) string {
	if s, ok := c.sources[name]; ok {
		return s
	}
	return SourceDefault
}

// Addr is the host:port the server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.BindAddress, strconv.Itoa(c.Port))
}

// TokenTTL returns the token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLSeconds) * time.Second
}

// Debug reports whether verbose logging is on.
func (c *Config) Debug() bool {
	return c.LogLevel == LogLevelDebug
}

// Validate checks the configuration is usable for serving requests.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingSecret
	}

	switch c.Mode {
	case ModeDevelopment, ModeProduction, ModeTest:
	default:
		return fmt.Errorf("invalid mode: %s", c.Mode)
	}

	switch c.LogLevel {
	case LogLevelInfo, LogLevelDebug:
	default:
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.TokenTTLSeconds <= 0 {
		return fmt.Errorf("token_ttl must be positive, got %d", c.TokenTTLSeconds)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	return nil
}

// Attributes returns every setting with its source. Secrets are masked.
func (c *Config) Attributes() []Attribute {
	secret := ""
	if c.JWTSecret != "" {
		secret = masked
	}

	return []Attribute{
		{Name: "mode", Value: c.Mode, Source: c.Source("mode")},
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: strconv.Itoa(c.Port), Source: c.Source("port")},
		{Name: "jwt_secret", Value: secret, Source: c.Source("jwt_secret")},
		{Name: "database_url", Value: redactURL(c.DatabaseURL), Source: c.Source("database_url")},
		{Name: "token_ttl", Value: strconv.Itoa(c.TokenTTLSeconds), Source: c.Source("token_ttl")},
		{Name: "bcrypt_cost", Value: strconv.Itoa(c.BcryptCost), Source: c.Source("bcrypt_cost")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
	}
}

// FormatText returns a table of the configuration.
func (c *Config) FormatText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Config file: %s\n\n", c.configFilePath)
	fmt.Fprintf(&sb, "%-20s %-40s %s\n", "NAME", "VALUE", "SOURCE")
	fmt.Fprintf(&sb, "%-20s %-40s %s\n", "----", "-----", "------")

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		fmt.Fprintf(&sb, "%-20s %-40s %s\n", attr.Name, value, attr.Source)
	}
	return sb.String()
}

// FormatJSON returns the configuration as indented JSON.
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// redactURL hides the password in a connection URL. Values that do not
// parse as URLs are masked entirely.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return masked
	}
	return u.Redacted()
}
