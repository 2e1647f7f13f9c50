package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"SHIPLOG_ENV", "BIND_ADDRESS", "PORT", "JWT_SECRET", "DATABASE_URL",
	"SHIPLOG_TOKEN_TTL", "SHIPLOG_BCRYPT_COST", "SHIPLOG_LOG_LEVEL",
}

// isolate points the loader at an empty directory and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SHIPLOG_CONFIG_PATH", dir)
	for _, name := range envVars {
		t.Setenv(name, "")
	}
	return dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeDevelopment, cfg.Mode)
	assert.Equal(t, "0.0.0.0:3000", cfg.Addr())
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL())
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.Debug())
	assert.Equal(t, filepath.Join(dir, ConfigFileName), cfg.ConfigFilePath())

	for _, attr := range cfg.Attributes() {
		assert.Equal(t, SourceDefault, attr.Source, attr.Name)
	}
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
mode: production
port: 8080
jwt_secret: from-file
token_ttl: 3600
log_level: debug
`)
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeProduction, cfg.Mode)
	assert.Equal(t, SourceFile, cfg.Source("mode"))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, SourceEnvironment, cfg.Source("port"))

	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.TokenTTL())
	assert.True(t, cfg.Debug())
	assert.Equal(t, SourceDefault, cfg.Source("bcrypt_cost"))
}

func TestLoad_Errors(t *testing.T) {
	t.Run("unparsable file", func(t *testing.T) {
		dir := isolate(t)
		writeConfig(t, dir, "port: [not, a, number")
		_, err := Load()
		assert.ErrorContains(t, err, "failed to parse config file")
	})

	t.Run("non-numeric env", func(t *testing.T) {
		isolate(t)
		t.Setenv("SHIPLOG_BCRYPT_COST", "ten")
		_, err := Load()
		assert.ErrorContains(t, err, "SHIPLOG_BCRYPT_COST")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := newDefault()
		c.JWTSecret = "s3cret"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "jwt_secret is required"},
		{name: "unknown mode", mutate: func(c *Config) { c.Mode = "staging" }, wantErr: "invalid mode"},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: "invalid log_level"},
		{name: "port out of range", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "invalid port"},
		{name: "zero ttl", mutate: func(c *Config) { c.TokenTTLSeconds = 0 }, wantErr: "token_ttl must be positive"},
		{name: "cost too low", mutate: func(c *Config) { c.BcryptCost = 3 }, wantErr: "bcrypt_cost"},
		{name: "cost too high", mutate: func(c *Config) { c.BcryptCost = 32 }, wantErr: "bcrypt_cost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	c := valid()
	c.JWTSecret = ""
	assert.ErrorIs(t, c.Validate(), ErrMissingSecret)
}

func TestAttributes_MasksSecrets(t *testing.T) {
	isolate(t)
	t.Setenv("JWT_SECRET", "super-secret-value")
	t.Setenv("DATABASE_URL", "postgres://shiplog:hunter2@db:5432/shiplog?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)

	text := cfg.FormatText()
	assert.NotContains(t, text, "super-secret-value")
	assert.NotContains(t, text, "hunter2")
	assert.Contains(t, text, "postgres://shiplog:xxxxx@db:5432/shiplog")

	out, err := cfg.FormatJSON()
	require.NoError(t, err)
	assert.NotContains(t, out, "super-secret-value")
	assert.NotContains(t, out, "hunter2")

	var parsed struct {
		ConfigFile string      `json:"config_file"`
		Attributes []Attribute `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Len(t, parsed.Attributes, len(attributeNames()))
	for _, attr := range parsed.Attributes {
		if attr.Name == "jwt_secret" {
			assert.Equal(t, masked, attr.Value)
			assert.Equal(t, SourceEnvironment, attr.Source)
		}
	}
}

func TestFormatText_NotSet(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)

	for _, line := range strings.Split(cfg.FormatText(), "\n") {
		if strings.HasPrefix(line, "jwt_secret") {
			assert.Contains(t, line, "(not set)")
		}
	}
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t, "", redactURL(""))
	assert.Equal(t, masked, redactURL("host=db user=shiplog password=hunter2"))
	assert.Equal(t, "postgres://db/shiplog", redactURL("postgres://db/shiplog"))
}
