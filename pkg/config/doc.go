// Package config loads shiplog server configuration.
//
// Values come from three places, in increasing precedence:
//
//   - built-in defaults
//   - $SHIPLOG_CONFIG_PATH/shiplog.yml (default /etc/shiplog/shiplog.yml)
//   - environment variables
//
// # Environment Variables
//
//   - SHIPLOG_ENV: development, production or test
//   - BIND_ADDRESS, PORT: listen address
//   - JWT_SECRET: token signing secret (required)
//   - DATABASE_URL: postgres connection string
//   - SHIPLOG_TOKEN_TTL: token lifetime in seconds
//   - SHIPLOG_BCRYPT_COST: password hashing cost
//   - SHIPLOG_LOG_LEVEL: info or debug
//
// A loaded *Config is never mutated; there is no package-level instance.
package config
