// Command shiplogctl runs and administers shiplog, a product update log API.
//
// Users register and log in with a username and password and receive a
// signed bearer token. Every /api route requires that token, and a user only
// ever sees the products they created along with those products' updates
// and update points.
//
// # Architecture
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST handlers
//   - pkg/server/middleware: bearer token gate
//   - pkg/server/store: storage interfaces, gorm implementations in store/gorm
//   - pkg/token: JWT issue and decode
//   - pkg/credential: bcrypt password hashing
//   - pkg/model: database models
//   - pkg/db: connection and migrations
//   - pkg/markdown: update rendering and changelog parsing
//   - pkg/audit: RFC5424 audit records
//   - pkg/config: configuration management
//
// # Quick Start
//
//	export JWT_SECRET=$(openssl rand -hex 32)
//	export DATABASE_URL=postgres://postgres@localhost/shiplog?sslmode=disable
//
//	# Run database migrations
//	shiplogctl db migrate
//
//	# Create a user and print a token for it
//	shiplogctl user create alice --password hunter22
//
//	# Start the server
//	shiplogctl server
//
//	# Keep a product's updates in sync with a changelog file
//	shiplogctl update watch CHANGELOG.md --user alice --product <id>
//
// # Environment Variables
//
//   - JWT_SECRET: token signing key (required)
//   - DATABASE_URL: PostgreSQL connection string
//   - SHIPLOG_ENV: development, production or test
//   - PORT, BIND_ADDRESS: listen address (default 0.0.0.0:3000)
//   - SHIPLOG_TOKEN_TTL: token lifetime in seconds (default 7 days)
//   - SHIPLOG_BCRYPT_COST: bcrypt work factor (default 10)
//   - SHIPLOG_LOG_LEVEL: info or debug
//   - SHIPLOG_CONFIG_PATH: directory holding shiplog.yml
//   - SHIPLOG_AUDIT_ENABLED, SHIPLOG_AUDIT_DATABASE_URL: audit output
package main
