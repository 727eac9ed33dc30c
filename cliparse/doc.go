// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL connection string or SQLite file (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - TokenSalt: Secret for auth token HMAC (required)
  - RequestTimeout: Deadline applied to each store operation (default: 5s)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	--timeout     Request timeout (Go duration)
	--token-salt  Auth token salt

# Environment Variables

Flags fall back to environment variables. A .env file in the working
directory is loaded first if present; variables already set are not
overridden by it.

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	REQUEST_TIMEOUT → --timeout
	AUTH_TOKEN_SALT → --token-salt

CLI flags take precedence over environment variables.
*/
package cliparse
