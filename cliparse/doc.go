// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseURL: sqlite file or PostgreSQL connection string
  - DatabaseType: "sqlite" (default) or "postgres"
  - SessionSecret: Secret for session token generation (required)
  - IdentitySalt: Secret for anonymous voter identity hashing (required)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	--session-secret  Session secret
	--identity-salt   Identity salt

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	SESSION_SECRET → --session-secret
	IDENTITY_SALT  → --identity-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided for postgres (sqlite defaults to a
    local file)
  - SESSION_SECRET must be provided
  - IDENTITY_SALT must be provided
*/
package cliparse
