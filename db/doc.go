// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Opening a Connection

Open wraps sql.Open and applies driver-specific settings:

	conn, err := db.Open(db.DriverSQLite, cfg.DatabaseURL)

SQLite handles are limited to one open connection so concurrent writers
queue instead of failing with SQLITE_BUSY.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - account: Registered users with bcrypt password hashes
  - session: Login sessions keyed by random token
  - poll: Poll metadata and ownership
  - item: Votable options per poll, each with its aggregate vote count
  - vote: One cast per voter identity per poll
  - short_url: URL shortener records

# Relationships

	account 1──* session
	poll    1──* item
	poll    1──* vote
	item    1──* vote

The vote table's PRIMARY KEY (poll_id, voter) is what makes duplicate
casts impossible: a second insert for the same pair violates the
constraint regardless of request interleaving.

# Portability

The same schema string runs on sqlite and postgres: text keys,
timestamps written from Go, no server-side defaults. Queries are
written with ? placeholders and rewritten with Rebind for postgres.
IsUniqueViolation recognizes constraint violations from both drivers.
*/
package db
