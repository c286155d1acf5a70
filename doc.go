// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pollbox API server.

Pollbox is a small polling service: accounts create polls and items,
anyone can vote, and each voter identity gets exactly one vote per
poll. A handful of utility endpoints (URL shortener, timestamp
converter, request header parser, file metadata) ride along.

# Starting the Server

The server runs on sqlite by default and needs two secrets:

	SESSION_SECRET=... IDENTITY_SALT=... go run main.go

Or against postgres:

	go run main.go -t postgres -d "postgres://..."

A .env file in the working directory is loaded at startup.

# Configuration

Required settings:

  - SESSION_SECRET (--session-secret): Secret for session tokens
  - IDENTITY_SALT (--identity-salt): Secret for anonymous voter hashing

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): sqlite file or postgres connection string

# Architecture

The server uses a handler-based architecture with dependency injection:

  - store: poll store and vote ledger on database/sql
  - service: orchestration and authentication gating
  - identity: accounts, sessions, voter resolution
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Token generation and credential hashing
  - db: Connections and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
