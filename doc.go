// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the campus elections API server.

The server manages student government elections: scheduling elections
without overlaps per election type, moving them through the
draft → active → completed/cancelled lifecycle, recording ballots and
tallying results with competition ranking and turnout.

# Starting the Server

The server reads environment variables (and an optional .env file) or CLI flags:

	DATABASE_URL=file:elections.db AUTH_TOKEN_SALT=... go run .

Or against PostgreSQL with flags:

	go run . -t postgres -d "postgres://..." -p 3318

# Issuing Tokens

Every request carries an X-Auth-Token header signed with AUTH_TOKEN_SALT:

	AUTH_TOKEN_SALT=... go run . token -role admin -subject alice

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file URL or PostgreSQL connection string
  - AUTH_TOKEN_SALT (--token-salt): Secret for auth token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - REQUEST_TIMEOUT (--timeout): Per-request database timeout (default: 5s)

# Architecture

  - election: Scheduling guard, state machine and tally (no I/O)
  - store: Transactional operations over database/sql
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, auth claims, logging, JSON helpers
  - models: Domain and request/response types
  - auth: Token generation and validation
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
