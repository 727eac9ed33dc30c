// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connections

Open picks the driver from the configured database type:

	conn, err := db.Open("postgres", "postgres://...")
	conn, err := db.Open("sqlite", "file:elections.db")

PostgreSQL uses github.com/lib/pq; SQLite uses the pure-Go modernc.org/sqlite
driver and is limited to a single open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same SQL runs on both databases, with $N placeholders throughout.

# Tables

  - election_type: reference data; its lock_seq column is bumped to serialize
    elections of one type
  - student: voter identity and verification
  - election: lifecycle state and publication flag
  - position: offices within an election
  - candidate: a student standing for a position
  - vote: one row per (student, position), never updated

# Relationships

	election_type 1──* election
	election 1──* position 1──* candidate 1──* vote
	student 1──* candidate
	student 1──* vote

Nothing cascades on delete: vote rows are ground truth and are never removed.
*/
package db
