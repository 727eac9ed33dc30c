// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store applies the election engine to the relational store.

	s := store.New(conn, store.WithTimeout(cfg.RequestTimeout))
	e, err := s.CreateElection(ctx, claims, req)

Every method takes the caller's auth.Claims explicitly and fails with
auth.ErrForbidden when the role does not allow the operation.

# Transactions

Each mutation runs in a single transaction and rolls back on any error, so
a failed request leaves the store unmodified. Two locks keep concurrent
requests honest on both PostgreSQL and SQLite:

  - election_type.lock_seq is bumped before the scheduling guard reads
    existing elections, so two creations of one type cannot both pass
  - election rows are locked with a conditional no-op UPDATE on the expected
    status; status writes are compare-and-swap on that status

A lost race surfaces as a state error, never as a silent overwrite.

# Results

Results never opens a transaction. It reads positions, candidates and vote
rows, then runs election.Tally per position, so it always reflects the votes
committed so far and is safe to call from any number of readers.

# Timeouts

Every operation derives a context bounded by WithTimeout (default 5s).
*/
package store
