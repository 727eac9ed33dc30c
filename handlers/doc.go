// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the elections API.

# Handler Types

Each handler is a thin struct over *store.Store:

	electionHandler := handlers.NewElectionHandler(s)

The handlers are:

  - ElectionHandler: election types, elections, lifecycle, publication
  - PositionHandler: positions and candidates
  - StudentHandler: student registration and verification
  - VotingHandler: ballot submission
  - ResultsHandler: tallied results and turnout

Handlers parse the request, pass the caller's claims (from
middleware.ClaimsFrom) to the store, and render the result. They hold no
decision logic of their own.

# Election Lifecycle

	POST /elections                    → CreateElection (draft, scheduling guard)
	PATCH /elections/{id}              → UpdateElection
	POST /elections/{id}/transitions   → Transition {"action": "activate"|"complete"|"cancel"}
	DELETE /elections/{id}             → DeleteElection (refused once votes exist)
	POST /elections/{id}/deactivate    → DeactivateElection
	POST /elections/{id}/publish       → Publish
	POST /elections/{id}/unpublish     → Unpublish

# Errors

Domain errors are rendered with their kind:

	{"error": "Conflict", "kind": "conflict", "message": "conflicting election exists: ..."}

	validation → 400    conflict → 409    state → 422
	integrity  → 409    not_found → 404   forbidden → 403

Requests without a token that hit a protected operation get 401.
*/
package handlers
