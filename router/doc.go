// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the elections API.

# Route Registration

NewRouter returns the full handler chain (CORS, then claims, then the mux):

	handler := router.NewRouter(s, cfg)

# Endpoints

Health:

	GET /health

Reference data (admin; verify also allows staff):

	POST /election-types
	POST /students
	POST /students/{id}/verify

Elections:

	POST   /elections                  - Create (admin)
	GET    /elections/{id}             - Election with positions and slates
	PATCH  /elections/{id}             - Update (admin)
	DELETE /elections/{id}             - Hard delete (admin, no votes)
	POST   /elections/{id}/transitions - Lifecycle action (admin, officer)
	POST   /elections/{id}/deactivate  - Soft delete (admin)
	POST   /elections/{id}/publish     - Show results (admin, officer)
	POST   /elections/{id}/unpublish   - Hide results (admin, officer)

Structure (admin):

	POST   /elections/{id}/positions
	DELETE /positions/{id}
	POST   /positions/{id}/candidates

Voting and results:

	POST /elections/{id}/ballots - Record votes (student)
	GET  /elections/{id}/results - Live tally and turnout

# Authentication

Every route reads the X-Auth-Token header through middleware.WithClaims.
The store decides what each role may do.
*/
package router
