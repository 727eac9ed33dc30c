// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/campus-elections/cliparse"
	"github.com/danielhkuo/campus-elections/handlers"
	"github.com/danielhkuo/campus-elections/middleware"
	"github.com/danielhkuo/campus-elections/store"
)

func NewRouter(s *store.Store, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(s)
	positionHandler := handlers.NewPositionHandler(s)
	studentHandler := handlers.NewStudentHandler(s)
	votingHandler := handlers.NewVotingHandler(s)
	resultsHandler := handlers.NewResultsHandler(s)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Reference data
	mux.HandleFunc("POST /election-types", middleware.WithLogging(electionHandler.CreateElectionType))
	mux.HandleFunc("POST /students", middleware.WithLogging(studentHandler.CreateStudent))
	mux.HandleFunc("POST /students/{id}/verify", middleware.WithLogging(studentHandler.VerifyStudent))

	// Election lifecycle
	mux.HandleFunc("POST /elections", middleware.WithLogging(electionHandler.CreateElection))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.GetElection))
	mux.HandleFunc("PATCH /elections/{id}", middleware.WithLogging(electionHandler.UpdateElection))
	mux.HandleFunc("DELETE /elections/{id}", middleware.WithLogging(electionHandler.DeleteElection))
	mux.HandleFunc("POST /elections/{id}/transitions", middleware.WithLogging(electionHandler.Transition))
	mux.HandleFunc("POST /elections/{id}/deactivate", middleware.WithLogging(electionHandler.DeactivateElection))
	mux.HandleFunc("POST /elections/{id}/publish", middleware.WithLogging(electionHandler.Publish))
	mux.HandleFunc("POST /elections/{id}/unpublish", middleware.WithLogging(electionHandler.Unpublish))

	// Positions and candidates
	mux.HandleFunc("POST /elections/{id}/positions", middleware.WithLogging(positionHandler.AddPosition))
	mux.HandleFunc("DELETE /positions/{id}", middleware.WithLogging(positionHandler.DeletePosition))
	mux.HandleFunc("POST /positions/{id}/candidates", middleware.WithLogging(positionHandler.AddCandidate))

	// Voting and results
	mux.HandleFunc("POST /elections/{id}/ballots", middleware.WithLogging(votingHandler.SubmitBallot))
	mux.HandleFunc("GET /elections/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("campus-elections API v1"))
	})

	return middleware.CORS(middleware.WithClaims(cfg.TokenSalt, mux))
}
