// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/campus-elections/middleware"
	"github.com/danielhkuo/campus-elections/store"
)

type ResultsHandler struct {
	store *store.Store
}

func NewResultsHandler(s *store.Store) *ResultsHandler {
	return &ResultsHandler{store: s}
}

// GetResults handles GET /elections/{id}/results
// Returns 403 for students until results are published
// Officers and admins always see the live tally
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	results, err := h.store.Results(r.Context(), middleware.ClaimsFrom(r), electionID)
	if err != nil {
		writeError(w, r, err, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}
