// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/campus-elections/middleware"
	"github.com/danielhkuo/campus-elections/models"
	"github.com/danielhkuo/campus-elections/store"
)

type VotingHandler struct {
	store *store.Store
}

func NewVotingHandler(s *store.Store) *VotingHandler {
	return &VotingHandler{store: s}
}

// SubmitBallot handles POST /elections/{id}/ballots
func (h *VotingHandler) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	var req models.SubmitBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voteIDs, err := h.store.RecordBallot(r.Context(), middleware.ClaimsFrom(r), electionID, req.Selections)
	if err != nil {
		writeError(w, r, err, "Failed to submit ballot")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitBallotResponse{
		VoteIDs: voteIDs,
		Message: "Ballot submitted successfully",
	})
}
