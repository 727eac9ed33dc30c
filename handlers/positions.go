// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/campus-elections/middleware"
	"github.com/danielhkuo/campus-elections/models"
	"github.com/danielhkuo/campus-elections/store"
)

type PositionHandler struct {
	store *store.Store
}

func NewPositionHandler(s *store.Store) *PositionHandler {
	return &PositionHandler{store: s}
}

// AddPosition handles POST /elections/{id}/positions
func (h *PositionHandler) AddPosition(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	var req models.AddPositionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	p, err := h.store.AddPosition(r.Context(), middleware.ClaimsFrom(r), electionID, req)
	if err != nil {
		writeError(w, r, err, "Failed to create position")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, p)
}

// DeletePosition handles DELETE /positions/{id}
func (h *PositionHandler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	positionID := r.PathValue("id")
	if positionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "position_id is required")
		return
	}

	if err := h.store.DeletePosition(r.Context(), middleware.ClaimsFrom(r), positionID); err != nil {
		writeError(w, r, err, "Failed to delete position")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddCandidate handles POST /positions/{id}/candidates
func (h *PositionHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	positionID := r.PathValue("id")
	if positionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "position_id is required")
		return
	}

	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	c, err := h.store.AddCandidate(r.Context(), middleware.ClaimsFrom(r), positionID, req)
	if err != nil {
		writeError(w, r, err, "Failed to create candidate")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, c)
}
