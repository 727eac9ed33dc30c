// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/campus-elections/election"
	"github.com/danielhkuo/campus-elections/middleware"
	"github.com/danielhkuo/campus-elections/models"
	"github.com/danielhkuo/campus-elections/store"
)

type ElectionHandler struct {
	store *store.Store
}

func NewElectionHandler(s *store.Store) *ElectionHandler {
	return &ElectionHandler{store: s}
}

// CreateElectionType handles POST /election-types
func (h *ElectionHandler) CreateElectionType(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionTypeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	et, err := h.store.CreateElectionType(r.Context(), middleware.ClaimsFrom(r), req)
	if err != nil {
		writeError(w, r, err, "Failed to create election type")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, et)
}

// CreateElection handles POST /elections
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	e, err := h.store.CreateElection(r.Context(), middleware.ClaimsFrom(r), req)
	if err != nil {
		writeError(w, r, err, "Failed to create election")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, e)
}

// GetElection handles GET /elections/{id}
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	out, err := h.store.GetElection(r.Context(), middleware.ClaimsFrom(r), electionID)
	if err != nil {
		writeError(w, r, err, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, out)
}

// UpdateElection handles PATCH /elections/{id}
func (h *ElectionHandler) UpdateElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	var req models.UpdateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	e, err := h.store.UpdateElection(r.Context(), middleware.ClaimsFrom(r), electionID, req)
	if err != nil {
		writeError(w, r, err, "Failed to update election")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, e)
}

// Transition handles POST /elections/{id}/transitions
func (h *ElectionHandler) Transition(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	var req models.TransitionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	action, err := election.ParseAction(req.Action)
	if err != nil {
		writeError(w, r, err, "Invalid action")
		return
	}

	e, err := h.store.TransitionElection(r.Context(), middleware.ClaimsFrom(r), electionID, action)
	if err != nil {
		writeError(w, r, err, "Failed to change election status")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, e)
}

// DeleteElection handles DELETE /elections/{id}
func (h *ElectionHandler) DeleteElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	if err := h.store.DeleteElection(r.Context(), middleware.ClaimsFrom(r), electionID); err != nil {
		writeError(w, r, err, "Failed to delete election")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeactivateElection handles POST /elections/{id}/deactivate
func (h *ElectionHandler) DeactivateElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	n, err := h.store.DeactivateElection(r.Context(), middleware.ClaimsFrom(r), electionID)
	if err != nil {
		writeError(w, r, err, "Failed to deactivate election")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]int{
		"candidates_deactivated": n,
	})
}

// Publish handles POST /elections/{id}/publish
func (h *ElectionHandler) Publish(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	e, err := h.store.Publish(r.Context(), middleware.ClaimsFrom(r), electionID)
	if err != nil {
		writeError(w, r, err, "Failed to publish results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, e)
}

// Unpublish handles POST /elections/{id}/unpublish
func (h *ElectionHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	e, err := h.store.Unpublish(r.Context(), middleware.ClaimsFrom(r), electionID)
	if err != nil {
		writeError(w, r, err, "Failed to unpublish results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, e)
}
