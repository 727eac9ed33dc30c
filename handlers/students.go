// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/campus-elections/middleware"
	"github.com/danielhkuo/campus-elections/models"
	"github.com/danielhkuo/campus-elections/store"
)

type StudentHandler struct {
	store *store.Store
}

func NewStudentHandler(s *store.Store) *StudentHandler {
	return &StudentHandler{store: s}
}

// CreateStudent handles POST /students
func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStudentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	st, err := h.store.CreateStudent(r.Context(), middleware.ClaimsFrom(r), req)
	if err != nil {
		writeError(w, r, err, "Failed to register student")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, st)
}

// VerifyStudent handles POST /students/{id}/verify
func (h *StudentHandler) VerifyStudent(w http.ResponseWriter, r *http.Request) {
	studentID := r.PathValue("id")
	if studentID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "student_id is required")
		return
	}

	st, err := h.store.VerifyStudent(r.Context(), middleware.ClaimsFrom(r), studentID)
	if err != nil {
		writeError(w, r, err, "Failed to verify student")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, st)
}
