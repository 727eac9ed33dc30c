// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/campus-elections/auth"
	"github.com/danielhkuo/campus-elections/election"
	"github.com/danielhkuo/campus-elections/middleware"
)

// statusForKind maps domain error kinds to HTTP status codes
var statusForKind = map[election.Kind]int{
	election.KindValidation: http.StatusBadRequest,
	election.KindConflict:   http.StatusConflict,
	election.KindState:      http.StatusUnprocessableEntity,
	election.KindIntegrity:  http.StatusConflict,
	election.KindNotFound:   http.StatusNotFound,
}

// writeError reports a store failure. Domain errors keep their kind and
// message; anything else is logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if errors.Is(err, auth.ErrForbidden) {
		if middleware.ClaimsFrom(r).Subject == "" {
			middleware.KindErrorResponse(w, http.StatusUnauthorized, "unauthenticated", "X-Auth-Token header required")
			return
		}
		middleware.KindErrorResponse(w, http.StatusForbidden, "forbidden", err.Error())
		return
	}

	var de *election.Error
	if errors.As(err, &de) {
		status, ok := statusForKind[de.Kind]
		if !ok {
			status = http.StatusBadRequest
		}
		middleware.KindErrorResponse(w, status, de.Kind.String(), de.Message)
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		slog.Error("request timed out", "path", r.URL.Path, "error", err)
		middleware.ErrorResponse(w, http.StatusGatewayTimeout, "Database timeout")
		return
	}

	slog.Error(fallback, "path", r.URL.Path, "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, fallback)
}
