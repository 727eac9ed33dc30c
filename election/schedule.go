// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"time"

	"github.com/danielhkuo/campus-elections/models"
)

// Conflict identifies an existing election whose window overlaps a proposed one.
type Conflict struct {
	ElectionID string    `json:"election_id"`
	Name       string    `json:"name"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

// Overlaps reports whether the closed intervals [aStart, aEnd] and
// [bStart, bEnd] share at least one instant.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// ValidateWindow checks a proposed election window. New elections may not
// start in the past.
func ValidateWindow(start, end, now time.Time, creating bool) error {
	if start.IsZero() || end.IsZero() {
		return validationErr("schedule", "start_date and end_date are required")
	}
	if !end.After(start) {
		return validationErr("schedule", "end_date must be after start_date")
	}
	if creating && start.Before(now) {
		return validationErr("schedule", "start_date must not be in the past")
	}
	return nil
}

// CheckConflict returns the first draft or active election of the same type
// whose window overlaps [start, end], or nil. The election with excludeID
// is skipped so an update does not conflict with itself.
func CheckConflict(existing []models.Election, electionTypeID string, start, end time.Time, excludeID string) *Conflict {
	for _, e := range existing {
		if e.ElectionTypeID != electionTypeID || !e.Status.Schedulable() {
			continue
		}
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if Overlaps(start, end, e.StartDate, e.EndDate) {
			return &Conflict{
				ElectionID: e.ID,
				Name:       e.Name,
				StartDate:  e.StartDate,
				EndDate:    e.EndDate,
			}
		}
	}
	return nil
}

// ConflictError wraps a scheduling conflict as a KindConflict error.
func ConflictError(c *Conflict) error {
	return &Error{
		Kind:     KindConflict,
		Op:       "schedule",
		Message:  fmt.Sprintf("conflicting election exists: %q (%s)", c.Name, c.ElectionID),
		Conflict: c,
	}
}
