// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"strings"
	"time"

	"github.com/danielhkuo/campus-elections/models"
)

// Action is an administrative request to move an election between states.
type Action string

const (
	ActionActivate Action = "activate"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// Actions lists every action the state machine accepts.
var Actions = []Action{ActionActivate, ActionComplete, ActionCancel}

// ParseAction converts a submitted action name.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionActivate, ActionComplete, ActionCancel:
		return a, nil
	}
	return "", validationErr("transition", "unknown action %q", s)
}

// Facts are the dependent-row counts a transition guard needs.
type Facts struct {
	// Active positions with at least one candidate
	ReadyPositions int
	// Votes referencing the election
	VoteCount int
}

// Transition returns the state reached by applying action to an election in
// state from. Every (state, action) pair, unknown actions included, yields
// either a next state or a KindState error.
func Transition(from models.ElectionStatus, action Action, facts Facts) (models.ElectionStatus, error) {
	switch from {
	case models.StatusDraft:
		switch action {
		case ActionActivate:
			if facts.ReadyPositions < 1 {
				return "", stateErr("transition", "election needs at least one active position with a candidate before activation")
			}
			return models.StatusActive, nil
		case ActionComplete:
			return "", stateErr("transition", "cannot complete an election that was never activated")
		case ActionCancel:
			return cancel(facts)
		}
	case models.StatusActive:
		switch action {
		case ActionActivate:
			return "", stateErr("transition", "election is already active")
		case ActionComplete:
			return models.StatusCompleted, nil
		case ActionCancel:
			return cancel(facts)
		}
	case models.StatusCompleted, models.StatusCancelled:
		return "", stateErr("transition", "election is %s and cannot %s", from, action)
	default:
		return "", stateErr("transition", "unknown election status %q", from)
	}
	return "", stateErr("transition", "election is %s and cannot %s", from, action)
}

func cancel(facts Facts) (models.ElectionStatus, error) {
	if facts.VoteCount > 0 {
		return "", stateErr("transition", "cannot cancel an election with %d cast votes", facts.VoteCount)
	}
	return models.StatusCancelled, nil
}

// Update is a partial change to an election's editable fields.
type Update struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// ChangesDates reports whether the update touches the scheduling window.
func (u Update) ChangesDates() bool {
	return u.StartDate != nil || u.EndDate != nil
}

// Apply returns current with the update's fields applied.
func (u Update) Apply(current models.Election) models.Election {
	next := current
	if u.Name != nil {
		next.Name = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		next.Description = *u.Description
	}
	if u.StartDate != nil {
		next.StartDate = u.StartDate.UTC()
	}
	if u.EndDate != nil {
		next.EndDate = u.EndDate.UTC()
	}
	return next
}

// CheckUpdate enforces field mutability for the election's current state.
// Name and description may change in any non-terminal state; the schedule
// only while draft.
func CheckUpdate(current models.Election, u Update) error {
	if current.Status.Terminal() {
		return stateErr("update", "election is %s and can no longer be edited", current.Status)
	}
	if u.ChangesDates() && current.Status != models.StatusDraft {
		return stateErr("update", "start_date and end_date are fixed once an election is %s", current.Status)
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return validationErr("update", "name cannot be empty")
	}
	if u.ChangesDates() {
		next := u.Apply(current)
		if !next.EndDate.After(next.StartDate) {
			return validationErr("update", "end_date must be after start_date")
		}
	}
	return nil
}

// CheckDelete refuses a hard delete once any vote exists.
func CheckDelete(voteCount int) error {
	if voteCount > 0 {
		return Integrity("delete", "election has %d cast votes; deactivate it instead", voteCount)
	}
	return nil
}

// CheckStructureEditable reports whether positions and candidates may be
// added to an election in this state.
func CheckStructureEditable(status models.ElectionStatus) error {
	if status != models.StatusDraft && status != models.StatusActive {
		return stateErr("structure", "positions and candidates cannot be added to a %s election", status)
	}
	return nil
}

// CheckPublishable reports whether an election has results that can be
// published.
func CheckPublishable(status models.ElectionStatus) error {
	if status == models.StatusDraft || status == models.StatusCancelled {
		return stateErr("publish", "a %s election has no results to publish", status)
	}
	return nil
}
