// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"testing"

	"github.com/danielhkuo/campus-elections/models"
)

var allStatuses = []models.ElectionStatus{
	models.StatusDraft,
	models.StatusActive,
	models.StatusCompleted,
	models.StatusCancelled,
}

func TestTransitionTable(t *testing.T) {
	ready := Facts{ReadyPositions: 1}

	tests := []struct {
		from   models.ElectionStatus
		action Action
		facts  Facts
		want   models.ElectionStatus
	}{
		{models.StatusDraft, ActionActivate, ready, models.StatusActive},
		{models.StatusDraft, ActionComplete, ready, ""},
		{models.StatusDraft, ActionCancel, Facts{}, models.StatusCancelled},
		{models.StatusActive, ActionActivate, ready, ""},
		{models.StatusActive, ActionComplete, Facts{}, models.StatusCompleted},
		{models.StatusActive, ActionCancel, Facts{}, models.StatusCancelled},
		{models.StatusActive, ActionCancel, Facts{VoteCount: 3}, ""},
		{models.StatusDraft, ActionActivate, Facts{}, ""},
		{models.StatusCompleted, ActionActivate, ready, ""},
		{models.StatusCompleted, ActionCancel, Facts{}, ""},
		{models.StatusCancelled, ActionActivate, ready, ""},
		{models.StatusCancelled, ActionComplete, Facts{}, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.action), func(t *testing.T) {
			got, err := Transition(tt.from, tt.action, tt.facts)
			if tt.want == "" {
				if !errors.Is(err, ErrState) {
					t.Fatalf("Expected state error, got status %q err %v", got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

// Every (status, action) pair yields a next status or a state error.
func TestTransitionIsTotal(t *testing.T) {
	for _, from := range allStatuses {
		for _, action := range Actions {
			for _, facts := range []Facts{{}, {ReadyPositions: 2}, {VoteCount: 1}} {
				got, err := Transition(from, action, facts)
				if err != nil {
					if !errors.Is(err, ErrState) {
						t.Errorf("%s/%s: expected state error, got %v", from, action, err)
					}
					continue
				}
				if _, perr := models.ParseElectionStatus(string(got)); perr != nil {
					t.Errorf("%s/%s: returned invalid status %q", from, action, got)
				}
				if from.Terminal() {
					t.Errorf("%s/%s: terminal state must not transition", from, action)
				}
			}
		}
	}
}

func TestTransitionUnknownInputs(t *testing.T) {
	for _, from := range allStatuses {
		if _, err := Transition(from, Action("archive"), Facts{}); !errors.Is(err, ErrState) {
			t.Errorf("%s: expected state error for unknown action, got %v", from, err)
		}
	}
	if _, err := Transition(models.ElectionStatus("paused"), ActionActivate, Facts{}); !errors.Is(err, ErrState) {
		t.Errorf("Expected state error for unknown status, got %v", err)
	}
}

func TestParseAction(t *testing.T) {
	for _, in := range []string{"activate", " Complete ", "CANCEL"} {
		if _, err := ParseAction(in); err != nil {
			t.Errorf("ParseAction(%q) unexpected error: %v", in, err)
		}
	}
	if _, err := ParseAction("reopen"); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestCheckUpdate(t *testing.T) {
	name := "Renamed"
	blank := "  "
	start := day(20)
	early := day(1)

	draft := models.Election{Status: models.StatusDraft, StartDate: day(10), EndDate: day(15)}
	active := models.Election{Status: models.StatusActive, StartDate: day(10), EndDate: day(15)}
	completed := models.Election{Status: models.StatusCompleted, StartDate: day(10), EndDate: day(15)}

	tests := []struct {
		name    string
		current models.Election
		update  Update
		wantErr error
	}{
		{"rename draft", draft, Update{Name: &name}, nil},
		{"rename active", active, Update{Name: &name}, nil},
		{"move draft dates", draft, Update{StartDate: &early}, nil},
		{"move active dates", active, Update{StartDate: &early}, ErrState},
		{"edit completed", completed, Update{Name: &name}, ErrState},
		{"blank name", draft, Update{Name: &blank}, ErrValidation},
		{"inverted window", draft, Update{StartDate: &start}, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckUpdate(tt.current, tt.update)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpdateApply(t *testing.T) {
	name := "  Spring Council  "
	cur := models.Election{Name: "Old", Description: "keep", StartDate: day(10), EndDate: day(15)}

	next := Update{Name: &name}.Apply(cur)
	if next.Name != "Spring Council" {
		t.Errorf("Expected trimmed name, got %q", next.Name)
	}
	if next.Description != "keep" || !next.StartDate.Equal(cur.StartDate) {
		t.Error("Fields not in the update must be unchanged")
	}
	if cur.Name != "Old" {
		t.Error("Apply must not modify the current election")
	}
}

func TestCheckDelete(t *testing.T) {
	if err := CheckDelete(0); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := CheckDelete(1); !errors.Is(err, ErrIntegrity) {
		t.Errorf("Expected integrity error, got %v", err)
	}
}

func TestCheckPublishable(t *testing.T) {
	for _, st := range allStatuses {
		err := CheckPublishable(st)
		refused := st == models.StatusDraft || st == models.StatusCancelled
		if refused && !errors.Is(err, ErrState) {
			t.Errorf("%s: expected state error, got %v", st, err)
		}
		if !refused && err != nil {
			t.Errorf("%s: unexpected error %v", st, err)
		}
	}
}

func TestCheckStructureEditable(t *testing.T) {
	for _, st := range allStatuses {
		err := CheckStructureEditable(st)
		if st.Terminal() != (err != nil) {
			t.Errorf("%s: editable mismatch, err = %v", st, err)
		}
	}
}
