// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/campus-elections/models"
	"github.com/danielhkuo/campus-elections/store"
	"github.com/danielhkuo/campus-elections/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(store.New(testutil.SetupTestDB(t)), testutil.GetTestConfig())
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "campus-elections API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestUnknownPath(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/ballots", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestRouter(t)

	routes := []struct {
		method string
		path   string
	}{
		{"POST", "/election-types"},
		{"POST", "/students"},
		{"POST", "/students/s1/verify"},
		{"POST", "/elections"},
		{"GET", "/elections/e1"},
		{"PATCH", "/elections/e1"},
		{"DELETE", "/elections/e1"},
		{"POST", "/elections/e1/transitions"},
		{"POST", "/elections/e1/deactivate"},
		{"POST", "/elections/e1/publish"},
		{"POST", "/elections/e1/unpublish"},
		{"POST", "/elections/e1/positions"},
		{"DELETE", "/positions/p1"},
		{"POST", "/positions/p1/candidates"},
		{"POST", "/elections/e1/ballots"},
		{"GET", "/elections/e1/results"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusNotFound || w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s not registered (status %d)", route.method, route.path, w.Code)
			}
		})
	}
}

func TestInvalidTokenRejected(t *testing.T) {
	mux := newTestRouter(t)

	req := testutil.MakeRequest("GET", "/elections/e1", nil, map[string]string{"X-Auth-Token": "garbage"})
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

// Walks one election from creation to published results over HTTP.
func TestElectionFlow(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(store.New(conn), cfg)

	admin := map[string]string{"X-Auth-Token": testutil.Token(t, cfg, testutil.AdminClaims)}

	do := func(method, path string, body interface{}, headers map[string]string, want int) *httptest.ResponseRecorder {
		t.Helper()
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest(method, path, body, headers))
		testutil.AssertStatus(t, w, want)
		return w
	}

	var et models.ElectionType
	testutil.AssertJSON(t, do("POST", "/election-types", models.CreateElectionTypeRequest{Name: "Council"}, admin, http.StatusCreated), &et)

	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	var e models.Election
	testutil.AssertJSON(t, do("POST", "/elections", models.CreateElectionRequest{
		ElectionTypeID: et.ID,
		Name:           "Spring Council",
		StartDate:      start,
		EndDate:        start.Add(72 * time.Hour),
	}, admin, http.StatusCreated), &e)
	if e.Status != models.StatusDraft {
		t.Fatalf("Expected draft, got %s", e.Status)
	}

	// Same type, overlapping window
	var conflict models.ErrorResponse
	testutil.AssertJSON(t, do("POST", "/elections", models.CreateElectionRequest{
		ElectionTypeID: et.ID,
		Name:           "Overlap",
		StartDate:      start.Add(24 * time.Hour),
		EndDate:        start.Add(96 * time.Hour),
	}, admin, http.StatusConflict), &conflict)
	if conflict.Kind != "conflict" {
		t.Errorf("Expected kind conflict, got %q", conflict.Kind)
	}

	// Activation needs a ready position
	do("POST", "/elections/"+e.ID+"/transitions", models.TransitionRequest{Action: "activate"}, admin, http.StatusUnprocessableEntity)

	var p models.Position
	testutil.AssertJSON(t, do("POST", "/elections/"+e.ID+"/positions", models.AddPositionRequest{Title: "President"}, admin, http.StatusCreated), &p)

	var candidate models.Student
	testutil.AssertJSON(t, do("POST", "/students", models.CreateStudentRequest{StudentNumber: "1001", FirstName: "Ada", LastName: "Lovelace"}, admin, http.StatusCreated), &candidate)
	var c models.Candidate
	testutil.AssertJSON(t, do("POST", "/positions/"+p.ID+"/candidates", models.AddCandidateRequest{StudentID: candidate.ID}, admin, http.StatusCreated), &c)

	do("POST", "/elections/"+e.ID+"/transitions", models.TransitionRequest{Action: "activate"}, admin, http.StatusOK)

	var voter models.Student
	testutil.AssertJSON(t, do("POST", "/students", models.CreateStudentRequest{StudentNumber: "2001", FirstName: "Grace"}, admin, http.StatusCreated), &voter)
	voterHeaders := map[string]string{"X-Auth-Token": testutil.Token(t, cfg, testutil.StudentClaims(voter.ID))}

	// Unverified students cannot vote
	ballot := models.SubmitBallotRequest{Selections: map[string]string{p.ID: c.ID}}
	do("POST", "/elections/"+e.ID+"/ballots", ballot, voterHeaders, http.StatusBadRequest)

	do("POST", "/students/"+voter.ID+"/verify", nil, admin, http.StatusOK)
	do("POST", "/elections/"+e.ID+"/ballots", ballot, voterHeaders, http.StatusCreated)
	do("POST", "/elections/"+e.ID+"/ballots", ballot, voterHeaders, http.StatusBadRequest)

	// Hidden from students until published
	do("GET", "/elections/"+e.ID+"/results", nil, voterHeaders, http.StatusForbidden)

	do("POST", "/elections/"+e.ID+"/transitions", models.TransitionRequest{Action: "complete"}, admin, http.StatusOK)
	do("POST", "/elections/"+e.ID+"/publish", nil, admin, http.StatusOK)

	var results models.ElectionResults
	testutil.AssertJSON(t, do("GET", "/elections/"+e.ID+"/results", nil, voterHeaders, http.StatusOK), &results)
	if len(results.Positions) != 1 {
		t.Fatalf("Expected 1 position, got %d", len(results.Positions))
	}
	got := results.Positions[0]
	if got.TotalVotes != 1 || len(got.Candidates) != 1 || !got.Candidates[0].IsWinner {
		t.Errorf("Unexpected tally: %+v", got)
	}
	if got.Candidates[0].Percentage != 100 {
		t.Errorf("Expected 100%%, got %v", got.Candidates[0].Percentage)
	}

	// Votes block hard delete
	do("DELETE", "/elections/"+e.ID, nil, admin, http.StatusConflict)
}
