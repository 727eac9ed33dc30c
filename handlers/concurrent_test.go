// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/campus-elections/models"
	"github.com/danielhkuo/campus-elections/store"
	"github.com/danielhkuo/campus-elections/testutil"
)

// TestConcurrentOverlappingCreates verifies that when several requests try to
// schedule overlapping elections of one type, exactly one succeeds
func TestConcurrentOverlappingCreates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	electionHandler := NewElectionHandler(store.New(db))

	typeID := testutil.CreateTestElectionType(t, db, "Council")
	start := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)

	numAttempts := 5
	var successCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()

			createReq := models.CreateElectionRequest{
				ElectionTypeID: typeID,
				Name:           "Council Race",
				StartDate:      start.Add(time.Duration(offset) * time.Hour),
				EndDate:        start.Add(48 * time.Hour),
			}
			body, _ := json.Marshal(createReq)
			req := httptest.NewRequest("POST", "/elections", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = withClaims(req, testutil.AdminClaims)
			w := httptest.NewRecorder()

			electionHandler.CreateElection(w, req)

			switch w.Code {
			case http.StatusCreated:
				successCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful create, got %d", successCount.Load())
	}
	if conflictCount.Load() != int32(numAttempts-1) {
		t.Errorf("Expected %d conflicts, got %d", numAttempts-1, conflictCount.Load())
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM election WHERE election_type_id = $1", typeID).Scan(&count); err != nil {
		t.Fatalf("Failed to count elections: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 election in database, got %d", count)
	}
}

// TestConcurrentBallotsSameVoter verifies that a student racing the same
// ballot gets exactly one vote recorded
func TestConcurrentBallotsSameVoter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	votingHandler := NewVotingHandler(store.New(db))

	typeID := testutil.CreateTestElectionType(t, db, "Council")
	electionID := testutil.CreateTestElection(t, db, typeID, "Council", models.StatusActive,
		testutil.Day(2024, time.March, 1), testutil.Day(2024, time.March, 10))
	positionID := testutil.AddTestPosition(t, db, electionID, "President")
	candidateID := testutil.AddTestCandidate(t, db, electionID, positionID, "Alice")
	voter := testutil.StudentClaims(testutil.CreateTestStudent(t, db, "Dee", "", true))

	numAttempts := 5
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ballotReq := models.SubmitBallotRequest{Selections: map[string]string{positionID: candidateID}}
			body, _ := json.Marshal(ballotReq)
			req := httptest.NewRequest("POST", "/elections/"+electionID+"/ballots", bytes.NewReader(body))
			req.SetPathValue("id", electionID)
			req.Header.Set("Content-Type", "application/json")
			req = withClaims(req, voter)
			w := httptest.NewRecorder()

			votingHandler.SubmitBallot(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful ballot, got %d", successCount.Load())
	}

	var voteCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM vote WHERE election_id = $1", electionID).Scan(&voteCount); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if voteCount != 1 {
		t.Errorf("Expected 1 vote in database, got %d", voteCount)
	}
}
