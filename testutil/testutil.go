// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/campus-elections/auth"
	"github.com/danielhkuo/campus-elections/cliparse"
	"github.com/danielhkuo/campus-elections/db"
	"github.com/danielhkuo/campus-elections/models"
)

// Fixed "now" for store tests; fixture elections are scheduled after it
var TestNow = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

// Claims used across tests
var (
	AdminClaims   = auth.Claims{Subject: "admin-1", Role: models.RoleAdmin}
	OfficerClaims = auth.Claims{Subject: "officer-1", Role: models.RoleOfficer}
	StaffClaims   = auth.Claims{Subject: "staff-1", Role: models.RoleStaff}
)

// SetupTestDB creates a fresh SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "elections-test.db")
	conn, err := db.Open("sqlite", "file:"+path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    "file::memory:",
		DatabaseType:   "sqlite",
		TokenSalt:      "test-token-salt",
		RequestTimeout: 5 * time.Second,
	}
}

// Token returns a signed auth token for claims
func Token(t *testing.T, cfg cliparse.Config, claims auth.Claims) string {
	t.Helper()

	token, err := auth.GenerateToken(claims.Subject, claims.Role, cfg.TokenSalt)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return token
}

// StudentClaims returns claims for a student voter
func StudentClaims(studentID string) auth.Claims {
	return auth.Claims{Subject: studentID, Role: models.RoleStudent}
}

// Day returns midnight UTC of the given date
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestElectionType inserts an active election type and returns its ID
func CreateTestElectionType(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO election_type (id, name, is_active, lock_seq)
		VALUES ($1, $2, $3, 0)
	`, id, name, true)
	if err != nil {
		t.Fatalf("Failed to create test election type: %v", err)
	}
	return id
}

// CreateTestStudent inserts an active student and returns its ID
func CreateTestStudent(t *testing.T, conn *sql.DB, firstName, lastName string, verified bool) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO student (id, student_number, first_name, last_name, is_verified, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, "S-"+id[:8], firstName, lastName, verified, true, TestNow)
	if err != nil {
		t.Fatalf("Failed to create test student: %v", err)
	}
	return id
}

// CreateTestElection inserts an election directly in the given status
func CreateTestElection(t *testing.T, conn *sql.DB, typeID, name string, status models.ElectionStatus, start, end time.Time) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO election (id, election_type_id, name, description, start_date, end_date,
		                      status, is_active, results_published, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, '', $4, $5, $6, $7, $8, $9, $10, $11)
	`, id, typeID, name, start.UTC(), end.UTC(), string(status), true, false, AdminClaims.Subject, TestNow, TestNow)
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}
	return id
}

// AddTestPosition adds an active position to an election and returns its ID
func AddTestPosition(t *testing.T, conn *sql.DB, electionID, title string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO position (id, election_id, title, max_candidates, display_order, is_active)
		VALUES ($1, $2, $3, 0, 0, $4)
	`, id, electionID, title, true)
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}
	return id
}

// AddTestCandidate registers a new student as a candidate and returns the candidate ID
func AddTestCandidate(t *testing.T, conn *sql.DB, electionID, positionID, name string) string {
	t.Helper()

	studentID := CreateTestStudent(t, conn, name, "", true)
	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO candidate (id, position_id, election_id, student_id, slogan, photo_url, is_active)
		VALUES ($1, $2, $3, $4, '', '', $5)
	`, id, positionID, electionID, studentID, true)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}
	return id
}

// CastTestVotes writes n votes for a candidate, each from a fresh verified student
func CastTestVotes(t *testing.T, conn *sql.DB, electionID, positionID, candidateID string, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		studentID := CreateTestStudent(t, conn, "Voter", uuid.NewString()[:6], true)
		CastTestVote(t, conn, electionID, positionID, candidateID, studentID)
	}
}

// CastTestVote writes a single vote row
func CastTestVote(t *testing.T, conn *sql.DB, electionID, positionID, candidateID, studentID string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO vote (id, candidate_id, position_id, election_id, student_id, cast_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), candidateID, positionID, electionID, studentID, TestNow)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
