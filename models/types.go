package models

import (
	"fmt"
	"time"
)

// ElectionStatus is the lifecycle state of an election.
type ElectionStatus string

// Election status constants
const (
	StatusDraft     ElectionStatus = "draft"
	StatusActive    ElectionStatus = "active"
	StatusCompleted ElectionStatus = "completed"
	StatusCancelled ElectionStatus = "cancelled"
)

// ParseElectionStatus converts a stored or submitted status string.
func ParseElectionStatus(s string) (ElectionStatus, error) {
	switch st := ElectionStatus(s); st {
	case StatusDraft, StatusActive, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown election status %q", s)
}

// Terminal reports whether no further transitions are possible.
func (s ElectionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Schedulable reports whether an election in this state occupies its window
// for the scheduling guard.
func (s ElectionStatus) Schedulable() bool {
	return s == StatusDraft || s == StatusActive
}

// Role constants carried by auth tokens
const (
	RoleAdmin   = "admin"
	RoleOfficer = "officer"
	RoleStaff   = "staff"
	RoleStudent = "student"
)

// Request types

type CreateElectionTypeRequest struct {
	Name string `json:"name"`
}

type CreateStudentRequest struct {
	StudentNumber string `json:"student_number"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
}

type CreateElectionRequest struct {
	ElectionTypeID string    `json:"election_type_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
}

// UpdateElectionRequest carries a partial update; nil fields are unchanged.
type UpdateElectionRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type TransitionRequest struct {
	Action string `json:"action"`
}

type AddPositionRequest struct {
	Title         string `json:"title"`
	MaxCandidates int    `json:"max_candidates"`
	DisplayOrder  int    `json:"display_order"`
}

type AddCandidateRequest struct {
	StudentID string `json:"student_id"`
	Slogan    string `json:"slogan"`
	PhotoURL  string `json:"photo_url"`
}

// position_id -> candidate_id
type SubmitBallotRequest struct {
	Selections map[string]string `json:"selections"`
}

// Response types

type CreatedResponse struct {
	ID string `json:"id"`
}

type SubmitBallotResponse struct {
	VoteIDs []string `json:"vote_ids"`
	Message string   `json:"message"`
}

type ElectionWithPositions struct {
	Election  Election            `json:"election"`
	Positions []PositionWithSlate `json:"positions"`
}

type PositionWithSlate struct {
	Position   Position    `json:"position"`
	Candidates []Candidate `json:"candidates"`
}

// Domain types

type ElectionType struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type Election struct {
	ID                 string         `json:"id"`
	ElectionTypeID     string         `json:"election_type_id"`
	Name               string         `json:"name"`
	Description        string         `json:"description"`
	StartDate          time.Time      `json:"start_date"`
	EndDate            time.Time      `json:"end_date"`
	Status             ElectionStatus `json:"status"`
	IsActive           bool           `json:"is_active"`
	ResultsPublished   bool           `json:"results_published"`
	ResultsPublishedAt *time.Time     `json:"results_published_at,omitempty"`
	CreatedBy          string         `json:"created_by"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

type Position struct {
	ID            string `json:"id"`
	ElectionID    string `json:"election_id"`
	Title         string `json:"title"`
	MaxCandidates int    `json:"max_candidates"`
	DisplayOrder  int    `json:"display_order"`
	IsActive      bool   `json:"is_active"`
}

type Candidate struct {
	ID          string `json:"id"`
	PositionID  string `json:"position_id"`
	ElectionID  string `json:"election_id"`
	StudentID   string `json:"student_id"`
	DisplayName string `json:"display_name"`
	Slogan      string `json:"slogan,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	IsActive    bool   `json:"is_active"`
}

type Student struct {
	ID            string `json:"id"`
	StudentNumber string `json:"student_number"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	IsVerified    bool   `json:"is_verified"`
	IsActive      bool   `json:"is_active"`
}

// FullName is the name shown on the ballot and in results.
func (s Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// Vote is immutable once written.
type Vote struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidate_id"`
	PositionID  string    `json:"position_id"`
	ElectionID  string    `json:"election_id"`
	StudentID   string    `json:"-"` // Never expose in JSON
	CastAt      time.Time `json:"cast_at"`
}

// Tally result types

type CandidateResult struct {
	CandidateID string  `json:"candidate_id"`
	DisplayName string  `json:"display_name"`
	VoteCount   int     `json:"vote_count"`
	Percentage  float64 `json:"percentage"`
	Rank        int     `json:"rank"` // competition ranking, 1-indexed
	IsWinner    bool    `json:"is_winner"`
}

type PositionResult struct {
	Position    Position          `json:"position"`
	TotalVotes  int               `json:"total_votes"`
	Candidates  []CandidateResult `json:"candidates"`
	WinnerCount int               `json:"winner_count"`
	Tied        bool              `json:"tied"` // more than one winner
}

type Turnout struct {
	TotalVoters       int     `json:"total_voters"`
	EligibleVoters    int     `json:"eligible_voters"`
	TurnoutPercentage float64 `json:"turnout_percentage"`
}

type ElectionResults struct {
	Election  Election         `json:"election"`
	Positions []PositionResult `json:"positions"`
	Turnout   Turnout          `json:"turnout"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}
