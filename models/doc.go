// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateElectionTypeRequest: name
  - CreateStudentRequest: student_number, first_name, last_name
  - CreateElectionRequest: election_type_id, name, description, start_date, end_date
  - UpdateElectionRequest: any of name, description, start_date, end_date
  - TransitionRequest: action (activate, complete, cancel)
  - AddPositionRequest: title, max_candidates, display_order
  - AddCandidateRequest: student_id, slogan, photo_url
  - SubmitBallotRequest: selections (map of position_id to candidate_id)

# Domain Types

  - ElectionType: reference data scoping the scheduling guard
  - Election: lifecycle state and publication flag
  - Position: an office contested within an election
  - Candidate: a student running for a position
  - Student: voter identity and verification flag
  - Vote: one student's choice for one position, never updated

# Result Types

Computed on every read, never stored:

  - CandidateResult: vote count, percentage, rank, winner flag
  - PositionResult: ranked candidates for one position
  - Turnout: distinct voters against verified active students
  - ElectionResults: all positions plus turnout

# Constants

Status values:

	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"

Roles:

	RoleAdmin   = "admin"
	RoleOfficer = "officer"
	RoleStaff   = "staff"
	RoleStudent = "student"
*/
package models
