// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/campus-elections/auth"
	"github.com/danielhkuo/campus-elections/election"
	"github.com/danielhkuo/campus-elections/models"
)

// AddPosition adds a contested office to a draft or active election.
// MaxCandidates of 0 means no limit.
func (s *Store) AddPosition(ctx context.Context, claims auth.Claims, electionID string, req models.AddPositionRequest) (models.Position, error) {
	if err := claims.Require(models.RoleAdmin); err != nil {
		return models.Position{}, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Position{}, election.Validation("add position", "title is required")
	}
	if req.MaxCandidates < 0 {
		return models.Position{}, election.Validation("add position", "max_candidates cannot be negative")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p := models.Position{
		ID:            uuid.NewString(),
		ElectionID:    electionID,
		Title:         title,
		MaxCandidates: req.MaxCandidates,
		DisplayOrder:  req.DisplayOrder,
		IsActive:      true,
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		e, err := getElection(ctx, tx, "add position", electionID)
		if err != nil {
			return err
		}
		if err := election.CheckStructureEditable(e.Status); err != nil {
			return err
		}
		if err := lockElection(ctx, tx, "add position", electionID, e.Status); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO position (id, election_id, title, max_candidates, display_order, is_active)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.ID, p.ElectionID, p.Title, p.MaxCandidates, p.DisplayOrder, p.IsActive)
		if err != nil {
			return fmt.Errorf("failed to insert position: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Position{}, err
	}

	slog.Info("position added", "election_id", electionID, "position_id", p.ID)
	return p, nil
}

// DeletePosition removes a position that no candidate references.
func (s *Store) DeletePosition(ctx context.Context, claims auth.Claims, positionID string) error {
	if err := claims.Require(models.RoleAdmin); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		p, err := getPosition(ctx, tx, "delete position", positionID)
		if err != nil {
			return err
		}
		e, err := getElection(ctx, tx, "delete position", p.ElectionID)
		if err != nil {
			return err
		}
		if err := election.CheckStructureEditable(e.Status); err != nil {
			return err
		}
		if err := lockElection(ctx, tx, "delete position", e.ID, e.Status); err != nil {
			return err
		}

		n, err := countRows(ctx, tx, `SELECT COUNT(*) FROM candidate WHERE position_id = $1`, positionID)
		if err != nil {
			return err
		}
		if n > 0 {
			return election.Integrity("delete position", "position has %d candidates", n)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM position WHERE id = $1`, positionID); err != nil {
			return fmt.Errorf("failed to delete position: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("position deleted", "position_id", positionID)
	return nil
}

// AddCandidate registers a student for a position.
func (s *Store) AddCandidate(ctx context.Context, claims auth.Claims, positionID string, req models.AddCandidateRequest) (models.Candidate, error) {
	if err := claims.Require(models.RoleAdmin); err != nil {
		return models.Candidate{}, err
	}
	if req.StudentID == "" {
		return models.Candidate{}, election.Validation("add candidate", "student_id is required")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var c models.Candidate
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		p, err := getPosition(ctx, tx, "add candidate", positionID)
		if err != nil {
			return err
		}
		if !p.IsActive {
			return election.Validation("add candidate", "position is inactive")
		}
		e, err := getElection(ctx, tx, "add candidate", p.ElectionID)
		if err != nil {
			return err
		}
		if err := election.CheckStructureEditable(e.Status); err != nil {
			return err
		}
		if err := lockElection(ctx, tx, "add candidate", e.ID, e.Status); err != nil {
			return err
		}

		st, err := getStudent(ctx, tx, "add candidate", req.StudentID)
		if err != nil {
			return err
		}
		if !st.IsActive {
			return election.Validation("add candidate", "student is inactive")
		}

		existing, err := countRows(ctx, tx, `SELECT COUNT(*) FROM candidate WHERE position_id = $1`, positionID)
		if err != nil {
			return err
		}
		if p.MaxCandidates > 0 && existing >= p.MaxCandidates {
			return election.Validation("add candidate", "position already has the maximum of %d candidates", p.MaxCandidates)
		}

		dup, err := countRows(ctx, tx, `
			SELECT COUNT(*) FROM candidate WHERE position_id = $1 AND student_id = $2
		`, positionID, req.StudentID)
		if err != nil {
			return err
		}
		if dup > 0 {
			return election.Validation("add candidate", "student is already a candidate for this position")
		}

		c = models.Candidate{
			ID:          uuid.NewString(),
			PositionID:  p.ID,
			ElectionID:  p.ElectionID,
			StudentID:   st.ID,
			DisplayName: st.FullName(),
			Slogan:      req.Slogan,
			PhotoURL:    req.PhotoURL,
			IsActive:    true,
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO candidate (id, position_id, election_id, student_id, slogan, photo_url, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, c.ID, c.PositionID, c.ElectionID, c.StudentID, c.Slogan, c.PhotoURL, c.IsActive)
		if isUniqueViolation(err) {
			return election.Validation("add candidate", "student is already a candidate for this position")
		}
		if err != nil {
			return fmt.Errorf("failed to insert candidate: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Candidate{}, err
	}

	slog.Info("candidate added", "position_id", positionID, "candidate_id", c.ID)
	return c, nil
}

func getPosition(ctx context.Context, q querier, op, id string) (models.Position, error) {
	var p models.Position
	err := q.QueryRowContext(ctx, `
		SELECT id, election_id, title, max_candidates, display_order, is_active
		FROM position WHERE id = $1
	`, id).Scan(&p.ID, &p.ElectionID, &p.Title, &p.MaxCandidates, &p.DisplayOrder, &p.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Position{}, election.NotFound(op, "position")
	}
	if err != nil {
		return models.Position{}, fmt.Errorf("failed to query position: %w", err)
	}
	return p, nil
}

// listPositions returns an election's positions in display order.
func listPositions(ctx context.Context, q querier, electionID string, activeOnly bool) ([]models.Position, error) {
	query := `
		SELECT id, election_id, title, max_candidates, display_order, is_active
		FROM position WHERE election_id = $1`
	args := []any{electionID}
	if activeOnly {
		query += ` AND is_active = $2`
		args = append(args, true)
	}
	query += ` ORDER BY display_order, title, id`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	positions := []models.Position{}
	for rows.Next() {
		var p models.Position
		if err := rows.Scan(&p.ID, &p.ElectionID, &p.Title, &p.MaxCandidates, &p.DisplayOrder, &p.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// listCandidates returns every candidate of an election with display names
// drawn from the student record.
func listCandidates(ctx context.Context, q querier, electionID string) ([]models.Candidate, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT c.id, c.position_id, c.election_id, c.student_id, s.first_name, s.last_name,
		       c.slogan, c.photo_url, c.is_active
		FROM candidate c
		JOIN student s ON s.id = c.student_id
		WHERE c.election_id = $1
		ORDER BY c.id
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []models.Candidate
	for rows.Next() {
		var c models.Candidate
		var st models.Student
		if err := rows.Scan(&c.ID, &c.PositionID, &c.ElectionID, &c.StudentID, &st.FirstName, &st.LastName,
			&c.Slogan, &c.PhotoURL, &c.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		c.DisplayName = st.FullName()
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func groupByPosition(candidates []models.Candidate) map[string][]models.Candidate {
	out := make(map[string][]models.Candidate)
	for _, c := range candidates {
		out[c.PositionID] = append(out[c.PositionID], c)
	}
	return out
}
