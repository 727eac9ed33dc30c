// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/danielhkuo/campus-elections/auth"
	"github.com/danielhkuo/campus-elections/election"
	"github.com/danielhkuo/campus-elections/models"
)

// RecordBallot writes one vote per selected position for the calling
// student. It enforces the rules the casting flow must respect: the
// election is active, the student is verified, and every candidate stands
// for the named position. Positions left out are abstentions.
func (s *Store) RecordBallot(ctx context.Context, claims auth.Claims, electionID string, selections map[string]string) ([]string, error) {
	if err := claims.Require(models.RoleStudent); err != nil {
		return nil, err
	}
	if len(selections) == 0 {
		return nil, election.Validation("record ballot", "selections cannot be empty")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	// Deterministic insert order
	positionIDs := make([]string, 0, len(selections))
	for pid := range selections {
		positionIDs = append(positionIDs, pid)
	}
	sort.Strings(positionIDs)

	var voteIDs []string
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		st, err := getStudent(ctx, tx, "record ballot", claims.Subject)
		if err != nil {
			return err
		}
		if !st.IsVerified || !st.IsActive {
			return election.Validation("record ballot", "student is not eligible to vote")
		}

		e, err := getElection(ctx, tx, "record ballot", electionID)
		if err != nil {
			return err
		}
		if e.Status != models.StatusActive || !e.IsActive {
			return election.State("record ballot", "election is not open for voting")
		}
		// Holds the election row so a concurrent cancel or complete waits
		if err := lockElection(ctx, tx, "record ballot", electionID, models.StatusActive); err != nil {
			return err
		}

		now := s.clock()
		for _, pid := range positionIDs {
			cid := selections[pid]
			if err := checkSelection(ctx, tx, electionID, pid, cid); err != nil {
				return err
			}

			dup, err := countRows(ctx, tx, `
				SELECT COUNT(*) FROM vote WHERE student_id = $1 AND position_id = $2
			`, st.ID, pid)
			if err != nil {
				return err
			}
			if dup > 0 {
				return election.Validation("record ballot", "a vote for position %s was already recorded", pid)
			}

			voteID := uuid.NewString()
			_, err = tx.ExecContext(ctx, `
				INSERT INTO vote (id, candidate_id, position_id, election_id, student_id, cast_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, voteID, cid, pid, electionID, st.ID, now)
			if isUniqueViolation(err) {
				return election.Validation("record ballot", "a vote for position %s was already recorded", pid)
			}
			if err != nil {
				return fmt.Errorf("failed to insert vote: %w", err)
			}
			voteIDs = append(voteIDs, voteID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("ballot recorded", "election_id", electionID, "votes", len(voteIDs))
	return voteIDs, nil
}

// checkSelection verifies that candidateID is an active candidate for an
// active position of the election.
func checkSelection(ctx context.Context, tx *sql.Tx, electionID, positionID, candidateID string) error {
	var id string
	err := tx.QueryRowContext(ctx, `
		SELECT c.id
		FROM candidate c
		JOIN position p ON p.id = c.position_id
		WHERE c.id = $1 AND c.position_id = $2 AND c.election_id = $3
		  AND c.is_active = $4 AND p.is_active = $5
	`, candidateID, positionID, electionID, true, true).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return election.Validation("record ballot", "candidate %q does not stand for position %q", candidateID, positionID)
	}
	if err != nil {
		return fmt.Errorf("failed to query candidate: %w", err)
	}
	return nil
}
