// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/campus-elections/auth"
	"github.com/danielhkuo/campus-elections/election"
	"github.com/danielhkuo/campus-elections/models"
)

// Results tallies every active position of an election from the vote rows
// committed so far, plus election-wide turnout. Officers and admins may read
// results at any time; everyone else only once they are published.
//
// Reads run outside any transaction and never write.
func (s *Store) Results(ctx context.Context, claims auth.Claims, electionID string) (models.ElectionResults, error) {
	if claims.Subject == "" {
		return models.ElectionResults{}, fmt.Errorf("%w: authentication required", auth.ErrForbidden)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	e, err := getElection(ctx, s.db, "results", electionID)
	if err != nil {
		return models.ElectionResults{}, err
	}
	if !e.ResultsPublished && !claims.Is(models.RoleAdmin, models.RoleOfficer) {
		return models.ElectionResults{}, fmt.Errorf("%w: results are hidden until published", auth.ErrForbidden)
	}

	positions, err := listPositions(ctx, s.db, electionID, true)
	if err != nil {
		return models.ElectionResults{}, err
	}
	candidates, err := listCandidates(ctx, s.db, electionID)
	if err != nil {
		return models.ElectionResults{}, err
	}
	votes, err := listVotes(ctx, s.db, electionID)
	if err != nil {
		return models.ElectionResults{}, err
	}

	byPosition := groupByPosition(candidates)
	out := models.ElectionResults{Election: e, Positions: make([]models.PositionResult, 0, len(positions))}
	for _, p := range positions {
		out.Positions = append(out.Positions, election.Tally(p, byPosition[p.ID], votes))
	}

	voters, err := countRows(ctx, s.db, `
		SELECT COUNT(DISTINCT student_id) FROM vote WHERE election_id = $1
	`, electionID)
	if err != nil {
		return models.ElectionResults{}, err
	}
	eligible, err := countRows(ctx, s.db, `
		SELECT COUNT(*) FROM student WHERE is_verified = $1 AND is_active = $2
	`, true, true)
	if err != nil {
		return models.ElectionResults{}, err
	}
	out.Turnout = election.ComputeTurnout(voters, eligible)

	return out, nil
}

func listVotes(ctx context.Context, q querier, electionID string) ([]models.Vote, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, candidate_id, position_id, election_id, student_id, cast_at
		FROM vote WHERE election_id = $1
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	var votes []models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.CandidateID, &v.PositionID, &v.ElectionID, &v.StudentID, &v.CastAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}
