// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/campus-elections/auth"
	"github.com/danielhkuo/campus-elections/election"
	"github.com/danielhkuo/campus-elections/models"
)

// Publish makes an election's results visible to students. Publishing an
// already-published election succeeds without restamping. Results are not
// frozen; every read re-tallies the current vote rows.
func (s *Store) Publish(ctx context.Context, claims auth.Claims, electionID string) (models.Election, error) {
	if err := claims.Require(models.RoleAdmin, models.RoleOfficer); err != nil {
		return models.Election{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var e models.Election
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if e, err = getElection(ctx, tx, "publish", electionID); err != nil {
			return err
		}
		if !e.IsActive {
			return election.State("publish", "election is deactivated")
		}
		if err := election.CheckPublishable(e.Status); err != nil {
			return err
		}
		if e.ResultsPublished {
			return nil
		}

		now := s.clock()
		res, err := tx.ExecContext(ctx, `
			UPDATE election SET results_published = $1, results_published_at = $2, updated_at = $3
			WHERE id = $4 AND results_published = $5 AND status = $6
		`, true, now, now, electionID, false, string(e.Status))
		if err != nil {
			return fmt.Errorf("failed to publish results: %w", err)
		}
		if err := requireRow(res, election.State("publish", "election was modified concurrently")); err != nil {
			return err
		}

		e.ResultsPublished = true
		e.ResultsPublishedAt = &now
		e.UpdatedAt = now
		return nil
	})
	if err != nil {
		return models.Election{}, err
	}

	slog.Info("results published", "election_id", electionID, "by", claims.Subject)
	return e, nil
}

// Unpublish hides results again and clears the publication timestamp.
// Unpublishing an unpublished election is a no-op.
func (s *Store) Unpublish(ctx context.Context, claims auth.Claims, electionID string) (models.Election, error) {
	if err := claims.Require(models.RoleAdmin, models.RoleOfficer); err != nil {
		return models.Election{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var e models.Election
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if e, err = getElection(ctx, tx, "unpublish", electionID); err != nil {
			return err
		}
		if !e.ResultsPublished {
			return nil
		}

		now := s.clock()
		if _, err := tx.ExecContext(ctx, `
			UPDATE election SET results_published = $1, results_published_at = NULL, updated_at = $2
			WHERE id = $3
		`, false, now, electionID); err != nil {
			return fmt.Errorf("failed to unpublish results: %w", err)
		}

		e.ResultsPublished = false
		e.ResultsPublishedAt = nil
		e.UpdatedAt = now
		return nil
	})
	if err != nil {
		return models.Election{}, err
	}

	slog.Info("results unpublished", "election_id", electionID, "by", claims.Subject)
	return e, nil
}
