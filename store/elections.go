// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/campus-elections/auth"
	"github.com/danielhkuo/campus-elections/election"
	"github.com/danielhkuo/campus-elections/models"
)

// CreateElectionType registers reference data for the scheduling guard.
func (s *Store) CreateElectionType(ctx context.Context, claims auth.Claims, req models.CreateElectionTypeRequest) (models.ElectionType, error) {
	if err := claims.Require(models.RoleAdmin); err != nil {
		return models.ElectionType{}, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.ElectionType{}, election.Validation("create election type", "name is required")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	et := models.ElectionType{ID: uuid.NewString(), Name: name, IsActive: true}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO election_type (id, name, is_active, lock_seq)
		VALUES ($1, $2, $3, 0)
	`, et.ID, et.Name, et.IsActive)
	if isUniqueViolation(err) {
		return models.ElectionType{}, election.Validation("create election type", "election type %q already exists", name)
	}
	if err != nil {
		return models.ElectionType{}, fmt.Errorf("failed to insert election type: %w", err)
	}
	return et, nil
}

// CreateElection inserts a draft election after the scheduling guard passes.
// The guard and the insert share one transaction, serialized per type.
func (s *Store) CreateElection(ctx context.Context, claims auth.Claims, req models.CreateElectionRequest) (models.Election, error) {
	if err := claims.Require(models.RoleAdmin); err != nil {
		return models.Election{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Election{}, election.Validation("create election", "name is required")
	}
	if req.ElectionTypeID == "" {
		return models.Election{}, election.Validation("create election", "election_type_id is required")
	}

	now := s.clock()
	start, end := req.StartDate.UTC(), req.EndDate.UTC()
	if err := election.ValidateWindow(start, end, now, true); err != nil {
		return models.Election{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	e := models.Election{
		ID:             uuid.NewString(),
		ElectionTypeID: req.ElectionTypeID,
		Name:           name,
		Description:    req.Description,
		StartDate:      start,
		EndDate:        end,
		Status:         models.StatusDraft,
		IsActive:       true,
		CreatedBy:      claims.Subject,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.guardSchedule(ctx, tx, "create election", e.ElectionTypeID, start, end, ""); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO election (id, election_type_id, name, description, start_date, end_date,
			                      status, is_active, results_published, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, e.ID, e.ElectionTypeID, e.Name, e.Description, e.StartDate, e.EndDate,
			string(e.Status), e.IsActive, false, e.CreatedBy, e.CreatedAt, e.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert election: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Election{}, err
	}

	slog.Info("election created", "election_id", e.ID, "type", e.ElectionTypeID, "created_by", claims.Subject)
	return e, nil
}

// guardSchedule locks the election type and checks the window against every
// draft or active election of that type.
func (s *Store) guardSchedule(ctx context.Context, tx *sql.Tx, op, typeID string, start, end time.Time, excludeID string) error {
	if err := lockElectionType(ctx, tx, op, typeID); err != nil {
		return err
	}

	rows, err := tx.QueryContext(ctx, `SELECT `+electionColumns+`
		FROM election
		WHERE election_type_id = $1 AND status IN ($2, $3)
	`, typeID, string(models.StatusDraft), string(models.StatusActive))
	if err != nil {
		return fmt.Errorf("failed to query elections: %w", err)
	}
	defer rows.Close()

	var existing []models.Election
	for rows.Next() {
		e, err := scanElection(rows)
		if err != nil {
			return fmt.Errorf("failed to scan election: %w", err)
		}
		existing = append(existing, e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to query elections: %w", err)
	}

	if c := election.CheckConflict(existing, typeID, start, end, excludeID); c != nil {
		return election.ConflictError(c)
	}
	return nil
}

// GetElection returns an election with its positions and candidate slates.
func (s *Store) GetElection(ctx context.Context, claims auth.Claims, id string) (models.ElectionWithPositions, error) {
	if claims.Subject == "" {
		return models.ElectionWithPositions{}, fmt.Errorf("%w: authentication required", auth.ErrForbidden)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	e, err := getElection(ctx, s.db, "get election", id)
	if err != nil {
		return models.ElectionWithPositions{}, err
	}

	positions, err := listPositions(ctx, s.db, id, false)
	if err != nil {
		return models.ElectionWithPositions{}, err
	}
	candidates, err := listCandidates(ctx, s.db, id)
	if err != nil {
		return models.ElectionWithPositions{}, err
	}

	byPosition := groupByPosition(candidates)
	out := models.ElectionWithPositions{Election: e, Positions: []models.PositionWithSlate{}}
	for _, p := range positions {
		slate := byPosition[p.ID]
		if slate == nil {
			slate = []models.Candidate{}
		}
		out.Positions = append(out.Positions, models.PositionWithSlate{Position: p, Candidates: slate})
	}
	return out, nil
}

// UpdateElection applies a partial update under the field-mutability rules.
// Date changes re-run the scheduling guard, excluding the election itself.
func (s *Store) UpdateElection(ctx context.Context, claims auth.Claims, id string, req models.UpdateElectionRequest) (models.Election, error) {
	if err := claims.Require(models.RoleAdmin); err != nil {
		return models.Election{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u := election.Update{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	var next models.Election
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		cur, err := getElection(ctx, tx, "update election", id)
		if err != nil {
			return err
		}
		if err := election.CheckUpdate(cur, u); err != nil {
			return err
		}

		next = u.Apply(cur)
		next.UpdatedAt = s.clock()

		if u.ChangesDates() {
			startMoved := !next.StartDate.Equal(cur.StartDate)
			if err := election.ValidateWindow(next.StartDate, next.EndDate, s.clock(), startMoved); err != nil {
				return err
			}
			if err := s.guardSchedule(ctx, tx, "update election", cur.ElectionTypeID, next.StartDate, next.EndDate, cur.ID); err != nil {
				return err
			}
		}

		// Conditional on the status the mutability check was made against
		res, err := tx.ExecContext(ctx, `
			UPDATE election
			SET name = $1, description = $2, start_date = $3, end_date = $4, updated_at = $5
			WHERE id = $6 AND status = $7
		`, next.Name, next.Description, next.StartDate, next.EndDate, next.UpdatedAt, cur.ID, string(cur.Status))
		if err != nil {
			return fmt.Errorf("failed to update election: %w", err)
		}
		return requireRow(res, election.State("update election", "election was modified concurrently and is no longer %s", cur.Status))
	})
	if err != nil {
		return models.Election{}, err
	}

	slog.Info("election updated", "election_id", id, "dates_changed", u.ChangesDates())
	return next, nil
}

// TransitionElection applies a lifecycle action with compare-and-swap
// semantics on the current status. Deactivated elections never transition.
func (s *Store) TransitionElection(ctx context.Context, claims auth.Claims, id string, action election.Action) (models.Election, error) {
	if err := claims.Require(models.RoleAdmin, models.RoleOfficer); err != nil {
		return models.Election{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var next models.Election
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		cur, err := getElection(ctx, tx, "transition", id)
		if err != nil {
			return err
		}
		if !cur.IsActive {
			return election.State("transition", "election is deactivated")
		}
		// Lock before counting so votes cannot land between check and write
		if !cur.Status.Terminal() {
			if err := lockElection(ctx, tx, "transition", id, cur.Status); err != nil {
				return err
			}
		}

		var facts election.Facts
		switch action {
		case election.ActionActivate:
			if facts.ReadyPositions, err = countRows(ctx, tx, `
				SELECT COUNT(DISTINCT p.id)
				FROM position p
				JOIN candidate c ON c.position_id = p.id
				WHERE p.election_id = $1 AND p.is_active = $2 AND c.is_active = $3
			`, id, true, true); err != nil {
				return err
			}
		case election.ActionCancel:
			if facts.VoteCount, err = voteCount(ctx, tx, id); err != nil {
				return err
			}
		}

		status, err := election.Transition(cur.Status, action, facts)
		if err != nil {
			return err
		}

		next = cur
		next.Status = status
		next.UpdatedAt = s.clock()
		res, err := tx.ExecContext(ctx, `
			UPDATE election SET status = $1, updated_at = $2
			WHERE id = $3 AND status = $4
		`, string(status), next.UpdatedAt, id, string(cur.Status))
		if err != nil {
			return fmt.Errorf("failed to update election status: %w", err)
		}
		return requireRow(res, election.State("transition", "election was modified concurrently and is no longer %s", cur.Status))
	})
	if err != nil {
		return models.Election{}, err
	}

	slog.Info("election transitioned", "election_id", id, "action", action, "status", next.Status, "by", claims.Subject)
	return next, nil
}

// DeleteElection hard-deletes an election and its structure. It is refused
// once any vote references the election.
func (s *Store) DeleteElection(ctx context.Context, claims auth.Claims, id string) error {
	if err := claims.Require(models.RoleAdmin); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		cur, err := getElection(ctx, tx, "delete election", id)
		if err != nil {
			return err
		}
		if err := lockElection(ctx, tx, "delete election", id, cur.Status); err != nil {
			return err
		}

		votes, err := voteCount(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := election.CheckDelete(votes); err != nil {
			return err
		}

		for _, stmt := range []string{
			`DELETE FROM candidate WHERE election_id = $1`,
			`DELETE FROM position WHERE election_id = $1`,
			`DELETE FROM election WHERE id = $1`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("failed to delete election: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("election deleted", "election_id", id, "by", claims.Subject)
	return nil
}

// DeactivateElection soft-deletes an election and its candidates. Vote rows
// are never touched. Returns the number of candidates deactivated.
func (s *Store) DeactivateElection(ctx context.Context, claims auth.Claims, id string) (int, error) {
	if err := claims.Require(models.RoleAdmin); err != nil {
		return 0, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var deactivated int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := getElection(ctx, tx, "deactivate election", id); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE election SET is_active = $1, updated_at = $2 WHERE id = $3
		`, false, s.clock(), id); err != nil {
			return fmt.Errorf("failed to deactivate election: %w", err)
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE candidate SET is_active = $1 WHERE election_id = $2 AND is_active = $3
		`, false, id, true)
		if err != nil {
			return fmt.Errorf("failed to deactivate candidates: %w", err)
		}
		deactivated, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}

	slog.Info("election deactivated", "election_id", id, "candidates", deactivated)
	return int(deactivated), nil
}
