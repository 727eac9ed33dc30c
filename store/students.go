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

// CreateStudent registers an unverified student.
func (s *Store) CreateStudent(ctx context.Context, claims auth.Claims, req models.CreateStudentRequest) (models.Student, error) {
	if err := claims.Require(models.RoleAdmin); err != nil {
		return models.Student{}, err
	}

	st := models.Student{
		ID:            uuid.NewString(),
		StudentNumber: strings.TrimSpace(req.StudentNumber),
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		IsActive:      true,
	}
	if st.StudentNumber == "" {
		return models.Student{}, election.Validation("create student", "student_number is required")
	}
	if st.FirstName == "" {
		return models.Student{}, election.Validation("create student", "first_name is required")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO student (id, student_number, first_name, last_name, is_verified, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, st.ID, st.StudentNumber, st.FirstName, st.LastName, st.IsVerified, st.IsActive, s.clock())
	if isUniqueViolation(err) {
		return models.Student{}, election.Validation("create student", "student number %q is already registered", st.StudentNumber)
	}
	if err != nil {
		return models.Student{}, fmt.Errorf("failed to insert student: %w", err)
	}

	slog.Info("student registered", "student_id", st.ID)
	return st, nil
}

// VerifyStudent marks a student eligible to vote. Verifying twice is a no-op.
func (s *Store) VerifyStudent(ctx context.Context, claims auth.Claims, studentID string) (models.Student, error) {
	if err := claims.Require(models.RoleAdmin, models.RoleStaff); err != nil {
		return models.Student{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var st models.Student
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if st, err = getStudent(ctx, tx, "verify student", studentID); err != nil {
			return err
		}
		if st.IsVerified {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE student SET is_verified = $1, verified_by = $2, verified_at = $3
			WHERE id = $4
		`, true, claims.Subject, s.clock(), studentID); err != nil {
			return fmt.Errorf("failed to verify student: %w", err)
		}
		st.IsVerified = true
		return nil
	})
	if err != nil {
		return models.Student{}, err
	}

	slog.Info("student verified", "student_id", studentID, "by", claims.Subject)
	return st, nil
}

func getStudent(ctx context.Context, q querier, op, id string) (models.Student, error) {
	var st models.Student
	err := q.QueryRowContext(ctx, `
		SELECT id, student_number, first_name, last_name, is_verified, is_active
		FROM student WHERE id = $1
	`, id).Scan(&st.ID, &st.StudentNumber, &st.FirstName, &st.LastName, &st.IsVerified, &st.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Student{}, election.NotFound(op, "student")
	}
	if err != nil {
		return models.Student{}, fmt.Errorf("failed to query student: %w", err)
	}
	return st, nil
}
