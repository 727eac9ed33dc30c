// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateSchema(t *testing.T) {
	conn, err := Open("sqlite", "file:"+filepath.Join(t.TempDir(), "schema.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	// Running twice must succeed (IF NOT EXISTS)
	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn); err != nil {
			t.Fatalf("CreateSchema #%d failed: %v", i+1, err)
		}
	}

	for _, table := range []string{"election_type", "student", "election", "position", "candidate", "vote"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not created: %v", table, err)
		}
	}
}

func TestSplitStatements(t *testing.T) {
	script := `
-- header; with a semicolon
CREATE TABLE a (id TEXT);
  -- indented comment; also ignored
CREATE INDEX idx_a ON a(id)
`
	stmts := splitStatements(script)
	if len(stmts) != 2 {
		t.Fatalf("Expected 2 statements, got %d: %q", len(stmts), stmts)
	}
	for _, stmt := range stmts {
		if strings.Contains(stmt, "--") || strings.Contains(stmt, "semicolon") {
			t.Errorf("Comment leaked into statement: %q", stmt)
		}
	}
	if stmts[0] != "CREATE TABLE a (id TEXT)" {
		t.Errorf("Unexpected first statement: %q", stmts[0])
	}
}

func TestOpenUnsupportedType(t *testing.T) {
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Error("Expected unsupported database type to fail")
	}
}
