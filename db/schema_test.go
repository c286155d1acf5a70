// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func TestCreateSchema_Idempotent(t *testing.T) {
	conn, err := Open(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("First CreateSchema failed: %v", err)
	}
	if err := CreateSchema(conn); err != nil {
		t.Fatalf("Second CreateSchema failed: %v", err)
	}

	// The tables exist and accept rows
	_, err = conn.Exec(`
		INSERT INTO poll (id, title, owner, created_at) VALUES (?, ?, ?, ?)
	`, "p1", "Test", "alice", time.Now().UTC())
	if err != nil {
		t.Fatalf("Insert after CreateSchema failed: %v", err)
	}
}

func TestRebind(t *testing.T) {
	tests := []struct {
		name     string
		driver   string
		query    string
		expected string
	}{
		{
			name:     "sqlite unchanged",
			driver:   DriverSQLite,
			query:    "SELECT * FROM poll WHERE id = ? AND owner = ?",
			expected: "SELECT * FROM poll WHERE id = ? AND owner = ?",
		},
		{
			name:     "postgres numbered",
			driver:   DriverPostgres,
			query:    "SELECT * FROM poll WHERE id = ? AND owner = ?",
			expected: "SELECT * FROM poll WHERE id = $1 AND owner = $2",
		},
		{
			name:     "postgres no placeholders",
			driver:   DriverPostgres,
			query:    "SELECT COUNT(*) FROM poll",
			expected: "SELECT COUNT(*) FROM poll",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Rebind(tc.driver, tc.query); got != tc.expected {
				t.Errorf("Rebind(%s) = %q, want %q", tc.driver, got, tc.expected)
			}
		})
	}
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	conn, err := Open(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}

	now := time.Now().UTC()
	mustExec := func(query string, args ...interface{}) {
		t.Helper()
		if _, err := conn.Exec(query, args...); err != nil {
			t.Fatalf("Exec failed: %v", err)
		}
	}
	mustExec(`INSERT INTO poll (id, title, owner, created_at) VALUES (?, ?, ?, ?)`, "p1", "Test", "alice", now)
	mustExec(`INSERT INTO item (id, poll_id, title, owner, vote_count, created_at) VALUES (?, ?, ?, ?, 0, ?)`, "i1", "p1", "A", "alice", now)
	mustExec(`INSERT INTO vote (poll_id, item_id, voter, created_at) VALUES (?, ?, ?, ?)`, "p1", "i1", "bob", now)

	// Second vote by the same voter in the same poll trips the PK
	_, err = conn.Exec(`INSERT INTO vote (poll_id, item_id, voter, created_at) VALUES (?, ?, ?, ?)`, "p1", "i1", "bob", now)
	if err == nil {
		t.Fatal("Expected a constraint violation")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("Expected IsUniqueViolation to recognize %v", err)
	}

	if IsUniqueViolation(errors.New("something else")) {
		t.Error("IsUniqueViolation must not match arbitrary errors")
	}
	if IsUniqueViolation(nil) {
		t.Error("IsUniqueViolation must not match nil")
	}
}
