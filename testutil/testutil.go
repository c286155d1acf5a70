// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/pollbox/auth"
	"github.com/danielhkuo/pollbox/cliparse"
	"github.com/danielhkuo/pollbox/db"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. Every test gets its own database; closing the handle drops it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3000,
		DatabaseURL:   ":memory:",
		DatabaseType:  db.DriverSQLite,
		SessionSecret: "test-session-secret",
		IdentitySalt:  "test-identity-salt",
	}
}

// CreateTestAccount registers an account directly in the database and
// returns the username.
func CreateTestAccount(t *testing.T, conn *sql.DB, username, password string) string {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO account (username, password_hash, created_at)
		VALUES (?, ?, ?)
	`, username, hash, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return username
}

// CreateTestSession issues a session token for the account and returns it.
func CreateTestSession(t *testing.T, conn *sql.DB, username string) string {
	t.Helper()

	token, err := auth.GenerateSessionToken()
	if err != nil {
		t.Fatalf("Failed to generate session token: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO session (token, username, created_at)
		VALUES (?, ?, ?)
	`, token, username, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return token
}

// CreateTestPoll inserts a poll and returns its ID.
func CreateTestPoll(t *testing.T, conn *sql.DB, owner, title string) string {
	t.Helper()

	pollID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO poll (id, title, owner, created_at)
		VALUES (?, ?, ?, ?)
	`, pollID, title, owner, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID
}

// AddTestItem inserts an item with a zero vote count and returns its ID.
func AddTestItem(t *testing.T, conn *sql.DB, pollID, owner, title string) string {
	t.Helper()

	itemID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO item (id, poll_id, title, owner, vote_count, created_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`, itemID, pollID, title, owner, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test item: %v", err)
	}

	return itemID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// WithSession attaches a session cookie to the request.
func WithSession(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: "pollbox_session", Value: token})
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
