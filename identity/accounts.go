// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/pollbox/auth"
	"github.com/danielhkuo/pollbox/db"
	"github.com/danielhkuo/pollbox/models"
)

var (
	// ErrUsernameTaken means the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidUsername means the username is empty or contains
	// characters outside [a-zA-Z0-9].
	ErrInvalidUsername = errors.New("username must be alphanumeric")

	// ErrEmptyPassword rejects blank passwords at signup.
	ErrEmptyPassword = errors.New("password is required")

	// ErrNoSession means the session token is unknown or was logged out.
	ErrNoSession = errors.New("no such session")
)

// Accounts is the account and session store.
type Accounts struct {
	db     *sql.DB
	driver string
}

func NewAccounts(conn *sql.DB, driver string) *Accounts {
	return &Accounts{db: conn, driver: driver}
}

func (a *Accounts) q(query string) string {
	return db.Rebind(a.driver, query)
}

// Signup registers a new account. Usernames are alphanumeric only,
// matching the original signup validation.
func (a *Accounts) Signup(username, password string) (models.Account, error) {
	if !isAlphanumeric(username) {
		return models.Account{}, ErrInvalidUsername
	}
	if password == "" {
		return models.Account{}, ErrEmptyPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.Account{}, err
	}

	acct := models.Account{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = a.db.Exec(a.q(`
		INSERT INTO account (username, password_hash, created_at)
		VALUES (?, ?, ?)
	`), acct.Username, acct.PasswordHash, acct.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return models.Account{}, ErrUsernameTaken
		}
		return models.Account{}, fmt.Errorf("failed to insert account: %w", err)
	}

	return acct, nil
}

// Login checks credentials and returns the account. Unknown usernames
// and wrong passwords both come back as auth.ErrBadCredentials.
func (a *Accounts) Login(username, password string) (models.Account, error) {
	var acct models.Account
	err := a.db.QueryRow(a.q(`
		SELECT username, password_hash, created_at FROM account WHERE username = ?
	`), username).Scan(&acct.Username, &acct.PasswordHash, &acct.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Account{}, auth.ErrBadCredentials
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to query account: %w", err)
	}

	if err := auth.ComparePassword(password, acct.PasswordHash); err != nil {
		return models.Account{}, err
	}

	return acct, nil
}

// GetAccount returns the account for a username. The bool reports
// whether the account exists.
func (a *Accounts) GetAccount(username string) (models.Account, bool, error) {
	var acct models.Account
	err := a.db.QueryRow(a.q(`
		SELECT username, password_hash, created_at FROM account WHERE username = ?
	`), username).Scan(&acct.Username, &acct.PasswordHash, &acct.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Account{}, false, nil
	}
	if err != nil {
		return models.Account{}, false, fmt.Errorf("failed to query account: %w", err)
	}

	return acct, true, nil
}

// AccountExists reports whether a username is registered.
func (a *Accounts) AccountExists(username string) (bool, error) {
	var exists bool
	err := a.db.QueryRow(a.q(`
		SELECT EXISTS(SELECT 1 FROM account WHERE username = ?)
	`), username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query account: %w", err)
	}
	return exists, nil
}

// CreateSession issues a new session token for the account.
func (a *Accounts) CreateSession(username string) (string, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return "", err
	}

	_, err = a.db.Exec(a.q(`
		INSERT INTO session (token, username, created_at)
		VALUES (?, ?, ?)
	`), token, username, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert session: %w", err)
	}

	return token, nil
}

// GetSession resolves a session token to its account handle.
func (a *Accounts) GetSession(token string) (string, error) {
	var username string
	err := a.db.QueryRow(a.q(`
		SELECT username FROM session WHERE token = ?
	`), token).Scan(&username)

	if err == sql.ErrNoRows {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("failed to query session: %w", err)
	}

	return username, nil
}

// DeleteSession removes a session (logout). Deleting an unknown token
// is not an error.
func (a *Accounts) DeleteSession(token string) error {
	_, err := a.db.Exec(a.q(`DELETE FROM session WHERE token = ?`), token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		switch {
		case ch >= 'a' && ch <= 'z':
		case ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9':
		default:
			return false
		}
	}
	return true
}
