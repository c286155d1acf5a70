// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollbox/db"
	"github.com/danielhkuo/pollbox/models"
)

// PollStore owns poll and item records.
type PollStore struct {
	db     *sql.DB
	driver string
}

func NewPollStore(conn *sql.DB, driver string) *PollStore {
	return &PollStore{db: conn, driver: driver}
}

func (s *PollStore) q(query string) string {
	return db.Rebind(s.driver, query)
}

// CreatePoll inserts a new poll owned by owner.
func (s *PollStore) CreatePoll(owner, title string) (models.Poll, error) {
	if title == "" {
		return models.Poll{}, ErrEmptyTitle
	}

	poll := models.Poll{
		ID:        uuid.NewString(),
		Title:     title,
		Owner:     owner,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(s.q(`
		INSERT INTO poll (id, title, owner, created_at)
		VALUES (?, ?, ?, ?)
	`), poll.ID, poll.Title, poll.Owner, poll.CreatedAt)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to insert poll: %w", err)
	}

	return poll, nil
}

// GetPoll returns the poll with the given ID, or ErrNotFound.
func (s *PollStore) GetPoll(pollID string) (models.Poll, error) {
	var poll models.Poll
	err := s.db.QueryRow(s.q(`
		SELECT id, title, owner, created_at FROM poll WHERE id = ?
	`), pollID).Scan(&poll.ID, &poll.Title, &poll.Owner, &poll.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}

	return poll, nil
}

// ListPolls returns every poll, oldest first.
func (s *PollStore) ListPolls() ([]models.Poll, error) {
	return s.listPolls(s.q(`
		SELECT id, title, owner, created_at FROM poll ORDER BY created_at, id
	`))
}

// ListPollsByOwner returns the polls created by owner, oldest first.
func (s *PollStore) ListPollsByOwner(owner string) ([]models.Poll, error) {
	return s.listPolls(s.q(`
		SELECT id, title, owner, created_at FROM poll WHERE owner = ? ORDER BY created_at, id
	`), owner)
}

func (s *PollStore) listPolls(query string, args ...interface{}) ([]models.Poll, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		var p models.Poll
		if err := rows.Scan(&p.ID, &p.Title, &p.Owner, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read polls: %w", err)
	}

	return polls, nil
}

// RenamePoll sets a new title on the poll. Only the owner may rename;
// anyone else gets ErrNotOwner. The read-check-write runs in one
// transaction so concurrent renames cannot interleave the check.
func (s *PollStore) RenamePoll(pollID, newTitle, requester string) (models.Poll, error) {
	if newTitle == "" {
		return models.Poll{}, ErrEmptyTitle
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var poll models.Poll
	err = tx.QueryRow(s.q(`
		SELECT id, title, owner, created_at FROM poll WHERE id = ?
	`), pollID).Scan(&poll.ID, &poll.Title, &poll.Owner, &poll.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}

	if poll.Owner != requester {
		return models.Poll{}, ErrNotOwner
	}

	if _, err := tx.Exec(s.q(`UPDATE poll SET title = ? WHERE id = ?`), newTitle, pollID); err != nil {
		return models.Poll{}, fmt.Errorf("failed to rename poll: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Poll{}, fmt.Errorf("failed to commit rename: %w", err)
	}

	poll.Title = newTitle
	return poll, nil
}

// AddItem appends a new item to the poll with a zero vote count. Only
// the poll owner may add items. The item records the poll owner for
// display, as the original data model did.
func (s *PollStore) AddItem(pollID, title, requester string) (models.Item, error) {
	if title == "" {
		return models.Item{}, ErrEmptyTitle
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var owner string
	err = tx.QueryRow(s.q(`SELECT owner FROM poll WHERE id = ?`), pollID).Scan(&owner)
	if err == sql.ErrNoRows {
		return models.Item{}, ErrNotFound
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to query poll: %w", err)
	}

	if owner != requester {
		return models.Item{}, ErrNotOwner
	}

	item := models.Item{
		ID:        uuid.NewString(),
		PollID:    pollID,
		Title:     title,
		Owner:     owner,
		VoteCount: 0,
		CreatedAt: time.Now().UTC(),
	}

	_, err = tx.Exec(s.q(`
		INSERT INTO item (id, poll_id, title, owner, vote_count, created_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`), item.ID, item.PollID, item.Title, item.Owner, item.CreatedAt)
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to insert item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Item{}, fmt.Errorf("failed to commit item: %w", err)
	}

	return item, nil
}

// RenameItem sets a new title on an item. Authorization is scoped to
// the owner of the item's parent poll.
func (s *PollStore) RenameItem(itemID, newTitle, requester string) (models.Item, error) {
	if newTitle == "" {
		return models.Item{}, ErrEmptyTitle
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var item models.Item
	var pollOwner string
	err = tx.QueryRow(s.q(`
		SELECT i.id, i.poll_id, i.title, i.owner, i.vote_count, i.created_at, p.owner
		FROM item i
		JOIN poll p ON p.id = i.poll_id
		WHERE i.id = ?
	`), itemID).Scan(&item.ID, &item.PollID, &item.Title, &item.Owner, &item.VoteCount, &item.CreatedAt, &pollOwner)

	if err == sql.ErrNoRows {
		return models.Item{}, ErrNotFound
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to query item: %w", err)
	}

	if pollOwner != requester {
		return models.Item{}, ErrNotOwner
	}

	if _, err := tx.Exec(s.q(`UPDATE item SET title = ? WHERE id = ?`), newTitle, itemID); err != nil {
		return models.Item{}, fmt.Errorf("failed to rename item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Item{}, fmt.Errorf("failed to commit rename: %w", err)
	}

	item.Title = newTitle
	return item, nil
}

// ListItems returns the poll's items in insertion order.
func (s *PollStore) ListItems(pollID string) ([]models.Item, error) {
	rows, err := s.db.Query(s.q(`
		SELECT id, poll_id, title, owner, vote_count, created_at
		FROM item
		WHERE poll_id = ?
		ORDER BY created_at, id
	`), pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.PollID, &it.Title, &it.Owner, &it.VoteCount, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}

	return items, nil
}
