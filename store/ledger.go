// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/pollbox/db"
	"github.com/danielhkuo/pollbox/models"
)

// VoteLedger owns vote records and the item counters they feed.
type VoteLedger struct {
	db     *sql.DB
	driver string
}

func NewVoteLedger(conn *sql.DB, driver string) *VoteLedger {
	return &VoteLedger{db: conn, driver: driver}
}

func (l *VoteLedger) q(query string) string {
	return db.Rebind(l.driver, query)
}

// CastVote records one vote by voter for the given item. A voter gets
// at most one vote per poll: the first cast is accepted and increments
// the item's counter, any later cast for the same poll is a no-op that
// returns accepted=false with the item's current state.
//
// The vote table's PRIMARY KEY (poll_id, voter) makes the
// check-and-insert atomic: of two concurrent casts from one identity,
// exactly one insert succeeds and exactly one counter increment runs.
func (l *VoteLedger) CastVote(itemID, voter string) (bool, models.Item, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return false, models.Item{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var item models.Item
	err = tx.QueryRow(l.q(`
		SELECT id, poll_id, title, owner, vote_count, created_at
		FROM item
		WHERE id = ?
	`), itemID).Scan(&item.ID, &item.PollID, &item.Title, &item.Owner, &item.VoteCount, &item.CreatedAt)

	if err == sql.ErrNoRows {
		return false, models.Item{}, ErrNotFound
	}
	if err != nil {
		return false, models.Item{}, fmt.Errorf("failed to query item: %w", err)
	}

	_, err = tx.Exec(l.q(`
		INSERT INTO vote (poll_id, item_id, voter, created_at)
		VALUES (?, ?, ?, ?)
	`), item.PollID, item.ID, voter, time.Now().UTC())

	if err != nil {
		if db.IsUniqueViolation(err) {
			// Already voted in this poll. Postgres aborts the
			// transaction on the violation, so re-read the item
			// on a fresh connection for the current count.
			tx.Rollback()
			current, rerr := l.getItem(itemID)
			if rerr != nil {
				return false, models.Item{}, rerr
			}
			return false, current, nil
		}
		return false, models.Item{}, fmt.Errorf("failed to insert vote: %w", err)
	}

	_, err = tx.Exec(l.q(`UPDATE item SET vote_count = vote_count + 1 WHERE id = ?`), item.ID)
	if err != nil {
		return false, models.Item{}, fmt.Errorf("failed to increment vote count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, models.Item{}, fmt.Errorf("failed to commit vote: %w", err)
	}

	item.VoteCount++
	return true, item, nil
}

// CountVotes returns the number of vote records in a poll. The sum of
// the poll's item counters must always equal this value.
func (l *VoteLedger) CountVotes(pollID string) (int, error) {
	var n int
	err := l.db.QueryRow(l.q(`SELECT COUNT(*) FROM vote WHERE poll_id = ?`), pollID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return n, nil
}

// HasVoted reports whether voter has already cast a vote in the poll.
func (l *VoteLedger) HasVoted(pollID, voter string) (bool, error) {
	var exists bool
	err := l.db.QueryRow(l.q(`
		SELECT EXISTS(SELECT 1 FROM vote WHERE poll_id = ? AND voter = ?)
	`), pollID, voter).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query vote: %w", err)
	}
	return exists, nil
}

func (l *VoteLedger) getItem(itemID string) (models.Item, error) {
	var item models.Item
	err := l.db.QueryRow(l.q(`
		SELECT id, poll_id, title, owner, vote_count, created_at
		FROM item
		WHERE id = ?
	`), itemID).Scan(&item.ID, &item.PollID, &item.Title, &item.Owner, &item.VoteCount, &item.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Item{}, ErrNotFound
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to query item: %w", err)
	}

	return item, nil
}
