// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"errors"

	"github.com/danielhkuo/pollbox/models"
	"github.com/danielhkuo/pollbox/store"
)

// ErrAnonymous means a mutating operation was attempted without a
// logged-in account.
var ErrAnonymous = errors.New("authentication required")

// AccountDirectory is the narrow slice of the account store the
// service needs: whether an owner handle exists.
type AccountDirectory interface {
	AccountExists(username string) (bool, error)
}

// PollService orchestrates the poll store and the vote ledger under
// the authentication and ownership rules. It is the only entry point
// the HTTP layer calls into.
type PollService struct {
	polls    *store.PollStore
	ledger   *store.VoteLedger
	accounts AccountDirectory
}

func NewPollService(polls *store.PollStore, ledger *store.VoteLedger, accounts AccountDirectory) *PollService {
	return &PollService{polls: polls, ledger: ledger, accounts: accounts}
}

// CreatePoll creates a poll owned by caller. Anonymous callers are
// rejected.
func (s *PollService) CreatePoll(caller, title string) (models.Poll, error) {
	if caller == "" {
		return models.Poll{}, ErrAnonymous
	}
	return s.polls.CreatePoll(caller, title)
}

// ListPolls returns every poll.
func (s *PollService) ListPolls() ([]models.Poll, error) {
	return s.polls.ListPolls()
}

// ListPollsByOwner returns the polls of a known owner. An owner handle
// that was never registered is ErrNotFound, not an empty list.
func (s *PollService) ListPollsByOwner(owner string) ([]models.Poll, error) {
	exists, err := s.accounts.AccountExists(owner)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, store.ErrNotFound
	}
	return s.polls.ListPollsByOwner(owner)
}

// GetPoll returns a poll and its items. The owner segment of the path
// must match the poll's owner; a mismatch is indistinguishable from a
// missing poll.
func (s *PollService) GetPoll(owner, pollID string) (models.PollWithItems, error) {
	poll, err := s.polls.GetPoll(pollID)
	if err != nil {
		return models.PollWithItems{}, err
	}
	if poll.Owner != owner {
		return models.PollWithItems{}, store.ErrNotFound
	}

	items, err := s.polls.ListItems(pollID)
	if err != nil {
		return models.PollWithItems{}, err
	}

	return models.PollWithItems{Poll: poll, Items: items}, nil
}

// UpdatePoll renames a poll and any of the listed items. Only the
// owner may update; blank item titles are skipped rather than applied,
// matching the original edit form's behavior.
func (s *PollService) UpdatePoll(caller, owner, pollID, title string, itemEdits map[string]string) (models.PollWithItems, error) {
	if caller == "" {
		return models.PollWithItems{}, ErrAnonymous
	}

	poll, err := s.polls.GetPoll(pollID)
	if err != nil {
		return models.PollWithItems{}, err
	}
	if poll.Owner != owner {
		return models.PollWithItems{}, store.ErrNotFound
	}

	poll, err = s.polls.RenamePoll(pollID, title, caller)
	if err != nil {
		return models.PollWithItems{}, err
	}

	if len(itemEdits) > 0 {
		items, err := s.polls.ListItems(pollID)
		if err != nil {
			return models.PollWithItems{}, err
		}
		member := make(map[string]bool, len(items))
		for _, it := range items {
			member[it.ID] = true
		}

		for itemID, newTitle := range itemEdits {
			if newTitle == "" {
				continue
			}
			if !member[itemID] {
				return models.PollWithItems{}, store.ErrNotFound
			}
			if _, err := s.polls.RenameItem(itemID, newTitle, caller); err != nil {
				return models.PollWithItems{}, err
			}
		}
	}

	items, err := s.polls.ListItems(pollID)
	if err != nil {
		return models.PollWithItems{}, err
	}

	return models.PollWithItems{Poll: poll, Items: items}, nil
}

// AddItem appends an item to the caller's poll.
func (s *PollService) AddItem(caller, owner, pollID, title string) (models.Item, error) {
	if caller == "" {
		return models.Item{}, ErrAnonymous
	}

	poll, err := s.polls.GetPoll(pollID)
	if err != nil {
		return models.Item{}, err
	}
	if poll.Owner != owner {
		return models.Item{}, store.ErrNotFound
	}

	return s.polls.AddItem(pollID, title, caller)
}

// CastVote records a vote by the resolved voter identity. Anonymous
// identities are welcome here; the resolver always supplies one.
// Duplicate casts are a silent no-op: accepted=false, current item.
func (s *PollService) CastVote(voter, itemID string) (bool, models.Item, error) {
	return s.ledger.CastVote(itemID, voter)
}
