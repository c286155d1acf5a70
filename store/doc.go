// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store implements the poll store and the vote ledger on
database/sql.

# Poll Store

PollStore owns poll and item records:

	s := store.NewPollStore(conn, db.DriverSQLite)
	poll, err := s.CreatePoll("alice", "Lunch spot")
	item, err := s.AddItem(poll.ID, "Tacos", "alice")

Mutations (RenamePoll, AddItem, RenameItem) verify that the requester
owns the parent poll and return ErrNotOwner otherwise. Blank titles
fail with ErrEmptyTitle, missing records with ErrNotFound. Items can
only be created through AddItem, which resolves the parent poll first,
so an item row always references an existing poll.

# Vote Ledger

VoteLedger enforces one vote per voter identity per poll:

	l := store.NewVoteLedger(conn, db.DriverSQLite)
	accepted, item, err := l.CastVote(itemID, voter)

The first cast inserts a vote row and increments the item counter in
one transaction. A repeat cast for the same poll trips the vote
table's (poll_id, voter) primary key and comes back as
accepted=false with the unchanged item - a defined no-op, not an
error. Because the gate is a database constraint, concurrent casts
from the same identity can never both increment a counter.

# Errors

Sentinel errors (ErrNotFound, ErrNotOwner, ErrEmptyTitle) are matched
with errors.Is by the service and HTTP layers. Any other failure is a
wrapped driver error and surfaces as a server fault.
*/
package store
