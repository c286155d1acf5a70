// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package service orchestrates the poll store and the vote ledger.

PollService is the aggregation root: the HTTP layer calls it and
nothing else, and the store and ledger never call each other.

Two cross-cutting rules live here:

  - Every mutating operation (CreatePoll, UpdatePoll, AddItem) needs a
    logged-in caller and fails with ErrAnonymous otherwise.
  - CastVote takes any resolved voter identity, including the
    anonymous network-origin fallback.

Reads that address a poll through an owner path segment treat an
owner mismatch as ErrNotFound, so probing other users' poll IDs leaks
nothing. Listing polls for an unregistered owner is also ErrNotFound,
per the API contract.

Store errors pass through untranslated; handlers match them with
errors.Is and pick status codes.
*/
package service
