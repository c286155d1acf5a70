// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP layer.

Handlers parse requests, resolve caller identities, call the poll
service (or their own small store, for the shortener), and map the
typed error taxonomy onto status codes:

	store.ErrEmptyTitle  → 400
	service.ErrAnonymous → 401
	store.ErrNotOwner    → 403
	store.ErrNotFound    → 404
	anything else        → 500 (store fault, logged)

# Handler Groups

  - PollHandler: poll creation, listing, detail, update, item adding
  - VoteHandler: vote casting (anonymous-friendly, duplicate-tolerant)
  - AccountHandler: signup, login, logout, current account
  - ShortenerHandler: URL shortening and redirects
  - UtilityHandler: timestamp conversion, header parsing, file metadata

All handlers receive their dependencies at construction and are wired
by the router.
*/
package handlers
