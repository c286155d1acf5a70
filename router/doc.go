// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the pollbox API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(conn, cfg)

# Endpoints

Health:

	GET /health

Accounts (session cookie based):

	POST /signup  - Register and log in
	POST /login   - Log in
	POST /logout  - Drop the session
	GET  /account - Current account

Polls:

	POST /polls                     - Create poll (login required)
	GET  /polls                     - All polls
	GET  /polls/{owner}             - One owner's polls
	GET  /polls/{owner}/{id}        - Poll with items
	PUT  /polls/{owner}/{id}        - Rename poll / items (owner only)
	POST /polls/{owner}/{id}/items  - Add item (owner only)

Voting (open to anonymous callers):

	POST /items/{id}/vote

URL shortener:

	GET /url/               - Intro
	GET /url/new/{target..} - Shorten
	GET /url/{code}         - Redirect

Utilities:

	GET  /timestamp/{param}
	GET  /whoyouare
	POST /file/upload

# Handler Initialization

The router builds the store, vote ledger, account store, identity
resolver, and poll service, then hands them to the handler structs.
The service is the only path from HTTP to the poll store and ledger.
*/
package router
