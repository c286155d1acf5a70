// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SignupRequest / LoginRequest: username, password
  - CreatePollRequest: title
  - AddItemRequest: title
  - UpdatePollRequest: title plus optional item renames (item ID → new title)

# Response Types

Types for JSON responses:

  - AccountResponse: username, created
  - VoteResponse: accepted flag and the item after the cast
  - TimestampResponse: unix, natural (both null on parse failure)
  - WhoYouAreResponse: ipaddress, language, software
  - ShortURLResponse: original_url, short_url
  - FileMetadataResponse: name, filesize, size
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Account: registered user with a bcrypt password hash
  - Session: cookie-backed login session
  - Poll: titled collection of items, owned by one account
  - Item: a votable option carrying its aggregate vote count
  - Vote: one identity's single cast within a poll
  - ShortURL: shortener record

Fields that must never reach clients (password hashes, session tokens,
voter identities) are tagged `json:"-"`.
*/
package models
