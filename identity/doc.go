// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity provides accounts, sessions, and voter resolution.

# Accounts

Accounts stores registered users (alphanumeric username, bcrypt
password hash) and their login sessions:

	acct, err := accounts.Signup("alice", "hunter2")
	acct, err = accounts.Login("alice", "hunter2")
	token, err := accounts.CreateSession(acct.Username)

Sessions are rows keyed by a random token; the token travels in the
session cookie and logout deletes the row.

# Resolver

Resolver turns an incoming request into caller identities:

	handle, ok := resolver.ResolveAccount(r) // authenticated handle, if any
	voter := resolver.ResolveVoter(r)        // never fails

ResolveVoter prefers the logged-in account handle. Without one it
falls back to "anon-" plus a salted hash of the client IP, so distinct
origins count as distinct voters while raw addresses stay out of the
database. The fallback is deliberately weak: every unauthenticated
caller behind one NAT shares an identity.
*/
package identity
