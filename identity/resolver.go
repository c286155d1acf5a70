// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"net/http"

	"github.com/danielhkuo/pollbox/auth"
	"github.com/danielhkuo/pollbox/middleware"
)

// SessionCookie is the name of the login session cookie.
const SessionCookie = "pollbox_session"

// AnonPrefix marks voter identities derived from a network origin
// rather than a logged-in account.
const AnonPrefix = "anon-"

// Resolver derives caller identities from incoming requests.
type Resolver struct {
	accounts *Accounts
	salt     string
}

func NewResolver(accounts *Accounts, identitySalt string) *Resolver {
	return &Resolver{accounts: accounts, salt: identitySalt}
}

// ResolveAccount returns the authenticated account handle for the
// request, if the session cookie maps to a live session.
func (rs *Resolver) ResolveAccount(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return "", false
	}

	username, err := rs.accounts.GetSession(c.Value)
	if err != nil {
		// Unknown or logged-out token; treat as anonymous.
		return "", false
	}

	return username, true
}

// ResolveVoter returns a voter identity for the request. It never
// fails: logged-in callers vote as their account handle, everyone
// else as a salted hash of their network origin. All unauthenticated
// callers behind one origin share an identity - a known accuracy
// limitation, kept from the original system.
func (rs *Resolver) ResolveVoter(r *http.Request) string {
	if username, ok := rs.ResolveAccount(r); ok {
		return username
	}
	return AnonPrefix + auth.HashIP(middleware.GetClientIP(r), rs.salt)
}
