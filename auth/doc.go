// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and credential hashing.

# Session Tokens

GenerateSessionToken creates a 192-bit random token, URL-safe base64
encoded without padding:

	token, err := auth.GenerateSessionToken()

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(req.Password)
	err = auth.ComparePassword(req.Password, stored)

ComparePassword returns ErrBadCredentials on mismatch so callers never
branch on bcrypt internals.

# Anonymous Identity Hashing

HashIP produces a salted one-way hash of a client IP:

	id := "anon-" + auth.HashIP(ip, cfg.IdentitySalt)

Used to derive voter identities for unauthenticated vote casts without
persisting raw addresses.

# Short Codes

GenerateShortCode returns a random base62 code for the URL shortener.
*/
package auth
