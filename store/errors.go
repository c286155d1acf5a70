// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import "errors"

var (
	// ErrNotFound means the referenced poll or item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotOwner means the requester is authenticated but does not
	// own the poll being mutated.
	ErrNotOwner = errors.New("requester is not the poll owner")

	// ErrEmptyTitle is the validation failure for blank titles.
	ErrEmptyTitle = errors.New("title is required")
)
