// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreatePollRequest struct {
	Title string `json:"title"`
}

type AddItemRequest struct {
	Title string `json:"title"`
}

// UpdatePollRequest renames a poll and optionally any of its items.
// Items maps item ID to new title; items not listed are untouched.
type UpdatePollRequest struct {
	Title string            `json:"title"`
	Items map[string]string `json:"items,omitempty"`
}

// Response types

type AccountResponse struct {
	Username string `json:"username"`
	Created  string `json:"created,omitempty"`
}

type VoteResponse struct {
	Accepted bool `json:"accepted"`
	Item     Item `json:"item"`
}

type TimestampResponse struct {
	Unix    *int64  `json:"unix"`
	Natural *string `json:"natural"`
}

type WhoYouAreResponse struct {
	IPAddress string `json:"ipaddress"`
	Language  string `json:"language"`
	Software  string `json:"software"`
}

type ShortURLResponse struct {
	OriginalURL string `json:"original_url,omitempty"`
	ShortURL    string `json:"short_url,omitempty"`
	Error       string `json:"error,omitempty"`
}

type FileMetadataResponse struct {
	Name     string `json:"name"`
	FileSize int64  `json:"filesize"`
	Size     string `json:"size"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type Session struct {
	Token     string    `json:"-"` // Never expose in JSON
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type Poll struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

// PollSummary is the listing shape: a Poll plus a human-readable age.
type PollSummary struct {
	Poll
	Created string `json:"created"`
}

type Item struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	Title     string    `json:"title"`
	Owner     string    `json:"owner"`
	VoteCount int       `json:"vote_count"`
	CreatedAt time.Time `json:"created_at"`
}

type PollWithItems struct {
	Poll  Poll   `json:"poll"`
	Items []Item `json:"items"`
}

type Vote struct {
	PollID    string    `json:"poll_id"`
	ItemID    string    `json:"item_id"`
	Voter     string    `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
}

type ShortURL struct {
	Code        string    `json:"short_url"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"-"`
}
