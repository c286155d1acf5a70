// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/pollbox/auth"
	"github.com/danielhkuo/pollbox/db"
	"github.com/danielhkuo/pollbox/middleware"
	"github.com/danielhkuo/pollbox/models"
)

type ShortenerHandler struct {
	db     *sql.DB
	driver string
}

func NewShortenerHandler(conn *sql.DB, driver string) *ShortenerHandler {
	return &ShortenerHandler{db: conn, driver: driver}
}

func (h *ShortenerHandler) q(query string) string {
	return db.Rebind(h.driver, query)
}

// Intro handles GET /url/
func (h *ShortenerHandler) Intro(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Use /url/new/http://foo.com to create a new url.\n"))
}

// Shorten handles GET /url/new/{target...}
// Shortening the same URL twice returns the existing code.
func (h *ShortenerHandler) Shorten(w http.ResponseWriter, r *http.Request) {
	target := repairScheme(r.PathValue("target"))

	if !isWebURL(target) {
		middleware.JSONResponse(w, http.StatusBadRequest, models.ShortURLResponse{Error: "Invalid url"})
		return
	}

	// Reuse an existing code for this URL if there is one.
	var code string
	err := h.db.QueryRow(h.q(`
		SELECT code FROM short_url WHERE original_url = ?
	`), target).Scan(&code)

	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query short url", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err == sql.ErrNoRows {
		code, err = h.insertWithFreshCode(target)
		if err != nil {
			slog.Error("failed to insert short url", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to shorten url")
			return
		}
		slog.Info("short url created", "code", code)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ShortURLResponse{
		OriginalURL: target,
		ShortURL:    code,
	})
}

// Redirect handles GET /url/{code}
// Unknown codes bounce to the intro page, as the original did.
func (h *ShortenerHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	var original string
	err := h.db.QueryRow(h.q(`
		SELECT original_url FROM short_url WHERE code = ?
	`), code).Scan(&original)

	if err == sql.ErrNoRows {
		http.Redirect(w, r, "/url/", http.StatusMovedPermanently)
		return
	}
	if err != nil {
		slog.Error("failed to query short url", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	http.Redirect(w, r, original, http.StatusMovedPermanently)
}

// insertWithFreshCode retries on the unlikely code collision.
func (h *ShortenerHandler) insertWithFreshCode(target string) (string, error) {
	for i := 0; i < 3; i++ {
		code, err := auth.GenerateShortCode()
		if err != nil {
			return "", err
		}

		_, err = h.db.Exec(h.q(`
			INSERT INTO short_url (code, original_url, created_at)
			VALUES (?, ?, ?)
		`), code, target, time.Now().UTC())

		if err == nil {
			return code, nil
		}
		if !db.IsUniqueViolation(err) {
			return "", err
		}
	}
	return "", errors.New("could not allocate a short code")
}

// repairScheme restores the double slash that ServeMux path cleaning
// collapses out of "http://..." path segments.
func repairScheme(target string) string {
	for _, scheme := range []string{"http", "https"} {
		prefix := scheme + ":/"
		if strings.HasPrefix(target, prefix) && !strings.HasPrefix(target, prefix+"/") {
			return scheme + "://" + target[len(prefix):]
		}
	}
	return target
}

func isWebURL(target string) bool {
	u, err := url.ParseRequestURI(target)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
