// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/pollbox/auth"
	"github.com/danielhkuo/pollbox/identity"
	"github.com/danielhkuo/pollbox/middleware"
	"github.com/danielhkuo/pollbox/models"
)

type AccountHandler struct {
	accounts *identity.Accounts
	ids      *identity.Resolver
}

func NewAccountHandler(accounts *identity.Accounts, ids *identity.Resolver) *AccountHandler {
	return &AccountHandler{accounts: accounts, ids: ids}
}

// Signup handles POST /signup
// A successful signup logs the account in immediately, as the
// original did.
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	acct, err := h.accounts.Signup(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidUsername), errors.Is(err, identity.ErrEmptyPassword):
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, identity.ErrUsernameTaken):
			middleware.ErrorResponse(w, http.StatusConflict, err.Error())
		default:
			slog.Error("signup failed", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		}
		return
	}

	if err := h.startSession(w, acct.Username); err != nil {
		slog.Error("failed to create session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("account created", "username", acct.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.AccountResponse{Username: acct.Username})
}

// Login handles POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	acct, err := h.accounts.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		slog.Error("login failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	if err := h.startSession(w, acct.Username); err != nil {
		slog.Error("failed to create session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("login", "username", acct.Username)

	middleware.JSONResponse(w, http.StatusOK, models.AccountResponse{Username: acct.Username})
}

// Logout handles POST /logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(identity.SessionCookie); err == nil && c.Value != "" {
		if err := h.accounts.DeleteSession(c.Value); err != nil {
			slog.Error("failed to delete session", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log out")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     identity.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /account
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	username, ok := h.ids.ResolveAccount(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return
	}

	acct, found, err := h.accounts.GetAccount(username)
	if err != nil || !found {
		if err != nil {
			slog.Error("failed to load account", "error", err)
		}
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load account")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AccountResponse{
		Username: acct.Username,
		Created:  humanize.Time(acct.CreatedAt),
	})
}

func (h *AccountHandler) startSession(w http.ResponseWriter, username string) error {
	token, err := h.accounts.CreateSession(username)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     identity.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}
