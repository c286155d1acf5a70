// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/pollbox/identity"
	"github.com/danielhkuo/pollbox/middleware"
	"github.com/danielhkuo/pollbox/models"
	"github.com/danielhkuo/pollbox/service"
	"github.com/danielhkuo/pollbox/store"
)

type PollHandler struct {
	svc *service.PollService
	ids *identity.Resolver
}

func NewPollHandler(svc *service.PollService, ids *identity.Resolver) *PollHandler {
	return &PollHandler{svc: svc, ids: ids}
}

// writeServiceError maps the service/store error taxonomy onto HTTP
// status codes. Anything unmatched is a store fault.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrEmptyTitle):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAnonymous):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
	case errors.Is(err, store.ErrNotOwner):
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the poll owner may do that")
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	default:
		slog.Error("store failure", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	caller, _ := h.ids.ResolveAccount(r)

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, err := h.svc.CreatePoll(caller, req.Title)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	slog.Info("poll created", "poll_id", poll.ID, "owner", poll.Owner)

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.svc.ListPolls()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, summarize(polls))
}

// ListPollsByOwner handles GET /polls/{owner}
func (h *PollHandler) ListPollsByOwner(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	if owner == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "owner is required")
		return
	}

	polls, err := h.svc.ListPollsByOwner(owner)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, summarize(polls))
}

// GetPoll handles GET /polls/{owner}/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	pollID := r.PathValue("id")
	if owner == "" || pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "owner and poll id are required")
		return
	}

	result, err := h.svc.GetPoll(owner, pollID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// UpdatePoll handles PUT /polls/{owner}/{id}
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	caller, _ := h.ids.ResolveAccount(r)
	owner := r.PathValue("owner")
	pollID := r.PathValue("id")
	if owner == "" || pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "owner and poll id are required")
		return
	}

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := h.svc.UpdatePoll(caller, owner, pollID, req.Title, req.Items)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	slog.Info("poll updated", "poll_id", pollID, "owner", owner, "item_edits", len(req.Items))

	middleware.JSONResponse(w, http.StatusOK, result)
}

// AddItem handles POST /polls/{owner}/{id}/items
func (h *PollHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	caller, _ := h.ids.ResolveAccount(r)
	owner := r.PathValue("owner")
	pollID := r.PathValue("id")
	if owner == "" || pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "owner and poll id are required")
		return
	}

	var req models.AddItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	item, err := h.svc.AddItem(caller, owner, pollID, req.Title)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	slog.Info("item added", "poll_id", pollID, "item_id", item.ID)

	middleware.JSONResponse(w, http.StatusCreated, item)
}

func summarize(polls []models.Poll) []models.PollSummary {
	out := make([]models.PollSummary, 0, len(polls))
	for _, p := range polls {
		out = append(out, models.PollSummary{
			Poll:    p,
			Created: humanize.Time(p.CreatedAt),
		})
	}
	return out
}
