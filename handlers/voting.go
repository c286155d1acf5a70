// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollbox/identity"
	"github.com/danielhkuo/pollbox/middleware"
	"github.com/danielhkuo/pollbox/models"
	"github.com/danielhkuo/pollbox/service"
)

type VoteHandler struct {
	svc *service.PollService
	ids *identity.Resolver
}

func NewVoteHandler(svc *service.PollService, ids *identity.Resolver) *VoteHandler {
	return &VoteHandler{svc: svc, ids: ids}
}

// CastVote handles POST /items/{id}/vote
//
// Anonymous callers vote under a network-origin identity, so this
// endpoint never returns 401. A repeat vote in the same poll is not
// an error either: the response carries accepted=false and the
// item's unchanged state.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")
	if itemID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "item id is required")
		return
	}

	voter := h.ids.ResolveVoter(r)

	accepted, item, err := h.svc.CastVote(voter, itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	slog.Info("vote cast", "item_id", itemID, "poll_id", item.PollID, "accepted", accepted)

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		Accepted: accepted,
		Item:     item,
	})
}
