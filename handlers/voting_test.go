// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/pollbox/models"
	"github.com/danielhkuo/pollbox/testutil"
)

func TestCastVoteEndpoint(t *testing.T) {
	env := setupEnv(t)
	handler := NewVoteHandler(env.svc, env.resolver)

	token := env.login(t, "alice")
	pollID := testutil.CreateTestPoll(t, env.conn, "alice", "Lunch")
	itemID := testutil.AddTestItem(t, env.conn, pollID, "alice", "Tacos")

	vote := func(sessionToken, remoteAddr string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/items/"+itemID+"/vote", nil, nil)
		req.SetPathValue("id", itemID)
		if sessionToken != "" {
			req = testutil.WithSession(req, sessionToken)
		}
		if remoteAddr != "" {
			req.RemoteAddr = remoteAddr
		}
		w := httptest.NewRecorder()
		handler.CastVote(w, req)
		return w
	}

	// Logged-in voter: first vote accepted
	w := vote(token, "")
	testutil.AssertStatus(t, w, http.StatusOK)

	var result models.VoteResponse
	testutil.AssertJSON(t, w, &result)
	if !result.Accepted {
		t.Error("Expected first vote accepted")
	}
	if result.Item.VoteCount != 1 {
		t.Errorf("Expected vote count 1, got %d", result.Item.VoteCount)
	}

	// Repeat from the same account: 200 with accepted=false, count unchanged
	w = vote(token, "")
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &result)
	if result.Accepted {
		t.Error("Expected duplicate vote rejected")
	}
	if result.Item.VoteCount != 1 {
		t.Errorf("Expected vote count to stay at 1, got %d", result.Item.VoteCount)
	}
}

func TestCastVoteEndpoint_Anonymous(t *testing.T) {
	env := setupEnv(t)
	handler := NewVoteHandler(env.svc, env.resolver)

	testutil.CreateTestAccount(t, env.conn, "alice", "pw")
	pollID := testutil.CreateTestPoll(t, env.conn, "alice", "Lunch")
	itemID := testutil.AddTestItem(t, env.conn, pollID, "alice", "Tacos")

	vote := func(remoteAddr string) models.VoteResponse {
		req := testutil.MakeRequest("POST", "/items/"+itemID+"/vote", nil, nil)
		req.SetPathValue("id", itemID)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		handler.CastVote(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var result models.VoteResponse
		testutil.AssertJSON(t, w, &result)
		return result
	}

	// Anonymous voting never demands a login
	first := vote("198.51.100.7:1111")
	if !first.Accepted {
		t.Error("Expected first anonymous vote accepted")
	}

	// Same origin again, different source port: still the same voter
	repeat := vote("198.51.100.7:2222")
	if repeat.Accepted {
		t.Error("Expected repeat vote from the same origin rejected")
	}

	// A different origin is a different voter
	other := vote("203.0.113.9:3333")
	if !other.Accepted {
		t.Error("Expected vote from a new origin accepted")
	}
	if other.Item.VoteCount != 2 {
		t.Errorf("Expected vote count 2, got %d", other.Item.VoteCount)
	}
}

func TestCastVoteEndpoint_UnknownItem(t *testing.T) {
	env := setupEnv(t)
	handler := NewVoteHandler(env.svc, env.resolver)

	req := testutil.MakeRequest("POST", "/items/no-such-item/vote", nil, nil)
	req.SetPathValue("id", "no-such-item")
	w := httptest.NewRecorder()
	handler.CastVote(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
