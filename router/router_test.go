// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/pollbox/identity"
	"github.com/danielhkuo/pollbox/models"
	"github.com/danielhkuo/pollbox/testutil"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	return NewRouter(conn, testutil.GetTestConfig())
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "OK" {
		t.Errorf("Expected OK, got %s", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "pollbox API v1" {
		t.Errorf("Unexpected root body: %s", w.Body.String())
	}
}

func TestRouteRegistration(t *testing.T) {
	mux := newTestRouter(t)

	// Wrong methods must not fall through to other handlers
	tests := []struct {
		method string
		path   string
	}{
		{"DELETE", "/polls"},
		{"PUT", "/signup"},
		{"DELETE", "/items/x/vote"},
	}

	for _, tc := range tests {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: expected 405, got %d", tc.method, tc.path, w.Code)
		}
	}
}

// TestFullLifecycle drives the complete flow through the mux: signup,
// create a poll, add items, vote logged-in and anonymously, read the
// tallies back, log out.
func TestFullLifecycle(t *testing.T) {
	mux := newTestRouter(t)

	do := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		return w
	}

	// Sign up; the response carries a session cookie
	w := do(testutil.MakeRequest("POST", "/signup", models.SignupRequest{
		Username: "alice", Password: "hunter2",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == identity.SessionCookie {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("Expected a session cookie from signup")
	}

	// Create a poll
	req := testutil.MakeRequest("POST", "/polls", models.CreatePollRequest{Title: "Lunch"}, nil)
	w = do(testutil.WithSession(req, token))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var poll models.Poll
	testutil.AssertJSON(t, w, &poll)

	// Add two items
	var items []models.Item
	for _, title := range []string{"Tacos", "Sushi"} {
		req = testutil.MakeRequest("POST", "/polls/alice/"+poll.ID+"/items",
			models.AddItemRequest{Title: title}, nil)
		w = do(testutil.WithSession(req, token))
		testutil.AssertStatus(t, w, http.StatusCreated)

		var item models.Item
		testutil.AssertJSON(t, w, &item)
		items = append(items, item)
	}

	// alice votes for Tacos
	req = testutil.MakeRequest("POST", "/items/"+items[0].ID+"/vote", nil, nil)
	w = do(testutil.WithSession(req, token))
	testutil.AssertStatus(t, w, http.StatusOK)

	var vote models.VoteResponse
	testutil.AssertJSON(t, w, &vote)
	if !vote.Accepted {
		t.Fatal("Expected alice's vote accepted")
	}

	// alice tries Sushi too: same poll, rejected without error
	req = testutil.MakeRequest("POST", "/items/"+items[1].ID+"/vote", nil, nil)
	w = do(testutil.WithSession(req, token))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &vote)
	if vote.Accepted {
		t.Error("Expected a second vote in the same poll to be rejected")
	}

	// An anonymous caller votes for Sushi
	req = testutil.MakeRequest("POST", "/items/"+items[1].ID+"/vote", nil, nil)
	req.RemoteAddr = "203.0.113.9:1234"
	w = do(req)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &vote)
	if !vote.Accepted {
		t.Error("Expected the anonymous vote accepted")
	}

	// Read the poll back: Tacos 1, Sushi 1, insertion order preserved
	w = do(testutil.MakeRequest("GET", "/polls/alice/"+poll.ID, nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var result models.PollWithItems
	testutil.AssertJSON(t, w, &result)
	if len(result.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(result.Items))
	}
	if result.Items[0].Title != "Tacos" || result.Items[1].Title != "Sushi" {
		t.Errorf("Expected insertion order preserved, got %+v", result.Items)
	}
	for i, item := range result.Items {
		if item.VoteCount != 1 {
			t.Errorf("Expected item %d at 1 vote, got %d", i, item.VoteCount)
		}
	}

	// Log out; the session stops resolving
	req = testutil.MakeRequest("POST", "/logout", nil, nil)
	w = do(testutil.WithSession(req, token))
	testutil.AssertStatus(t, w, http.StatusNoContent)

	req = testutil.MakeRequest("GET", "/account", nil, nil)
	w = do(testutil.WithSession(req, token))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestUtilityRoutes(t *testing.T) {
	mux := newTestRouter(t)

	// The shortener round-trips through real URL paths. A browser's
	// "/url/new/http://example.com" reaches the handler with the double
	// slash collapsed, so request the cleaned form directly.
	req := httptest.NewRequest("GET", "/url/new/http:/example.com", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var short models.ShortURLResponse
	testutil.AssertJSON(t, w, &short)
	if short.OriginalURL != "http://example.com" {
		t.Errorf("Expected http://example.com, got %q", short.OriginalURL)
	}

	req = httptest.NewRequest("GET", "/url/"+short.ShortURL, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusMovedPermanently)

	// Timestamp conversion via the path
	req = httptest.NewRequest("GET", "/timestamp/1450137600", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var ts models.TimestampResponse
	testutil.AssertJSON(t, w, &ts)
	if ts.Natural == nil || *ts.Natural != "December 15, 2015" {
		t.Errorf("Expected December 15, 2015, got %v", ts.Natural)
	}
}
