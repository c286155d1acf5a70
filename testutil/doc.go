// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package testutil provides shared helpers for the test suites.

SetupTestDB opens an in-memory sqlite database with the full schema,
so tests run without an external server. Seed helpers insert accounts,
sessions, polls, and items with raw SQL, and the request helpers build
httptest requests and decode responses:

	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	alice := testutil.CreateTestAccount(t, conn, "alice", "pw")
	token := testutil.CreateTestSession(t, conn, alice)
	pollID := testutil.CreateTestPoll(t, conn, alice, "Lunch")

	req := testutil.WithSession(testutil.MakeRequest("POST", "/polls", body, nil), token)
*/
package testutil
