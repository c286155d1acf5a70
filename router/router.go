// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/pollbox/cliparse"
	"github.com/danielhkuo/pollbox/handlers"
	"github.com/danielhkuo/pollbox/identity"
	"github.com/danielhkuo/pollbox/middleware"
	"github.com/danielhkuo/pollbox/service"
	"github.com/danielhkuo/pollbox/store"
)

func NewRouter(conn *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Wire the core: store and ledger behind the service, identities
	// from the resolver.
	polls := store.NewPollStore(conn, cfg.DatabaseType)
	ledger := store.NewVoteLedger(conn, cfg.DatabaseType)
	accounts := identity.NewAccounts(conn, cfg.DatabaseType)
	resolver := identity.NewResolver(accounts, cfg.IdentitySalt)
	svc := service.NewPollService(polls, ledger, accounts)

	pollHandler := handlers.NewPollHandler(svc, resolver)
	voteHandler := handlers.NewVoteHandler(svc, resolver)
	accountHandler := handlers.NewAccountHandler(accounts, resolver)
	shortenerHandler := handlers.NewShortenerHandler(conn, cfg.DatabaseType)
	utilityHandler := handlers.NewUtilityHandler()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts and sessions
	mux.HandleFunc("POST /signup", middleware.WithLogging(accountHandler.Signup))
	mux.HandleFunc("POST /login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("POST /logout", middleware.WithLogging(accountHandler.Logout))
	mux.HandleFunc("GET /account", middleware.WithLogging(accountHandler.Me))

	// Polls
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("GET /polls/{owner}", middleware.WithLogging(pollHandler.ListPollsByOwner))
	mux.HandleFunc("GET /polls/{owner}/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("PUT /polls/{owner}/{id}", middleware.WithLogging(pollHandler.UpdatePoll))
	mux.HandleFunc("POST /polls/{owner}/{id}/items", middleware.WithLogging(pollHandler.AddItem))

	// Voting
	mux.HandleFunc("POST /items/{id}/vote", middleware.WithLogging(voteHandler.CastVote))

	// URL shortener
	mux.HandleFunc("GET /url/", middleware.WithLogging(shortenerHandler.Intro))
	mux.HandleFunc("GET /url/new/{target...}", middleware.WithLogging(shortenerHandler.Shorten))
	mux.HandleFunc("GET /url/{code}", middleware.WithLogging(shortenerHandler.Redirect))

	// Utilities
	mux.HandleFunc("GET /timestamp/", middleware.WithLogging(utilityHandler.TimestampIntro))
	mux.HandleFunc("GET /timestamp/{param}", middleware.WithLogging(utilityHandler.Timestamp))
	mux.HandleFunc("GET /whoyouare", middleware.WithLogging(utilityHandler.WhoYouAre))
	mux.HandleFunc("GET /file/", middleware.WithLogging(utilityHandler.FileIntro))
	mux.HandleFunc("POST /file/upload", middleware.WithLogging(utilityHandler.FileMetadata))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pollbox API v1"))
	})

	return mux
}
