package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/FurryCoders/faapi"
	"github.com/FurryCoders/faapi/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Submissions faapi.SubmissionService
	Journals    faapi.JournalService
	Users       faapi.UserService

	// Cache is set when serve runs with the response cache enabled, so
	// the server can prune expired entries in the background.
	Cache *sqlite.CacheService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL string `help:"Override the upstream site URL." hidden:""`

	Serve ServeCmd `cmd:"" help:"Run the JSON API server"`
	Get   GetCmd   `cmd:"" help:"Fetch a single resource and print it as JSON"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr      string  `default:":8080" help:"Address to listen on"`
	DB        string  `help:"Cache database path (defaults to a per-user data dir)"`
	CacheTTL  string  `default:"5m" help:"How long cached responses stay fresh"`
	NoCache   bool    `help:"Disable the response cache"`
	ClientRPS float64 `default:"2" help:"Per-client request rate limit"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	Resource string   `arg:"" enum:"submission,journal,user,gallery,scraps,favorites,journals,watchlist" help:"Resource kind"`
	Key      string   `arg:"" help:"Submission/journal ID or username"`
	Page     string   `default:"1" help:"Page cursor for listing resources"`
	Cookie   []string `short:"c" help:"Session cookie as name=value (repeatable)"`
}
