package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	fahttp "github.com/FurryCoders/faapi/http"
	"github.com/FurryCoders/faapi/scrape"
)

// pruneInterval is how often expired cache entries are deleted.
const pruneInterval = 10 * time.Minute

// Run starts the API server and blocks until interrupted.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := fahttp.NewServer()
	server.Addr = c.Addr
	server.Logger = deps.Logger
	server.Submissions = deps.Submissions
	server.Journals = deps.Journals
	server.Users = deps.Users
	if c.ClientRPS > 0 {
		server.ClientLimiter = scrape.NewKeyLimiter(c.ClientRPS)
	}

	ctx, stop := signal.NotifyContext(deps.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if deps.Cache != nil {
		go deps.Cache.PrunePeriodically(ctx, pruneInterval, deps.Logger)
	}

	deps.Logger.Info("serving", "addr", c.Addr)
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", c.Addr)

	return server.ListenAndServe(ctx)
}
