// Command faapi serves a JSON API over scraped Fur Affinity pages, or
// fetches a single resource from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FurryCoders/faapi"
	"github.com/FurryCoders/faapi/bloom"
	"github.com/FurryCoders/faapi/cache"
	"github.com/FurryCoders/faapi/goquery"
	fahttp "github.com/FurryCoders/faapi/http"
	"github.com/FurryCoders/faapi/scrape"
	faslog "github.com/FurryCoders/faapi/slog"
	"github.com/FurryCoders/faapi/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the response cache.
	DB *sqlite.DB

	// Fetcher talking to the live site.
	Fetcher faapi.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		if err := m.Fetcher.Close(); err != nil {
			return err
		}
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("faapi"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'faapi --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	var fetcherOpts []fahttp.Option
	if cli.BaseURL != "" {
		fetcherOpts = append(fetcherOpts, fahttp.WithBaseURL(cli.BaseURL))
	}
	m.Fetcher = faslog.NewLoggingFetcher(fahttp.NewFetcher(fetcherOpts...), logger)

	// Honor the live robots rules, falling back to the pinned policy when
	// the site cannot be reached at startup.
	robots, err := scrape.FetchRobots(ctx, m.Fetcher)
	if err != nil {
		logger.Warn("using pinned robots policy", "err", err)
		robots = scrape.DefaultRobots()
	}

	p := goquery.NewParser()
	client := scrape.NewClient(m.Fetcher, p, p, p,
		scrape.WithRobots(&scrape.StaticRobots{Policy: robots}),
		scrape.WithLogger(logger),
	)

	deps := &Dependencies{
		Ctx:         ctx,
		Stdout:      stdout,
		Stderr:      stderr,
		Logger:      logger,
		Submissions: client,
		Journals:    client,
		Users:       client,
	}

	if kongCtx.Command() == "serve" && !cli.Serve.NoCache {
		ttl, err := time.ParseDuration(cli.Serve.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache TTL %q: %w", cli.Serve.CacheTTL, err)
		}

		dbPath := cli.Serve.DB
		if dbPath == "" {
			dbPath = defaultDBPath()
		}
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create cache directory %q: %w", dir, err)
			}
		}
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open cache database at %q: %w", dbPath, err)
		}

		store := sqlite.NewCacheService(m.DB,
			sqlite.WithTTL(ttl),
			sqlite.WithFilter(bloom.NewFilter(100_000, 0.01)),
		)
		deps.Submissions = cache.NewCachedSubmissionService(deps.Submissions, store, logger)
		deps.Journals = cache.NewCachedJournalService(deps.Journals, store, logger)
		deps.Users = cache.NewCachedUserService(deps.Users, store, logger)
		deps.Cache = store
	}

	deps.Submissions = faslog.NewLoggingSubmissionService(deps.Submissions, logger)
	deps.Journals = faslog.NewLoggingJournalService(deps.Journals, logger)
	deps.Users = faslog.NewLoggingUserService(deps.Users, logger)

	return kongCtx.Run(deps)
}

// defaultDBPath returns the cache database path under the user's data
// directory, falling back to the working directory.
func defaultDBPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "faapi.db"
	}
	return filepath.Join(dir, "faapi", "faapi.db")
}
