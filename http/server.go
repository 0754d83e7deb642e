package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/FurryCoders/faapi"
)

// ShutdownTimeout is how long in-flight requests get to finish when the
// server is stopping.
const ShutdownTimeout = 10 * time.Second

// Server exposes the scraping services as a JSON API. Endpoints accept an
// optional request body carrying the session cookies used to authenticate
// against the site.
type Server struct {
	Addr   string
	Logger *slog.Logger

	Submissions faapi.SubmissionService
	Journals    faapi.JournalService
	Users       faapi.UserService

	// ClientLimiter, when set, paces each client IP to keep one slow
	// upstream from being hammered through many API calls.
	ClientLimiter faapi.Limiter
}

// NewServer creates a Server with default logging.
func NewServer() *Server {
	return &Server{
		Addr:   ":8080",
		Logger: slog.Default(),
	}
}

// Handler builds the full middleware and routing chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /docs", s.handleDocs)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /submission/{id}", s.handleSubmission)
	mux.HandleFunc("POST /journal/{id}", s.handleJournal)
	mux.HandleFunc("POST /user/{username}", s.handleUser)
	mux.HandleFunc("POST /gallery/{username}/{page}", s.handleFolder(func(ctx context.Context, session *faapi.Session, username, page string) (any, error) {
		return s.Submissions.Gallery(ctx, session, username, page)
	}))
	mux.HandleFunc("POST /scraps/{username}/{page}", s.handleFolder(func(ctx context.Context, session *faapi.Session, username, page string) (any, error) {
		return s.Submissions.Scraps(ctx, session, username, page)
	}))
	mux.HandleFunc("POST /favorites/{username}/{page}", s.handleFolder(func(ctx context.Context, session *faapi.Session, username, page string) (any, error) {
		return s.Submissions.Favorites(ctx, session, username, page)
	}))
	mux.HandleFunc("POST /journals/{username}/{page}", s.handleFolder(func(ctx context.Context, session *faapi.Session, username, page string) (any, error) {
		return s.Journals.Journals(ctx, session, username, page)
	}))
	mux.HandleFunc("POST /watchlist/{username}/{page}", s.handleFolder(func(ctx context.Context, session *faapi.Session, username, page string) (any, error) {
		return s.Users.Watchlist(ctx, session, username, page)
	}))

	var h http.Handler = mux
	h = s.paceClient(h)
	h = s.collectMetrics(h)
	h = s.logRequests(h)
	h = trimTrailingSlash(h)
	return h
}

// ListenAndServe runs the server until the context is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Addr,
		Handler: s.Handler(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/docs", http.StatusTemporaryRedirect)
}

func (s *Server) handleDocs(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, `Fur Affinity API

POST /submission/{id}        Get a submission
POST /journal/{id}           Get a journal
POST /user/{username}        Get a user's details, profile text, etc.
POST /gallery/{username}/{page}    Submissions in the user's gallery folder
POST /scraps/{username}/{page}     Submissions in the user's scraps folder
POST /favorites/{username}/{page}  Submissions in the user's favorites
POST /journals/{username}/{page}   Journals in the user's journals folder
POST /watchlist/{username}/{page}  Users the user watches
GET  /metrics                Prometheus metrics

Request bodies are optional JSON: {"cookies": [{"name": "a", "value": "..."}]}.
Public resources can be queried without cookies.
`)
}

func (s *Server) handleSubmission(w http.ResponseWriter, r *http.Request) {
	session, err := decodeSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeError(w, r, faapi.Errorf(faapi.EINVALID, "invalid submission ID"))
		return
	}

	sub, err := s.Submissions.Submission(r.Context(), session, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, sub)
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	session, err := decodeSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeError(w, r, faapi.Errorf(faapi.EINVALID, "invalid journal ID"))
		return
	}

	j, err := s.Journals.Journal(r.Context(), session, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, j)
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	session, err := decodeSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	u, err := s.Users.User(r.Context(), session, r.PathValue("username"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, u)
}

// handleFolder adapts the listing operations, which all share the
// username/page path shape.
func (s *Server) handleFolder(fetch func(ctx context.Context, session *faapi.Session, username, page string) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := decodeSession(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		folder, err := fetch(r.Context(), session, r.PathValue("username"), r.PathValue("page"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, r, folder)
	}
}

// decodeSession reads the optional cookies body. An empty body is a valid
// anonymous session.
func decodeSession(r *http.Request) (*faapi.Session, error) {
	var session faapi.Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, faapi.Errorf(faapi.EINVALID, "invalid request body: %v", err)
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}
	return &session, nil
}

// errorStatus maps application error codes to HTTP status codes.
var errorStatus = map[string]int{
	faapi.EINVALID:      http.StatusBadRequest,
	faapi.EUNAUTHORIZED: http.StatusUnauthorized,
	faapi.EFORBIDDEN:    http.StatusForbidden,
	faapi.ENOTFOUND:     http.StatusNotFound,
	faapi.EUNAVAILABLE:  http.StatusBadGateway,
	faapi.EINTERNAL:     http.StatusInternalServerError,
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := faapi.ErrorCode(err)
	status, ok := errorStatus[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	if code == faapi.EINTERNAL {
		s.Logger.Error("internal error", "method", r.Method, "path", r.URL.Path, "err", err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": faapi.ErrorMessage(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode response", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}
