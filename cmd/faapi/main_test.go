package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/FurryCoders/faapi/cmd/faapi"
)

const journalPage = `<!DOCTYPE html>
<html>
<head>
<title>Convention schedule -- Fur Affinity [dot] net</title>
<meta property="og:url" content="https://www.furaffinity.net/journal/7777/">
</head>
<body>
<div id="journal-page">
	<div class="journal-page-header">
		<a href="/user/fender/"><img class="journal-user-icon" src="//a.furaffinity.net/fender.gif"></a>
		<span class="js-displayName">~Fender</span>
		<span class="popup_date" title="Aug 29, 2026 09:00 AM">two days ago</span>
	</div>
	<h2 class="journal-title">Convention schedule</h2>
	<div class="journal-header">Hi all!</div>
	<div class="journal-content">See everyone at table 12.</div>
	<div class="journal-footer">Bye.</div>
</div>
</body>
</html>`

// newSite serves canned pages the way the live site would, including the
// robots.txt the client checks at startup.
func newSite(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /search\n"))
			return
		}
		page, ok := pages[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_Get(t *testing.T) {
	t.Parallel()

	t.Run("FetchesJournal", func(t *testing.T) {
		t.Parallel()

		srv := newSite(t, map[string]string{"/journal/7777/": journalPage})

		m := main.NewMain()
		defer m.Close()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--base-url", srv.URL, "get", "journal", "7777"}, stdout, stderr)
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, float64(7777), got["id"])
		assert.Equal(t, "Convention schedule", got["title"])
	})

	t.Run("MissingPageReportsNotFound", func(t *testing.T) {
		t.Parallel()

		srv := newSite(t, nil)

		m := main.NewMain()
		defer m.Close()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--base-url", srv.URL, "get", "journal", "1"}, stdout, stderr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("RejectsNonNumericID", func(t *testing.T) {
		t.Parallel()

		srv := newSite(t, nil)

		m := main.NewMain()
		defer m.Close()

		err := m.Run(context.Background(), []string{"--base-url", srv.URL, "get", "submission", "abc"}, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be a number")
	})

	t.Run("RejectsMalformedCookieFlag", func(t *testing.T) {
		t.Parallel()

		srv := newSite(t, nil)

		m := main.NewMain()
		defer m.Close()

		err := m.Run(context.Background(), []string{"--base-url", srv.URL, "get", "-c", "nodelimiter", "user", "fender"}, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name=value")
	})
}

func TestRun_NoCommand(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	defer m.Close()

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), nil, stdout, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	defer m.Close()

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "serve")
	assert.Contains(t, stdout.String(), "get")
}
