package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FurryCoders/faapi"
	fahttp "github.com/FurryCoders/faapi/http"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("ReturnsPageHTML", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/view/12345/", r.URL.Path)
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>ok</body></html>"))
		}))
		defer srv.Close()

		f := fahttp.NewFetcher(fahttp.WithBaseURL(srv.URL))
		defer f.Close()

		html, err := f.Fetch(context.Background(), faapi.Anonymous(), "/view/12345/")
		require.NoError(t, err)
		assert.Equal(t, "<html><body>ok</body></html>", html)
	})

	t.Run("SendsSessionCookies", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a, err := r.Cookie("a")
			require.NoError(t, err)
			assert.Equal(t, "cookie-value", a.Value)
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer srv.Close()

		f := fahttp.NewFetcher(fahttp.WithBaseURL(srv.URL))
		defer f.Close()

		session := &faapi.Session{Cookies: []faapi.Cookie{{Name: "a", Value: "cookie-value"}}}
		_, err := f.Fetch(context.Background(), session, "/msg/submissions/")
		require.NoError(t, err)
	})

	t.Run("MapsStatusCodes", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			status   int
			wantCode string
		}{
			{http.StatusNotFound, faapi.ENOTFOUND},
			{http.StatusUnauthorized, faapi.EUNAUTHORIZED},
			{http.StatusForbidden, faapi.EUNAUTHORIZED},
			{http.StatusInternalServerError, faapi.EUNAVAILABLE},
			{http.StatusServiceUnavailable, faapi.EUNAVAILABLE},
		}

		for _, tt := range tests {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			f := fahttp.NewFetcher(fahttp.WithBaseURL(srv.URL))
			_, err := f.Fetch(context.Background(), faapi.Anonymous(), "/view/1/")
			require.Error(t, err, "status %d", tt.status)
			assert.Equal(t, tt.wantCode, faapi.ErrorCode(err), "status %d", tt.status)

			srv.Close()
			_ = f.Close()
		}
	})

	t.Run("DecodesDeclaredCharset", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=windows-1252")
			// 0xE9 is é in windows-1252
			_, _ = w.Write([]byte{'c', 'a', 'f', 0xE9})
		}))
		defer srv.Close()

		f := fahttp.NewFetcher(fahttp.WithBaseURL(srv.URL))
		defer f.Close()

		html, err := f.Fetch(context.Background(), faapi.Anonymous(), "/view/1/")
		require.NoError(t, err)
		assert.Equal(t, "café", html)
	})

	t.Run("UndecodableContent", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=no-such-encoding")
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer srv.Close()

		f := fahttp.NewFetcher(fahttp.WithBaseURL(srv.URL))
		defer f.Close()

		_, err := f.Fetch(context.Background(), faapi.Anonymous(), "/view/1/")
		require.Error(t, err)
		assert.Equal(t, faapi.EINVALID, faapi.ErrorCode(err))
	})

	t.Run("InvalidBytesUnderDeclaredUTF8", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte{'<', 'p', '>', 0xFF, 0xFE, 0xFD})
		}))
		defer srv.Close()

		f := fahttp.NewFetcher(fahttp.WithBaseURL(srv.URL))
		defer f.Close()

		_, err := f.Fetch(context.Background(), faapi.Anonymous(), "/view/1/")
		require.Error(t, err)
		assert.Equal(t, faapi.EINVALID, faapi.ErrorCode(err))
	})

	t.Run("UnreachableUpstream", func(t *testing.T) {
		t.Parallel()

		f := fahttp.NewFetcher(fahttp.WithBaseURL("http://127.0.0.1:1"))
		defer f.Close()

		_, err := f.Fetch(context.Background(), faapi.Anonymous(), "/view/1/")
		require.Error(t, err)
		assert.Equal(t, faapi.EUNAVAILABLE, faapi.ErrorCode(err))
	})

	t.Run("CanceledContext", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f := fahttp.NewFetcher(fahttp.WithBaseURL(srv.URL))
		defer f.Close()

		_, err := f.Fetch(ctx, faapi.Anonymous(), "/view/1/")
		require.ErrorIs(t, err, context.Canceled)
	})
}
