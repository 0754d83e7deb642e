package faapi_test

import (
	"errors"
	"testing"

	"github.com/FurryCoders/faapi"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := faapi.Errorf(faapi.ENOTFOUND, "submission %d not found", 42)

	assert.Equal(t, faapi.ENOTFOUND, faapi.ErrorCode(err))
	assert.Equal(t, "submission 42 not found", faapi.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, faapi.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, faapi.EINTERNAL, faapi.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, faapi.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	// Internal details must not leak to clients.
	assert.Equal(t, "Internal error.", faapi.ErrorMessage(errors.New("pq: connection refused")))
}

func TestErrorMessage_InternalApplicationError(t *testing.T) {
	t.Parallel()

	// EINTERNAL messages are for logs, not clients.
	err := faapi.Errorf(faapi.EINTERNAL, "sqlite file corrupt at offset 4096")
	assert.Equal(t, "Internal error.", faapi.ErrorMessage(err))
}

func TestSession_ID(t *testing.T) {
	t.Parallel()

	t.Run("anonymous session has fixed ID", func(t *testing.T) {
		t.Parallel()

		s := &faapi.Session{}
		assert.Equal(t, "anonymous", s.ID())
	})

	t.Run("same cookies produce same ID", func(t *testing.T) {
		t.Parallel()

		a := &faapi.Session{Cookies: []faapi.Cookie{{Name: "a", Value: "x"}, {Name: "b", Value: "y"}}}
		b := &faapi.Session{Cookies: []faapi.Cookie{{Name: "a", Value: "x"}, {Name: "b", Value: "y"}}}
		assert.Equal(t, a.ID(), b.ID())
	})

	t.Run("different cookies produce different IDs", func(t *testing.T) {
		t.Parallel()

		a := &faapi.Session{Cookies: []faapi.Cookie{{Name: "a", Value: "x"}}}
		b := &faapi.Session{Cookies: []faapi.Cookie{{Name: "a", Value: "z"}}}
		assert.NotEqual(t, a.ID(), b.ID())
	})
}

func TestSession_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts anonymous session", func(t *testing.T) {
		t.Parallel()

		s := &faapi.Session{}
		assert.NoError(t, s.Validate())
	})

	t.Run("rejects cookie without name", func(t *testing.T) {
		t.Parallel()

		s := &faapi.Session{Cookies: []faapi.Cookie{{Value: "x"}}}
		err := s.Validate()
		assert.Equal(t, faapi.EINVALID, faapi.ErrorCode(err))
	})
}

func TestNormalizeUsername(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fenderfox", faapi.NormalizeUsername("Fender_Fox"))
	assert.Equal(t, "fender", faapi.NormalizeUsername("  fender  "))
	assert.Equal(t, "", faapi.NormalizeUsername("_"))
}

func TestRobots_Allowed(t *testing.T) {
	t.Parallel()

	r := &faapi.Robots{Disallowed: []string{"/msg/", "/search/"}}

	assert.True(t, r.Allowed("/view/12345"))
	assert.False(t, r.Allowed("/msg/submissions/"))
	assert.False(t, r.Allowed("msg/submissions/")) // missing leading slash
}

func TestCountComments(t *testing.T) {
	t.Parallel()

	comments := []*faapi.Comment{
		{ID: 1, Replies: []*faapi.Comment{
			{ID: 2},
			{ID: 3, Replies: []*faapi.Comment{{ID: 4}}},
		}},
		{ID: 5},
	}

	assert.Equal(t, 5, faapi.CountComments(comments))
}
