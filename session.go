package faapi

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Cookie is a single Fur Affinity authentication cookie ("a", "b", etc.).
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Session carries the cookies used to authenticate requests to the site.
// The zero value is a valid anonymous session.
type Session struct {
	Cookies []Cookie `json:"cookies"`
}

// Anonymous returns a session with no cookies.
func Anonymous() *Session {
	return &Session{}
}

// IsAnonymous reports whether the session carries no cookies. A nil
// session is anonymous.
func (s *Session) IsAnonymous() bool {
	return s == nil || len(s.Cookies) == 0
}

// Validate returns an error if any cookie is missing a name.
func (s *Session) Validate() error {
	if s == nil {
		return nil
	}
	for _, c := range s.Cookies {
		if c.Name == "" {
			return Errorf(EINVALID, "cookie name required")
		}
	}
	return nil
}

// ID returns a stable identifier for the session's cookie set, suitable as
// a cache key component. Anonymous sessions return "anonymous".
func (s *Session) ID() string {
	if s.IsAnonymous() {
		return "anonymous"
	}
	h := xxhash.New()
	for _, c := range s.Cookies {
		_, _ = h.WriteString(c.Name)
		_, _ = h.WriteString("=")
		_, _ = h.WriteString(c.Value)
		_, _ = h.WriteString(";")
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
