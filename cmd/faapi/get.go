package main

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/FurryCoders/faapi"
)

// Run fetches a single resource and prints it to stdout as JSON.
func (c *GetCmd) Run(deps *Dependencies) error {
	session, err := sessionFromFlags(c.Cookie)
	if err != nil {
		return err
	}

	var result any
	switch c.Resource {
	case "submission":
		id, err := strconv.ParseInt(c.Key, 10, 64)
		if err != nil {
			return faapi.Errorf(faapi.EINVALID, "submission ID must be a number, got %q", c.Key)
		}
		result, err = deps.Submissions.Submission(deps.Ctx, session, id)
		if err != nil {
			return err
		}
	case "journal":
		id, err := strconv.ParseInt(c.Key, 10, 64)
		if err != nil {
			return faapi.Errorf(faapi.EINVALID, "journal ID must be a number, got %q", c.Key)
		}
		result, err = deps.Journals.Journal(deps.Ctx, session, id)
		if err != nil {
			return err
		}
	case "user":
		result, err = deps.Users.User(deps.Ctx, session, c.Key)
		if err != nil {
			return err
		}
	case "gallery":
		result, err = deps.Submissions.Gallery(deps.Ctx, session, c.Key, c.Page)
		if err != nil {
			return err
		}
	case "scraps":
		result, err = deps.Submissions.Scraps(deps.Ctx, session, c.Key, c.Page)
		if err != nil {
			return err
		}
	case "favorites":
		result, err = deps.Submissions.Favorites(deps.Ctx, session, c.Key, c.Page)
		if err != nil {
			return err
		}
	case "journals":
		result, err = deps.Journals.Journals(deps.Ctx, session, c.Key, c.Page)
		if err != nil {
			return err
		}
	case "watchlist":
		result, err = deps.Users.Watchlist(deps.Ctx, session, c.Key, c.Page)
		if err != nil {
			return err
		}
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// sessionFromFlags builds a session from repeated name=value cookie flags.
func sessionFromFlags(cookies []string) (*faapi.Session, error) {
	if len(cookies) == 0 {
		return faapi.Anonymous(), nil
	}
	session := &faapi.Session{}
	for _, raw := range cookies {
		name, value, ok := strings.Cut(raw, "=")
		if !ok || name == "" {
			return nil, faapi.Errorf(faapi.EINVALID, "cookie must be name=value, got %q", raw)
		}
		session.Cookies = append(session.Cookies, faapi.Cookie{Name: name, Value: value})
	}
	return session, nil
}
