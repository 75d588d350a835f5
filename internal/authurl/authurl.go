// Package authurl builds the provider authorization URL and extracts the
// code from the native redirect callback. Pure functions, no I/O.
package authurl

import (
	"fmt"
	"net/url"
)

// NativeCallbackPath is the provider path that carries the authorization
// code back to a non-web client.
const NativeCallbackPath = "/oauth/authorize/native"

type Config struct {
	AuthorizeURL string
	ClientID     string
	RedirectURI  string
	Scope        string
}

// AuthorizeURL assembles the provider's authorize endpoint with the
// client id, redirect URI, response type and scope as query parameters.
func AuthorizeURL(cfg Config) (*url.URL, error) {
	u, err := url.Parse(cfg.AuthorizeURL)
	if err != nil {
		return nil, fmt.Errorf("parse authorize url: %w", err)
	}

	q := url.Values{}
	q.Set("client_id", cfg.ClientID)
	q.Set("redirect_uri", cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", cfg.Scope)
	u.RawQuery = q.Encode()

	return u, nil
}

// Code extracts the authorization code from a callback URL. Any URL that
// is not the native redirect (including the provider's ordinary
// navigation URLs) yields false so the caller lets it proceed.
func Code(u *url.URL) (string, bool) {
	if u == nil || u.Path != NativeCallbackPath {
		return "", false
	}
	code := u.Query().Get("code")
	if code == "" {
		return "", false
	}
	return code, true
}
