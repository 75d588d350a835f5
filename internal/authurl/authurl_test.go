package authurl

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		AuthorizeURL: "https://unsplash.com/oauth/authorize",
		ClientID:     "client-123",
		RedirectURI:  "urn:ietf:wg:oauth:2.0:oob",
		Scope:        "public read_user write_likes",
	}
}

func TestAuthorizeURL(t *testing.T) {
	u, err := AuthorizeURL(testConfig())
	require.NoError(t, err)

	require.Equal(t, "https", u.Scheme)
	require.Equal(t, "unsplash.com", u.Host)
	require.Equal(t, "/oauth/authorize", u.Path)

	q := u.Query()
	require.Equal(t, "client-123", q.Get("client_id"))
	require.Equal(t, "urn:ietf:wg:oauth:2.0:oob", q.Get("redirect_uri"))
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "public read_user write_likes", q.Get("scope"))

	// Spaces in the scope must come out as '+', the separator the
	// provider expects.
	require.Contains(t, u.RawQuery, "scope=public+read_user+write_likes")
}

func TestAuthorizeURLInvalid(t *testing.T) {
	cfg := testConfig()
	cfg.AuthorizeURL = "://not-a-url"
	_, err := AuthorizeURL(cfg)
	require.Error(t, err)
}

func TestCodeFromNativeCallback(t *testing.T) {
	u, err := url.Parse("https://unsplash.com/oauth/authorize/native?code=abc123")
	require.NoError(t, err)

	code, ok := Code(u)
	require.True(t, ok)
	require.Equal(t, "abc123", code)
}

func TestCodeRejectsOtherURLs(t *testing.T) {
	cases := []string{
		"https://unsplash.com/oauth/authorize?client_id=x", // ordinary navigation
		"https://unsplash.com/login",
		"https://unsplash.com/oauth/authorize/native", // no code param
		"https://unsplash.com/oauth/authorize/native?state=x",
	}
	for _, raw := range cases {
		u, err := url.Parse(raw)
		require.NoError(t, err)
		_, ok := Code(u)
		require.False(t, ok, "expected no code from %s", raw)
	}
}

func TestCodeNilURL(t *testing.T) {
	_, ok := Code(nil)
	require.False(t, ok)
}
