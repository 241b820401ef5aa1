package auth

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

const (
	// SpotifyAuthURL is the Spotify authorization endpoint.
	SpotifyAuthURL = "https://accounts.spotify.com/authorize"

	// SpotifyTokenURL is the Spotify token endpoint.
	SpotifyTokenURL = "https://accounts.spotify.com/api/token"

	// DefaultRedirectURI is the default callback URI for the local server.
	DefaultRedirectURI = "http://127.0.0.1:8888/callback"
)

// DefaultScopes are the scopes the playback bar needs: reading the player
// state and sending seek and transport commands.
var DefaultScopes = []string{
	"user-read-playback-state",
	"user-modify-playback-state",
	"user-read-currently-playing",
	"user-read-private",
}

// Config holds the OAuth configuration.
type Config struct {
	ClientID    string
	RedirectURI string
	Scopes      []string
}

// AuthURLParams contains the parameters for building an authorization URL.
type AuthURLParams struct {
	ClientID    string
	RedirectURI string
	Scopes      []string
}

// BuildAuthURL constructs the Spotify authorization URL with PKCE parameters.
func BuildAuthURL(params AuthURLParams, pkce *PKCE) string {
	u, _ := url.Parse(SpotifyAuthURL)

	q := u.Query()
	q.Set("client_id", params.ClientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", params.RedirectURI)
	q.Set("code_challenge_method", "S256")
	q.Set("code_challenge", pkce.Challenge)
	q.Set("state", pkce.State)

	if len(params.Scopes) > 0 {
		q.Set("scope", strings.Join(params.Scopes, " "))
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// NewConfig creates a new OAuth configuration with defaults.
func NewConfig(clientID string) *Config {
	return &Config{
		ClientID:    clientID,
		RedirectURI: DefaultRedirectURI,
		Scopes:      DefaultScopes,
	}
}

// BuildAuthURL builds an auth URL from the config.
func (c *Config) BuildAuthURL(pkce *PKCE) string {
	return BuildAuthURL(AuthURLParams{
		ClientID:    c.ClientID,
		RedirectURI: c.RedirectURI,
		Scopes:      c.Scopes,
	}, pkce)
}

// CallbackAddress returns the port and path the local callback server must
// listen on for the configured redirect URI.
func (c *Config) CallbackAddress() (port int, path string, err error) {
	u, err := url.Parse(c.RedirectURI)
	if err != nil {
		return 0, "", fmt.Errorf("invalid redirect uri: %w", err)
	}

	_, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		switch u.Scheme {
		case "http":
			portStr = "80"
		case "https":
			portStr = "443"
		default:
			return 0, "", fmt.Errorf("redirect uri %q has no port", c.RedirectURI)
		}
	}
	port, err = strconv.Atoi(portStr)
	if err != nil {
		return 0, "", fmt.Errorf("invalid redirect uri port %q", portStr)
	}

	path = u.Path
	if path == "" {
		path = "/"
	}
	return port, path, nil
}
