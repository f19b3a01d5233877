package spotify

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// Endpoint is Spotify's OAuth2 endpoint.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.spotify.com/authorize",
	TokenURL: "https://accounts.spotify.com/api/token",
}

// NewAuthorizedHTTPClient returns an HTTP client that exchanges the long-lived
// refresh token for access tokens and renews them as they expire.
func NewAuthorizedHTTPClient(ctx context.Context, clientID, clientSecret, refreshToken string) *http.Client {
	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     Endpoint,
		Scopes:       []string{"user-read-recently-played"},
	}
	return cfg.Client(ctx, &oauth2.Token{RefreshToken: refreshToken})
}
