package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
)

// recentlyPlayedLimit is the API maximum per page.
const recentlyPlayedLimit = 50

// RecentlyPlayed returns the user's most recent plays. Podcast episodes are dropped.
func (c *Client) RecentlyPlayed(ctx context.Context) ([]domain.Play, error) {
	recentURL, err := url.Parse(fmt.Sprintf("%s/me/player/recently-played", c.baseURL))
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: invalid recently played url: %w", err)
	}
	query := recentURL.Query()
	query.Set("limit", fmt.Sprint(recentlyPlayedLimit))
	recentURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, recentURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: failed to create recently played request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: recently played request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify adapter: recently played status %d", resp.StatusCode)
	}

	var body recentlyPlayedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("spotify adapter: recently played decode error: %w", err)
	}

	plays := make([]domain.Play, 0, len(body.Items))
	for _, item := range body.Items {
		if item.Track.Type != "" && item.Track.Type != "track" {
			continue
		}
		plays = append(plays, mapPlayToDomain(item))
	}
	return plays, nil
}
