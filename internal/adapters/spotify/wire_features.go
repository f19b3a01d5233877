package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
)

// featuresBatchSize is the API maximum of IDs per audio-features request.
const featuresBatchSize = 100

// AudioFeatures fetches vectors for trackIDs in batches. Every requested ID is
// present in the result; tracks without a vector map to nil. Apps that lost
// access to the endpoint (401/403) get all-nil results rather than an error.
func (c *Client) AudioFeatures(ctx context.Context, trackIDs []string) (map[string]*domain.AudioFeatures, error) {
	result := make(map[string]*domain.AudioFeatures, len(trackIDs))
	for _, id := range trackIDs {
		result[id] = nil
	}

	for start := 0; start < len(trackIDs); start += featuresBatchSize {
		batch := trackIDs[start:min(start+featuresBatchSize, len(trackIDs))]
		features, denied, err := c.getAudioFeaturesBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		if denied {
			log.Printf("WARN spotify adapter: audio features access denied, continuing without features")
			return result, nil
		}
		for _, f := range features {
			if f == nil || f.ID == "" {
				continue
			}
			if _, requested := result[f.ID]; requested {
				result[f.ID] = mapFeaturesToDomain(f)
			}
		}
	}

	return result, nil
}

// getAudioFeaturesBatch fetches audio features for multiple tracks in a single request.
func (c *Client) getAudioFeaturesBatch(ctx context.Context, trackIDs []string) ([]*spotifyAudioFeatures, bool, error) {
	featuresURL, err := url.Parse(fmt.Sprintf("%s/audio-features", c.baseURL))
	if err != nil {
		return nil, false, fmt.Errorf("spotify adapter: invalid features url: %w", err)
	}

	query := featuresURL.Query()
	query.Set("ids", strings.Join(trackIDs, ","))
	featuresURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, featuresURL.String(), nil)
	if err != nil {
		return nil, false, fmt.Errorf("spotify adapter: failed to create features request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, false, fmt.Errorf("spotify adapter: features request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, true, nil
	default:
		return nil, false, fmt.Errorf("spotify adapter: features status %d", resp.StatusCode)
	}

	var body audioFeaturesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, false, fmt.Errorf("spotify adapter: features decode error: %w", err)
	}
	return body.AudioFeatures, false, nil
}
