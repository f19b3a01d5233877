package spotify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ewilliams-labs/cognia/internal/adapters/spotify"
)

func TestRecentlyPlayed(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   bool
		wantPlays int
	}{
		{
			name:   "maps tracks and drops episodes",
			status: http.StatusOK,
			body: `{"items":[
				{"track":{"id":"t1","name":"Song One","type":"track","duration_ms":200000,"artists":[{"name":"A"},{"name":"B"}]},"played_at":"2024-03-01T08:15:00.000Z"},
				{"track":{"id":"e1","name":"Pod","type":"episode","duration_ms":1800000,"artists":[]},"played_at":"2024-03-01T09:00:00.000Z"}
			]}`,
			wantPlays: 1,
		},
		{
			name:    "non-200 is an error",
			status:  http.StatusBadRequest,
			body:    `{"error":{"status":400}}`,
			wantErr: true,
		},
		{
			name:    "malformed body is an error",
			status:  http.StatusOK,
			body:    `{"items":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotLimit string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotLimit = r.URL.Query().Get("limit")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			client := spotify.NewClient(ts.Client(), ts.URL, spotify.WithRetry(1, time.Millisecond))
			plays, err := client.RecentlyPlayed(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error: %v, got: %v", tt.wantErr, err)
			}
			if gotPath != "/me/player/recently-played" || gotLimit != "50" {
				t.Fatalf("unexpected request %s?limit=%s", gotPath, gotLimit)
			}
			if tt.wantErr {
				return
			}
			if len(plays) != tt.wantPlays {
				t.Fatalf("plays: got %d, want %d", len(plays), tt.wantPlays)
			}
			p := plays[0]
			if p.TrackID != "t1" || p.Title != "Song One" || p.Artist != "A, B" || p.DurationMs != 200000 {
				t.Errorf("unexpected play %+v", p)
			}
			if !p.PlayedAt.Equal(time.Date(2024, 3, 1, 8, 15, 0, 0, time.UTC)) {
				t.Errorf("PlayedAt: got %v", p.PlayedAt)
			}
		})
	}
}

func TestAudioFeatures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		ids        []string
		wantErr    bool
		wantNil    []string
		wantEnergy map[string]float64
	}{
		{
			name:   "null and zero vectors stay nil",
			status: http.StatusOK,
			body: `{"audio_features":[
				{"id":"t1","energy":0.8,"valence":0.9,"tempo":128,"acousticness":0.1,"instrumentalness":0,"danceability":0.7},
				null,
				{"id":"t3","energy":0,"valence":0,"tempo":0,"acousticness":0,"instrumentalness":0,"danceability":0}
			]}`,
			ids:        []string{"t1", "t2", "t3"},
			wantNil:    []string{"t2", "t3"},
			wantEnergy: map[string]float64{"t1": 0.8},
		},
		{
			name:    "forbidden degrades to no features",
			status:  http.StatusForbidden,
			body:    `{"error":{"status":403}}`,
			ids:     []string{"t1", "t2"},
			wantNil: []string{"t1", "t2"},
		},
		{
			name:    "server error surfaces",
			status:  http.StatusBadGateway,
			ids:     []string{"t1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotIDs string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotIDs = r.URL.Query().Get("ids")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			client := spotify.NewClient(ts.Client(), ts.URL, spotify.WithRetry(1, time.Millisecond))
			got, err := client.AudioFeatures(context.Background(), tt.ids)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error: %v, got: %v", tt.wantErr, err)
			}
			if tt.wantErr {
				return
			}
			if gotIDs != strings.Join(tt.ids, ",") {
				t.Errorf("ids: got %q", gotIDs)
			}
			if len(got) != len(tt.ids) {
				t.Fatalf("expected an entry per id, got %v", got)
			}
			for _, id := range tt.wantNil {
				if got[id] != nil {
					t.Errorf("%s: expected nil features, got %+v", id, got[id])
				}
			}
			for id, energy := range tt.wantEnergy {
				if got[id] == nil || got[id].Energy != energy {
					t.Errorf("%s: expected energy %v, got %+v", id, energy, got[id])
				}
			}
		})
	}
}

func TestAudioFeatures_Batches(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if n := len(strings.Split(r.URL.Query().Get("ids"), ",")); n > 100 {
			t.Errorf("batch too large: %d", n)
		}
		_, _ = w.Write([]byte(`{"audio_features":[]}`))
	}))
	defer ts.Close()

	ids := make([]string, 250)
	for i := range ids {
		ids[i] = "t" + strings.Repeat("x", i%3) + string(rune('a'+i%26))
	}
	client := spotify.NewClient(ts.Client(), ts.URL)
	if _, err := client.AudioFeatures(context.Background(), ids); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests != 3 {
		t.Fatalf("expected 3 batched requests, got %d", requests)
	}
}
