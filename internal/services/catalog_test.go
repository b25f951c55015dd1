package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/mymusic/internal/shared"
	th "github.com/desertthunder/mymusic/internal/testing"
)

const searchBody = `{
	"tracks": {
		"total": 2,
		"items": [
			{
				"id": "4uLU6hMCjMI75M1A2tKUQC",
				"name": "Never Gonna Give You Up",
				"artists": [{"id": "a1", "name": "Rick Astley"}],
				"album": {"id": "al1", "name": "Whenever You Need Somebody"},
				"duration_ms": 213573,
				"popularity": 80,
				"uri": "spotify:track:4uLU6hMCjMI75M1A2tKUQC"
			},
			{
				"id": "t2",
				"name": "Duet",
				"artists": [{"name": "One"}, {"name": "Two"}],
				"album": {"name": "Split"},
				"uri": "spotify:track:t2"
			}
		]
	}
}`

func newTestCatalog(t *testing.T, handler http.HandlerFunc, apiKey string) *CatalogService {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewCatalogService(shared.CatalogConfig{
		Endpoint: srv.URL + "/",
		APIKey:   apiKey,
	}, srv.Client(), nil)
}

func TestCatalogService(t *testing.T) {
	ctx := context.Background()

	t.Run("Search", func(t *testing.T) {
		t.Run("sends query and bearer key", func(t *testing.T) {
			catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/search" {
					t.Errorf("expected /search, got %s", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer secret" {
					t.Errorf("expected bearer key, got %q", got)
				}
				q := r.URL.Query()
				if q.Get("q") != "rick astley" || q.Get("type") != "track" || q.Get("limit") != "10" {
					t.Errorf("unexpected query %s", r.URL.RawQuery)
				}
				w.Write([]byte(searchBody))
			}, "secret")

			tracks, err := catalog.Search(ctx, "rick astley", 0)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}

			if len(tracks) != 2 {
				t.Fatalf("expected 2 tracks, got %d", len(tracks))
			}
			if tracks[0].Name != "Never Gonna Give You Up" || tracks[0].Album != "Whenever You Need Somebody" {
				t.Errorf("unexpected first track %+v", tracks[0])
			}
			if tracks[0].URI != "spotify:track:4uLU6hMCjMI75M1A2tKUQC" {
				t.Errorf("unexpected uri %s", tracks[0].URI)
			}
			if tracks[1].Artist() != "One, Two" {
				t.Errorf("expected joined artists, got %q", tracks[1].Artist())
			}
		})

		t.Run("explicit limit", func(t *testing.T) {
			catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("limit"); got != "3" {
					t.Errorf("expected limit 3, got %s", got)
				}
				w.Write([]byte(`{"tracks": {"items": []}}`))
			}, "secret")

			tracks, err := catalog.Search(ctx, "x", 3)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(tracks) != 0 {
				t.Errorf("expected no tracks, got %d", len(tracks))
			}
		})

		t.Run("non-2xx status", func(t *testing.T) {
			catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "quota exceeded", http.StatusTooManyRequests)
			}, "secret")

			_, err := catalog.Search(ctx, "x", 0)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("malformed body", func(t *testing.T) {
			catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{not json`))
			}, "secret")

			_, err := catalog.Search(ctx, "x", 0)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("missing api key", func(t *testing.T) {
			called := false
			catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
				called = true
			}, "")

			_, err := catalog.Search(ctx, "x", 0)
			if !errors.Is(err, shared.ErrMissingAPIKey) {
				t.Errorf("expected ErrMissingAPIKey, got %v", err)
			}
			if called {
				t.Error("no request should be sent without a key")
			}
		})

		t.Run("cancelled context", func(t *testing.T) {
			catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(searchBody))
			}, "secret")

			cctx, cancel := context.WithCancel(ctx)
			cancel()

			if _, err := catalog.Search(cctx, "x", 0); err == nil {
				t.Error("expected error for cancelled context")
			}
		})
	})

	t.Run("Track", func(t *testing.T) {
		catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/tracks" {
				t.Errorf("expected /tracks, got %s", r.URL.Path)
			}
			if r.URL.Query().Get("ids") == "known" {
				w.Write([]byte(`{"tracks": [{"id": "known", "name": "Found", "uri": "spotify:track:known"}]}`))
				return
			}
			w.Write([]byte(`{"tracks": [null]}`))
		}, "secret")

		t.Run("found", func(t *testing.T) {
			track, err := catalog.Track(ctx, "known")
			if err != nil {
				t.Fatalf("Track() error = %v", err)
			}
			if track.Name != "Found" {
				t.Errorf("expected Found, got %s", track.Name)
			}
		})

		t.Run("not found", func(t *testing.T) {
			if _, err := catalog.Track(ctx, "missing"); !errors.Is(err, ErrTrackNotFound) {
				t.Errorf("expected ErrTrackNotFound, got %v", err)
			}
		})

		t.Run("empty id", func(t *testing.T) {
			if _, err := catalog.Track(ctx, ""); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})
	})
}

func TestSpotifyTrackToTrack(t *testing.T) {
	st := SpotifyTrack{
		ID:         "id",
		Name:       "Song",
		Artists:    []SpotifyArtist{{Name: "A"}},
		Album:      SpotifyAlbum{Name: "Album"},
		DurationMS: 1000,
		URI:        "spotify:track:id",
	}

	track := st.ToTrack()
	if track.ID != "id" || track.Album != "Album" || track.DurationMS != 1000 {
		t.Errorf("unexpected mapping %+v", track)
	}
	if len(track.Artists) != 1 || track.Artists[0] != "A" {
		t.Errorf("expected artist names, got %v", track.Artists)
	}
}

func TestCatalogServiceTransport(t *testing.T) {
	ctx := context.Background()
	cfg := shared.CatalogConfig{Endpoint: "http://catalog.test", APIKey: "secret"}

	t.Run("round trip failure", func(t *testing.T) {
		client := &http.Client{Transport: th.NewMockRoundTripper(nil, errors.New("connection refused"))}
		catalog := NewCatalogService(cfg, client, nil)

		if _, err := catalog.Search(ctx, "x", 0); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("body read failure", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusOK, Body: &th.FCloser{}, Header: http.Header{}}
		client := &http.Client{Transport: th.NewMockRoundTripper(resp, nil)}
		catalog := NewCatalogService(cfg, client, nil)

		if _, err := catalog.Search(ctx, "x", 0); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}
