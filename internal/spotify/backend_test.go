package spotify

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cadencefm/cadence/internal/catalog"
	"github.com/google/uuid"
)

func trackJSON(offset, total int) string {
	return fmt.Sprintf(`{
		"tracks": {
			"items": [
				{
					"id": "track-%d",
					"name": "Karma Police",
					"artists": [{"id": "ar1", "name": "Radiohead", "uri": "spotify:artist:ar1"}],
					"album": {"id": "al1", "name": "OK Computer", "release_date": "1997-05-21"},
					"duration_ms": 261000,
					"uri": "spotify:track:track-%d"
				}
			],
			"total": %d,
			"limit": 1,
			"offset": %d
		}
	}`, offset, offset, total, offset)
}

const albumJSON = `{
	"albums": {
		"items": [
			{
				"id": "al1",
				"name": "OK Computer",
				"artists": [{"id": "ar1", "name": "Radiohead"}],
				"release_date": "1997-05-21",
				"images": [{"url": "https://img/1", "height": 64, "width": 64}],
				"uri": "spotify:album:al1"
			}
		],
		"total": 4,
		"limit": 1,
		"offset": 0
	}
}`

const artistJSON = `{
	"artists": {
		"items": [{"id": "ar1", "name": "Radiohead", "uri": "spotify:artist:ar1"}],
		"total": 2,
		"limit": 1,
		"offset": 0
	}
}`

const playlistJSON = `{
	"playlists": {
		"items": [
			{
				"id": "pl1",
				"name": "Gloomy Sunday",
				"images": [{"url": "https://img/pl1"}],
				"uri": "spotify:playlist:pl1"
			}
		],
		"total": 9,
		"limit": 1,
		"offset": 0
	}
}`

// completion collects dispatch invocations for assertions.
type completion struct {
	mu    sync.Mutex
	calls []uuid.UUID
	done  chan struct{}
}

func newCompletion() *completion {
	return &completion{done: make(chan struct{}, 8)}
}

func (c *completion) fn(key uuid.UUID, res catalog.Resource) {
	c.mu.Lock()
	c.calls = append(c.calls, key)
	c.mu.Unlock()
	c.done <- struct{}{}
}

func (c *completion) wait(t *testing.T) {
	t.Helper()
	select {
	case <-c.done:
	case <-time.After(5 * time.Second):
		t.Fatal("search operation never completed")
	}
}

func (c *completion) keys() []uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]uuid.UUID(nil), c.calls...)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") == "" {
			t.Errorf("missing q parameter in %s", r.URL)
		}
		w.Header().Set("Content-Type", "application/json")
		switch q.Get("type") {
		case "track":
			fmt.Fprint(w, trackJSON(0, 42))
		case "album":
			fmt.Fprint(w, albumJSON)
		case "artist":
			fmt.Fprint(w, artistJSON)
		case "playlist":
			fmt.Fprint(w, playlistJSON)
		default:
			http.Error(w, "bad type", http.StatusBadRequest)
		}
	}))
}

func allWindows(count int) catalog.Windows {
	w := catalog.Window{Count: count}
	return catalog.Windows{Tracks: w, Albums: w, Artists: w, Playlists: w}
}

func TestBackendCreateSearch(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	backend := NewBackend(BackendConfig{BaseURL: server.URL, RateLimit: 1000})

	t.Run("Loads All Categories", func(t *testing.T) {
		comp := newCompletion()
		key := uuid.New()

		res, err := backend.CreateSearch("karma police", catalog.KindStandard, allWindows(1), comp.fn, key)
		if err != nil {
			t.Fatalf("CreateSearch failed: %v", err)
		}
		comp.wait(t)

		if keys := comp.keys(); len(keys) != 1 || keys[0] != key {
			t.Errorf("expected one completion with the issued key, got %v", keys)
		}
		if !res.IsLoaded() {
			t.Fatal("resource should be loaded")
		}
		if res.ErrorCode() != catalog.CodeOK {
			t.Fatalf("unexpected error code: %v", res.ErrorCode())
		}
		if res.Query() != "karma police" {
			t.Errorf("unexpected query: %q", res.Query())
		}

		if res.NumTracks() != 1 || res.TotalTracks() != 42 {
			t.Errorf("tracks: num %d total %d", res.NumTracks(), res.TotalTracks())
		}
		track := res.TrackAt(0)
		if track.Name != "Karma Police" || track.Artist != "Radiohead" || track.Album != "OK Computer" {
			t.Errorf("unexpected track mapping: %+v", track)
		}

		if res.NumAlbums() != 1 || res.TotalAlbums() != 4 {
			t.Errorf("albums: num %d total %d", res.NumAlbums(), res.TotalAlbums())
		}
		if album := res.AlbumAt(0); album.Year != 1997 {
			t.Errorf("release year not parsed: %+v", album)
		}

		if res.NumArtists() != 1 || res.TotalArtists() != 2 {
			t.Errorf("artists: num %d total %d", res.NumArtists(), res.TotalArtists())
		}

		if res.NumPlaylists() != 1 || res.TotalPlaylists() != 9 {
			t.Errorf("playlists: num %d total %d", res.NumPlaylists(), res.TotalPlaylists())
		}
		if res.PlaylistNameAt(0) != "Gloomy Sunday" || res.PlaylistImageURIAt(0) != "https://img/pl1" {
			t.Errorf("unexpected playlist mapping: %q %q", res.PlaylistNameAt(0), res.PlaylistImageURIAt(0))
		}
	})

	t.Run("Skips Zero Count Categories", func(t *testing.T) {
		comp := newCompletion()

		windows := catalog.Windows{Tracks: catalog.Window{Count: 1}}
		res, err := backend.CreateSearch("karma police", catalog.KindStandard, windows, comp.fn, uuid.New())
		if err != nil {
			t.Fatalf("CreateSearch failed: %v", err)
		}
		comp.wait(t)

		if res.NumTracks() != 1 {
			t.Errorf("expected track results, got %d", res.NumTracks())
		}
		if res.NumAlbums() != 0 || res.NumArtists() != 0 || res.NumPlaylists() != 0 {
			t.Error("zero-count categories must not be requested")
		}
	})

	t.Run("Empty Query Rejected", func(t *testing.T) {
		comp := newCompletion()
		if _, err := backend.CreateSearch("", catalog.KindStandard, allWindows(1), comp.fn, uuid.New()); err == nil {
			t.Fatal("expected error for empty query")
		}
	})

	t.Run("Pending Before Completion", func(t *testing.T) {
		slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(50 * time.Millisecond)
			fmt.Fprint(w, trackJSON(0, 1))
		}))
		defer slow.Close()

		slowBackend := NewBackend(BackendConfig{BaseURL: slow.URL, RateLimit: 1000})
		comp := newCompletion()

		res, err := slowBackend.CreateSearch("slow", catalog.KindStandard, catalog.Windows{Tracks: catalog.Window{Count: 1}}, comp.fn, uuid.New())
		if err != nil {
			t.Fatalf("CreateSearch failed: %v", err)
		}
		if res.IsLoaded() {
			t.Error("resource should not be loaded immediately")
		}
		if res.NumTracks() != 0 || res.Query() != "" {
			t.Error("pending resource must report empty data")
		}
		comp.wait(t)
		if !res.IsLoaded() {
			t.Error("resource should load eventually")
		}
	})
}

func TestBackendErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   catalog.Code
	}{
		{"Bad Request", http.StatusBadRequest, catalog.CodeBadRequest},
		{"Unauthorized", http.StatusUnauthorized, catalog.CodeUnauthorized},
		{"Forbidden", http.StatusForbidden, catalog.CodeUnauthorized},
		{"Rate Limited", http.StatusTooManyRequests, catalog.CodeRateLimited},
		{"Server Error", http.StatusInternalServerError, catalog.CodeServiceUnavailable},
		{"Teapot", http.StatusTeapot, catalog.CodeOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tc.status)
			}))
			defer server.Close()

			backend := NewBackend(BackendConfig{BaseURL: server.URL, RateLimit: 1000})
			comp := newCompletion()

			res, err := backend.CreateSearch("fail", catalog.KindStandard, allWindows(1), comp.fn, uuid.New())
			if err != nil {
				t.Fatalf("CreateSearch failed: %v", err)
			}
			comp.wait(t)

			if res.IsLoaded() {
				t.Error("failed operation must not report loaded")
			}
			if res.ErrorCode() != tc.want {
				t.Errorf("expected code %v, got %v", tc.want, res.ErrorCode())
			}
		})
	}

	t.Run("Network Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // refuse connections

		backend := NewBackend(BackendConfig{BaseURL: server.URL, RateLimit: 1000})
		comp := newCompletion()

		res, err := backend.CreateSearch("unreachable", catalog.KindStandard, allWindows(1), comp.fn, uuid.New())
		if err != nil {
			t.Fatalf("CreateSearch failed: %v", err)
		}
		comp.wait(t)

		if res.ErrorCode() != catalog.CodeNetwork {
			t.Errorf("expected network code, got %v", res.ErrorCode())
		}
	})
}

func TestBackendMakeLink(t *testing.T) {
	backend := NewBackend(BackendConfig{})

	res := newResource("karma police")
	link, err := backend.MakeLink(res)
	if err != nil {
		t.Fatalf("MakeLink failed: %v", err)
	}
	if link.URI != "spotify:search:karma+police" {
		t.Errorf("unexpected link: %q", link.URI)
	}

	if _, err := backend.MakeLink(newResource("")); err == nil {
		t.Error("expected error for resource without query")
	}
}

func TestResourceRefCounting(t *testing.T) {
	res := newResource("refs")
	if got := res.refs.Load(); got != 1 {
		t.Fatalf("new resource should hold one reference, got %d", got)
	}
	res.Acquire()
	if got := res.refs.Load(); got != 2 {
		t.Errorf("expected 2 refs, got %d", got)
	}
	res.Release()
	res.Release()
	if got := res.refs.Load(); got != 0 {
		t.Errorf("expected 0 refs, got %d", got)
	}
}
