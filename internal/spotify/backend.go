// Spotify Web API implementation of [catalog.Backend]
package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cadencefm/cadence/internal/catalog"
	"github.com/cadencefm/cadence/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	defaultRateLimit      = 5.0
	defaultRequestTimeout = 30 * time.Second
)

// BackendConfig configures a Spotify search backend.
type BackendConfig struct {
	ClientID     string
	ClientSecret string

	// BaseURL overrides the Web API base URL, used by tests.
	BaseURL string
	// HTTPClient overrides the underlying HTTP client. When credentials are
	// present it is used as the transport for the OAuth2 token exchange.
	HTTPClient *http.Client
	// RateLimit caps outgoing requests per second. Defaults to 5.
	RateLimit float64
	// RequestTimeout bounds one whole search operation. Defaults to 30s.
	RequestTimeout time.Duration

	Logger *log.Logger
}

// Backend executes catalog search operations against the Spotify Web API.
//
// Each created search runs on its own goroutine: one /search request per
// requested category window, results buffered into an in-memory resource,
// completion reported through the [catalog.CompleteFunc] the operation was
// created with. The Web API exposes no "did you mean" suggestion, so that
// field stays empty.
type Backend struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
	baseURL    string
	timeout    time.Duration
}

var _ catalog.Backend = (*Backend)(nil)

// NewBackend creates a Backend. With credentials present the client
// authenticates via the OAuth2 client credentials grant; searching needs no
// user consent scope.
func NewBackend(cfg BackendConfig) *Backend {
	if cfg.BaseURL == "" {
		cfg.BaseURL = spotifyBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = shared.NewLogger(nil)
	}

	client := cfg.HTTPClient
	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		creds := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     spotifyTokenURL,
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, cfg.HTTPClient)
		client = creds.Client(ctx)
	}

	return &Backend{
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		logger:     cfg.Logger,
		baseURL:    cfg.BaseURL,
		timeout:    cfg.RequestTimeout,
	}
}

// CreateSearch issues a new search operation and returns its pending
// resource handle. The operation runs on a backend goroutine and reports
// completion through complete with key; it is not cancelled by the caller
// giving up on it.
func (b *Backend) CreateSearch(query string, kind catalog.Kind, windows catalog.Windows, complete catalog.CompleteFunc, key uuid.UUID) (catalog.Resource, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", shared.ErrInvalidInput)
	}

	res := newResource(query)
	go b.run(res, query, kind, windows, complete, key)
	return res, nil
}

// MakeLink produces a spotify search URI addressing the operation.
func (b *Backend) MakeLink(res catalog.Resource) (catalog.Link, error) {
	query := res.Query()
	if r, ok := res.(*resource); ok {
		query = r.rawQuery
	}
	if query == "" {
		return catalog.Link{}, fmt.Errorf("%w: resource has no query", shared.ErrInvalidInput)
	}
	return catalog.Link{URI: "spotify:search:" + url.QueryEscape(query)}, nil
}

type categoryRequest struct {
	kind   string
	window catalog.Window
	fill   func(*resource, *SpotifySearchResponse)
}

// run executes one whole search operation and always ends in exactly one
// completion dispatch.
func (b *Backend) run(res *resource, query string, kind catalog.Kind, windows catalog.Windows, complete catalog.CompleteFunc, key uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	logger := b.logger.With("key", key, "kind", kind.String())
	logger.Debug("search operation started", "query", query)

	categories := []categoryRequest{
		{"track", windows.Tracks, func(r *resource, resp *SpotifySearchResponse) {
			if resp.Tracks == nil {
				return
			}
			for _, t := range resp.Tracks.Items {
				r.tracks = append(r.tracks, mapTrack(t))
			}
			r.trackTotal = resp.Tracks.Total
		}},
		{"album", windows.Albums, func(r *resource, resp *SpotifySearchResponse) {
			if resp.Albums == nil {
				return
			}
			for _, a := range resp.Albums.Items {
				r.albums = append(r.albums, mapAlbum(a))
			}
			r.albumTotal = resp.Albums.Total
		}},
		{"artist", windows.Artists, func(r *resource, resp *SpotifySearchResponse) {
			if resp.Artists == nil {
				return
			}
			for _, a := range resp.Artists.Items {
				r.artists = append(r.artists, mapArtist(a))
			}
			r.artistTotal = resp.Artists.Total
		}},
		{"playlist", windows.Playlists, func(r *resource, resp *SpotifySearchResponse) {
			if resp.Playlists == nil {
				return
			}
			for _, p := range resp.Playlists.Items {
				r.playlists = append(r.playlists, mapPlaylist(p))
			}
			r.playlistTotal = resp.Playlists.Total
		}},
	}

	for _, cat := range categories {
		if cat.window.Count <= 0 {
			continue
		}
		if err := b.searchCategory(ctx, res, query, cat); err != nil {
			code := classify(err)
			logger.Warn("search operation failed", "category", cat.kind, "err", err, "code", code)
			res.fail(code)
			complete(key, res)
			return
		}
	}

	res.query = query
	res.loaded.Store(true)
	logger.Debug("search operation loaded",
		"tracks", len(res.tracks), "albums", len(res.albums),
		"artists", len(res.artists), "playlists", len(res.playlists))
	complete(key, res)
}

// searchCategory performs one authenticated /search request for one category
// window and folds the response into the resource.
func (b *Backend) searchCategory(ctx context.Context, res *resource, query string, cat categoryRequest) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", cat.kind)
	params.Set("limit", fmt.Sprintf("%d", cat.window.Count))
	params.Set("offset", fmt.Sprintf("%d", cat.window.Offset))
	endpoint := fmt.Sprintf("%s/search?%s", b.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{status: resp.StatusCode}
	}

	var parsed SpotifySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	cat.fill(res, &parsed)
	return nil
}

type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("spotify API error: status %d", e.status)
}

// classify maps a request failure to the remote error code surfaced on the
// resource. Transport-level failures, including timeouts, report as network
// errors.
func classify(err error) catalog.Code {
	var status *statusError
	if !errors.As(err, &status) {
		return catalog.CodeNetwork
	}
	switch {
	case status.status == http.StatusBadRequest:
		return catalog.CodeBadRequest
	case status.status == http.StatusUnauthorized || status.status == http.StatusForbidden:
		return catalog.CodeUnauthorized
	case status.status == http.StatusTooManyRequests:
		return catalog.CodeRateLimited
	case status.status >= 500:
		return catalog.CodeServiceUnavailable
	default:
		return catalog.CodeOther
	}
}
