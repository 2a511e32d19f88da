// package testing contains shared testing utilities
package testing

import (
	"errors"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cadencefm/cadence/internal/catalog"
	"github.com/google/uuid"
)

var _ catalog.Resource = (*FakeResource)(nil)

// FakeResource is a test double for [catalog.Resource] with configurable
// result data and an observable reference count.
type FakeResource struct {
	QueryText      string
	DidYouMeanText string

	Tracks    []catalog.Track
	Albums    []catalog.Album
	Artists   []catalog.Artist
	Playlists []FakePlaylist

	TrackTotalCount    int
	AlbumTotalCount    int
	ArtistTotalCount   int
	PlaylistTotalCount int

	loaded atomic.Bool
	code   atomic.Int64
	refs   atomic.Int64
}

// FakePlaylist holds the playlist-category fields the service exposes.
type FakePlaylist struct {
	Name     string
	URI      string
	ImageURI string
}

// NewFakeResource returns an unloaded resource with one reference, matching
// the handle a backend returns from CreateSearch.
func NewFakeResource() *FakeResource {
	r := &FakeResource{}
	r.refs.Store(1)
	return r
}

// SetLoaded flips the loaded flag.
func (r *FakeResource) SetLoaded(loaded bool) { r.loaded.Store(loaded) }

// SetErrorCode sets the remote error code reported by the resource.
func (r *FakeResource) SetErrorCode(c catalog.Code) { r.code.Store(int64(c)) }

// Refs returns the current reference count.
func (r *FakeResource) Refs() int { return int(r.refs.Load()) }

func (r *FakeResource) Acquire() { r.refs.Add(1) }
func (r *FakeResource) Release() { r.refs.Add(-1) }

func (r *FakeResource) IsLoaded() bool          { return r.loaded.Load() }
func (r *FakeResource) ErrorCode() catalog.Code { return catalog.Code(r.code.Load()) }

func (r *FakeResource) Query() string {
	if !r.loaded.Load() {
		return ""
	}
	return r.QueryText
}

func (r *FakeResource) DidYouMean() string {
	if !r.loaded.Load() {
		return ""
	}
	return r.DidYouMeanText
}

func (r *FakeResource) NumTracks() int {
	if !r.loaded.Load() {
		return 0
	}
	return len(r.Tracks)
}
func (r *FakeResource) TotalTracks() int            { return r.TrackTotalCount }
func (r *FakeResource) TrackAt(i int) catalog.Track { return r.Tracks[i] }

func (r *FakeResource) NumAlbums() int {
	if !r.loaded.Load() {
		return 0
	}
	return len(r.Albums)
}
func (r *FakeResource) TotalAlbums() int            { return r.AlbumTotalCount }
func (r *FakeResource) AlbumAt(i int) catalog.Album { return r.Albums[i] }

func (r *FakeResource) NumArtists() int {
	if !r.loaded.Load() {
		return 0
	}
	return len(r.Artists)
}
func (r *FakeResource) TotalArtists() int             { return r.ArtistTotalCount }
func (r *FakeResource) ArtistAt(i int) catalog.Artist { return r.Artists[i] }

func (r *FakeResource) NumPlaylists() int {
	if !r.loaded.Load() {
		return 0
	}
	return len(r.Playlists)
}
func (r *FakeResource) TotalPlaylists() int            { return r.PlaylistTotalCount }
func (r *FakeResource) PlaylistNameAt(i int) string    { return r.Playlists[i].Name }
func (r *FakeResource) PlaylistURIAt(i int) string     { return r.Playlists[i].URI }
func (r *FakeResource) PlaylistImageURIAt(i int) string {
	return r.Playlists[i].ImageURI
}

var _ catalog.Backend = (*FakeBackend)(nil)

// FakeBackendCall records one CreateSearch invocation.
type FakeBackendCall struct {
	Query    string
	Kind     catalog.Kind
	Windows  catalog.Windows
	Complete catalog.CompleteFunc
	Key      uuid.UUID
	Resource *FakeResource
}

// FakeBackend is a test double for [catalog.Backend]. Completion is driven
// manually by the test through the recorded calls, or by providing
// OnCreate to mutate the resource before it is returned.
type FakeBackend struct {
	mu    sync.Mutex
	calls []FakeBackendCall

	CreateErr error
	OnCreate  func(call *FakeBackendCall)
}

func (b *FakeBackend) CreateSearch(query string, kind catalog.Kind, windows catalog.Windows, complete catalog.CompleteFunc, key uuid.UUID) (catalog.Resource, error) {
	if b.CreateErr != nil {
		return nil, b.CreateErr
	}

	call := FakeBackendCall{
		Query:    query,
		Kind:     kind,
		Windows:  windows,
		Complete: complete,
		Key:      key,
		Resource: NewFakeResource(),
	}
	if b.OnCreate != nil {
		b.OnCreate(&call)
	}

	b.mu.Lock()
	b.calls = append(b.calls, call)
	b.mu.Unlock()

	return call.Resource, nil
}

func (b *FakeBackend) MakeLink(res catalog.Resource) (catalog.Link, error) {
	return catalog.Link{URI: "cadence:search:" + res.Query()}, nil
}

// Calls returns a copy of the recorded CreateSearch invocations.
func (b *FakeBackend) Calls() []FakeBackendCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]FakeBackendCall(nil), b.calls...)
}

// LastCall returns the most recent CreateSearch invocation, failing the test
// if none was recorded.
func (b *FakeBackend) LastCall(t *testing.T) FakeBackendCall {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.calls) == 0 {
		t.Fatal("no CreateSearch calls recorded")
	}
	return b.calls[len(b.calls)-1]
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
