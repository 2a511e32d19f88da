package search

import (
	"fmt"
	"sync"
	"time"

	"github.com/cadencefm/cadence/internal/catalog"
	"github.com/cadencefm/cadence/internal/shared"
	"github.com/google/uuid"
)

// DefaultCount is the per-category window size used when a count is not
// specified at construction.
const DefaultCount = 20

// loadPollInterval is how often Load re-checks a resource that completes
// without a dispatch, such as one wrapped by Adopt.
const loadPollInterval = 10 * time.Millisecond

// Options configures a new search operation. Zero-valued counts default to
// [DefaultCount]; zero-valued offsets start at the beginning of each
// category.
type Options struct {
	Query    string
	Callback Callback
	Kind     catalog.Kind

	TrackOffset    int
	TrackCount     int
	AlbumOffset    int
	AlbumCount     int
	ArtistOffset   int
	ArtistCount    int
	PlaylistOffset int
	PlaylistCount  int
}

func (o Options) windows() catalog.Windows {
	count := func(c int) int {
		if c <= 0 {
			return DefaultCount
		}
		return c
	}
	return catalog.Windows{
		Tracks:    catalog.Window{Offset: o.TrackOffset, Count: count(o.TrackCount)},
		Albums:    catalog.Window{Offset: o.AlbumOffset, Count: count(o.AlbumCount)},
		Artists:   catalog.Window{Offset: o.ArtistOffset, Count: count(o.ArtistCount)},
		Playlists: catalog.Window{Offset: o.PlaylistOffset, Count: count(o.PlaylistCount)},
	}
}

// MoreOptions overrides parts of a follow-up page request built by
// [Search.More]. Zero values inherit the previous page's callback and counts.
type MoreOptions struct {
	Callback Callback

	TrackCount    int
	AlbumCount    int
	ArtistCount   int
	PlaylistCount int
}

// Search is a handle to one remote search operation. It is created pending
// and completes asynchronously to loaded or failed; completion is observable
// through [Search.IsLoaded], [Search.Load] and the construction callback.
//
// The per-category windows are fixed at construction. [Search.More] derives a
// handle for the next page.
type Search struct {
	registry *Registry
	backend  catalog.Backend
	callback Callback

	kind    catalog.Kind
	windows catalog.Windows

	// mu guards res. The backend may complete the operation on its own
	// goroutine before CreateSearch returns to New, so the dispatch path
	// races with construction to store the resource.
	mu  sync.Mutex
	res catalog.Resource

	key uuid.UUID

	done         chan struct{}
	completeOnce sync.Once
	closeOnce    sync.Once
}

// New issues a new remote search operation and returns its handle. The
// (callback, handle) pair is registered under a fresh correlation key before
// the request is handed to the backend; the backend reports completion
// through [Registry.Dispatch] with that key.
func New(reg *Registry, backend catalog.Backend, opts Options) (*Search, error) {
	s := &Search{
		registry: reg,
		backend:  backend,
		callback: opts.Callback,
		kind:     opts.Kind,
		windows:  opts.windows(),
		done:     make(chan struct{}),
	}

	key := uuid.New()
	if err := reg.register(key, opts.Callback, s); err != nil {
		return nil, err
	}
	s.key = key

	res, err := backend.CreateSearch(opts.Query, opts.Kind, s.windows, reg.Dispatch, key)
	if err != nil {
		reg.remove(key)
		return nil, fmt.Errorf("failed to create search: %w", err)
	}
	s.setResource(res)

	return s, nil
}

// Adopt wraps an already-existing resource owned elsewhere, taking a new
// reference on it. No remote request is issued and no registry entry is
// created; the handle's state is whatever the resource already reports.
// More on an adopted handle pages forward from the default first-page
// windows.
func Adopt(reg *Registry, backend catalog.Backend, res catalog.Resource) *Search {
	res.Acquire()
	s := &Search{
		registry: reg,
		backend:  backend,
		windows:  Options{}.windows(),
		res:      res,
		done:     make(chan struct{}),
	}
	if res.IsLoaded() || res.ErrorCode() != catalog.CodeOK {
		s.signalComplete()
	}
	return s
}

// resource returns the handle's resource. It is nil only in the window
// between issuing the request and either CreateSearch returning or the
// completion dispatch delivering the resource, whichever comes first.
func (s *Search) resource() catalog.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.res
}

// setResource stores the resource unless the handle already holds one.
func (s *Search) setResource(res catalog.Resource) {
	if res == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.res == nil {
		s.res = res
	}
}

// complete is the dispatch path into the handle. The resource is stored
// before the signal fires so that the user callback and goroutines woken
// from Load both observe a completed handle.
func (s *Search) complete(res catalog.Resource) {
	s.setResource(res)
	s.signalComplete()
}

// signalComplete fires the single-fire completion signal, releasing every
// goroutine blocked in Load.
func (s *Search) signalComplete() {
	s.completeOnce.Do(func() { close(s.done) })
}

// Close releases the handle's reference on the underlying resource. The
// first call wins; later calls are no-ops.
func (s *Search) Close() {
	s.closeOnce.Do(func() {
		if res := s.resource(); res != nil {
			res.Release()
		}
	})
}

// IsLoaded reports whether the operation's result data is loaded.
func (s *Search) IsLoaded() bool {
	res := s.resource()
	return res != nil && res.IsLoaded()
}

// Err returns the remote error associated with the operation, or nil.
func (s *Search) Err() error {
	res := s.resource()
	if res == nil {
		return nil
	}
	return res.ErrorCode().Err()
}

// Load blocks until the operation completes or timeout elapses, then returns
// the handle. A timeout <= 0 waits without deadline. Returns
// [shared.ErrTimeout] if the deadline passes first, or the operation's own
// error if one is set once complete.
//
// The remote operation is not cancelled by a timeout here; it may still
// complete later and will still fire its callback.
func (s *Search) Load(timeout time.Duration) (*Search, error) {
	if s.IsLoaded() {
		if err := s.Err(); err != nil {
			return nil, err
		}
		return s, nil
	}

	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	// A handle wrapped by Adopt while its resource was still pending never
	// receives a dispatch, so completion is polled as well as signalled.
	ticker := time.NewTicker(loadPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
		case <-ticker.C:
			if !s.IsLoaded() && s.Err() == nil {
				continue
			}
		case <-deadline:
			return nil, fmt.Errorf("%w: search not loaded after %s", shared.ErrTimeout, timeout)
		}

		if err := s.Err(); err != nil {
			return nil, err
		}
		return s, nil
	}
}

// Query returns the search query as the service echoes it back. Empty until
// the operation is loaded; callers wanting to block should Load first.
func (s *Search) Query() (string, error) {
	if err := s.Err(); err != nil {
		return "", err
	}
	res := s.resource()
	if res == nil {
		return "", nil
	}
	return res.Query(), nil
}

// DidYouMean returns the service's "did you mean" suggestion, or "" if there
// is none.
func (s *Search) DidYouMean() (string, error) {
	if err := s.Err(); err != nil {
		return "", err
	}
	res := s.resource()
	if res == nil {
		return "", nil
	}
	return res.DidYouMean(), nil
}

// Tracks returns the track matches of the current page. Before the operation
// is loaded the page is empty; it never blocks. The page holds its own
// reference on the resource and must be closed by the caller.
func (s *Search) Tracks() (*Page[catalog.Track], error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	res := s.resource()
	if res == nil || !res.IsLoaded() {
		return emptyPage[catalog.Track](), nil
	}
	return newPage(res, res.NumTracks, res.TrackAt), nil
}

// TrackTotal returns the server-reported total number of track matches,
// which may exceed the requested window.
func (s *Search) TrackTotal() (int, error) {
	if err := s.Err(); err != nil {
		return 0, err
	}
	res := s.resource()
	if res == nil {
		return 0, nil
	}
	return res.TotalTracks(), nil
}

// Albums returns the album matches of the current page. See [Search.Tracks].
func (s *Search) Albums() (*Page[catalog.Album], error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	res := s.resource()
	if res == nil || !res.IsLoaded() {
		return emptyPage[catalog.Album](), nil
	}
	return newPage(res, res.NumAlbums, res.AlbumAt), nil
}

// AlbumTotal returns the server-reported total number of album matches.
func (s *Search) AlbumTotal() (int, error) {
	if err := s.Err(); err != nil {
		return 0, err
	}
	res := s.resource()
	if res == nil {
		return 0, nil
	}
	return res.TotalAlbums(), nil
}

// Artists returns the artist matches of the current page. See [Search.Tracks].
func (s *Search) Artists() (*Page[catalog.Artist], error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	res := s.resource()
	if res == nil || !res.IsLoaded() {
		return emptyPage[catalog.Artist](), nil
	}
	return newPage(res, res.NumArtists, res.ArtistAt), nil
}

// ArtistTotal returns the server-reported total number of artist matches.
func (s *Search) ArtistTotal() (int, error) {
	if err := s.Err(); err != nil {
		return 0, err
	}
	res := s.resource()
	if res == nil {
		return 0, nil
	}
	return res.TotalArtists(), nil
}

// Playlists returns the playlist matches of the current page as
// [PlaylistMatch] records. See [Search.Tracks].
func (s *Search) Playlists() (*Page[PlaylistMatch], error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	res := s.resource()
	if res == nil || !res.IsLoaded() {
		return emptyPage[PlaylistMatch](), nil
	}
	return newPage(res, res.NumPlaylists, func(i int) PlaylistMatch {
		return PlaylistMatch{
			Name:     res.PlaylistNameAt(i),
			URI:      res.PlaylistURIAt(i),
			ImageURI: res.PlaylistImageURIAt(i),
		}
	}), nil
}

// PlaylistTotal returns the server-reported total number of playlist matches.
func (s *Search) PlaylistTotal() (int, error) {
	if err := s.Err(); err != nil {
		return 0, err
	}
	res := s.resource()
	if res == nil {
		return 0, nil
	}
	return res.TotalPlaylists(), nil
}

// More issues the next page of results for the same query as a brand-new
// operation: every category offset advances by the previous window's count.
// Zero values in opts inherit the previous page's callback and counts, so an
// explicit zero count cannot be expressed; it falls back to the previous
// count.
//
// More reads the query back from the current handle and must only be called
// once it is loaded.
func (s *Search) More(opts MoreOptions) (*Search, error) {
	query, err := s.Query()
	if err != nil {
		return nil, err
	}

	callback := opts.Callback
	if callback == nil {
		callback = s.callback
	}

	tracks := s.windows.Tracks.Next(opts.TrackCount)
	albums := s.windows.Albums.Next(opts.AlbumCount)
	artists := s.windows.Artists.Next(opts.ArtistCount)
	playlists := s.windows.Playlists.Next(opts.PlaylistCount)

	return New(s.registry, s.backend, Options{
		Query:    query,
		Callback: callback,
		Kind:     s.kind,

		TrackOffset:    tracks.Offset,
		TrackCount:     tracks.Count,
		AlbumOffset:    albums.Offset,
		AlbumCount:     albums.Count,
		ArtistOffset:   artists.Offset,
		ArtistCount:    artists.Count,
		PlaylistOffset: playlists.Offset,
		PlaylistCount:  playlists.Count,
	})
}

// Link produces an opaque reference addressing this search.
func (s *Search) Link() (catalog.Link, error) {
	res := s.resource()
	if res == nil {
		return catalog.Link{}, fmt.Errorf("%w: search has no resource yet", shared.ErrInvalidInput)
	}
	return s.backend.MakeLink(res)
}

// Kind returns the search mode the operation was created with.
func (s *Search) Kind() catalog.Kind { return s.kind }

// Windows returns the per-category pagination windows fixed at construction.
func (s *Search) Windows() catalog.Windows { return s.windows }

// PlaylistMatch is a playlist matching a search query. Unlike the other
// categories the service only exposes name, URI and image URI for playlist
// matches.
type PlaylistMatch struct {
	Name     string
	URI      string
	ImageURI string
}
