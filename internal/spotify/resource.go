package spotify

import (
	"sync/atomic"

	"github.com/cadencefm/cadence/internal/catalog"
)

var _ catalog.Resource = (*resource)(nil)

// resource buffers the result data of one search operation. The processing
// goroutine writes the result fields and then flips the loaded flag (or sets
// the error code); readers must observe loaded/error before touching the
// data, which every accessor below does.
type resource struct {
	// rawQuery is the query the operation was created with, available to the
	// backend before the service echoes it back.
	rawQuery string

	refs   atomic.Int64
	loaded atomic.Bool
	code   atomic.Int64

	query      string
	didYouMean string

	tracks    []catalog.Track
	albums    []catalog.Album
	artists   []catalog.Artist
	playlists []playlistMatch

	trackTotal    int
	albumTotal    int
	artistTotal   int
	playlistTotal int
}

type playlistMatch struct {
	name     string
	uri      string
	imageURI string
}

// newResource returns a pending resource holding the single reference handed
// to the originating search handle.
func newResource(query string) *resource {
	r := &resource{rawQuery: query}
	r.refs.Store(1)
	return r
}

func (r *resource) fail(code catalog.Code) {
	r.code.Store(int64(code))
}

func (r *resource) Acquire() { r.refs.Add(1) }
func (r *resource) Release() { r.refs.Add(-1) }

func (r *resource) IsLoaded() bool          { return r.loaded.Load() }
func (r *resource) ErrorCode() catalog.Code { return catalog.Code(r.code.Load()) }

func (r *resource) Query() string {
	if !r.loaded.Load() {
		return ""
	}
	return r.query
}

func (r *resource) DidYouMean() string {
	if !r.loaded.Load() {
		return ""
	}
	return r.didYouMean
}

func (r *resource) NumTracks() int {
	if !r.loaded.Load() {
		return 0
	}
	return len(r.tracks)
}
func (r *resource) TotalTracks() int {
	if !r.loaded.Load() {
		return 0
	}
	return r.trackTotal
}
func (r *resource) TrackAt(i int) catalog.Track { return r.tracks[i] }

func (r *resource) NumAlbums() int {
	if !r.loaded.Load() {
		return 0
	}
	return len(r.albums)
}
func (r *resource) TotalAlbums() int {
	if !r.loaded.Load() {
		return 0
	}
	return r.albumTotal
}
func (r *resource) AlbumAt(i int) catalog.Album { return r.albums[i] }

func (r *resource) NumArtists() int {
	if !r.loaded.Load() {
		return 0
	}
	return len(r.artists)
}
func (r *resource) TotalArtists() int {
	if !r.loaded.Load() {
		return 0
	}
	return r.artistTotal
}
func (r *resource) ArtistAt(i int) catalog.Artist { return r.artists[i] }

func (r *resource) NumPlaylists() int {
	if !r.loaded.Load() {
		return 0
	}
	return len(r.playlists)
}
func (r *resource) TotalPlaylists() int {
	if !r.loaded.Load() {
		return 0
	}
	return r.playlistTotal
}
func (r *resource) PlaylistNameAt(i int) string     { return r.playlists[i].name }
func (r *resource) PlaylistURIAt(i int) string      { return r.playlists[i].uri }
func (r *resource) PlaylistImageURIAt(i int) string { return r.playlists[i].imageURI }
