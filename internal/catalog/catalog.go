package catalog

import "github.com/google/uuid"

// Kind selects the search mode of a remote catalog operation.
type Kind int

const (
	// KindStandard is a regular catalog search.
	KindStandard Kind = iota
	// KindSuggest asks the service for type-ahead suggestions instead of full matches.
	KindSuggest
)

func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindSuggest:
		return "suggest"
	default:
		return ""
	}
}

// Window is the (offset, count) slice of one category's matches requested in
// a single operation.
type Window struct {
	Offset int
	Count  int
}

// Next returns the window for the following page. The offset advances by this
// window's count; count keeps the given override, or this window's count when
// the override is zero.
func (w Window) Next(count int) Window {
	if count == 0 {
		count = w.Count
	}
	return Window{Offset: w.Offset + w.Count, Count: count}
}

// Windows groups the per-category pagination windows of one search operation.
type Windows struct {
	Tracks    Window
	Albums    Window
	Artists   Window
	Playlists Window
}

// CompleteFunc is the completion callback a [Backend] invokes when a search
// operation finishes, passing back the correlation key the operation was
// created with and the resource handle.
type CompleteFunc func(key uuid.UUID, res Resource)

// Backend is the transport capability the search core consumes.
type Backend interface {
	// CreateSearch issues a new remote search operation and returns its
	// resource handle. The operation executes on backend-owned
	// infrastructure; complete is invoked with key once it finishes,
	// whether it loaded or failed. CreateSearch itself never blocks on
	// the remote service.
	CreateSearch(query string, kind Kind, windows Windows, complete CompleteFunc, key uuid.UUID) (Resource, error)

	// MakeLink produces an opaque link addressing the given search resource.
	MakeLink(res Resource) (Link, error)
}

// Resource is a reference-counted handle to a remote search operation and its
// buffered result data. All read methods are safe to call at any time; before
// the operation completes the counts report zero and the texts are empty.
type Resource interface {
	Acquire()
	Release()

	IsLoaded() bool
	ErrorCode() Code

	Query() string
	DidYouMean() string

	NumTracks() int
	TotalTracks() int
	TrackAt(i int) Track

	NumAlbums() int
	TotalAlbums() int
	AlbumAt(i int) Album

	NumArtists() int
	TotalArtists() int
	ArtistAt(i int) Artist

	NumPlaylists() int
	TotalPlaylists() int
	PlaylistNameAt(i int) string
	PlaylistURIAt(i int) string
	PlaylistImageURIAt(i int) string
}

// Link is an opaque reference addressing a search operation, suitable for
// display or for handing back to the service.
type Link struct {
	URI string
}

func (l Link) String() string { return l.URI }
