package ui

import (
	"fmt"

	"github.com/cadencefm/cadence/internal/catalog"
	"github.com/cadencefm/cadence/internal/search"
	"github.com/cadencefm/cadence/internal/shared"
	"github.com/charmbracelet/bubbles/list"
)

var (
	_ list.Item = trackItem{}
	_ list.Item = albumItem{}
	_ list.Item = artistItem{}
	_ list.Item = playlistItem{}
)

// trackItem wraps [catalog.Track] to implement [list.Item].
type trackItem struct {
	track catalog.Track
}

func (i trackItem) FilterValue() string { return i.track.Name }
func (i trackItem) Title() string       { return i.track.Name }
func (i trackItem) Description() string {
	desc := i.track.Artist
	if i.track.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
	}
	return fmt.Sprintf("%s • %s", desc, shared.FormatDuration(i.track.DurationMS))
}

// albumItem wraps [catalog.Album] to implement [list.Item].
type albumItem struct {
	album catalog.Album
}

func (i albumItem) FilterValue() string { return i.album.Name }
func (i albumItem) Title() string       { return i.album.Name }
func (i albumItem) Description() string {
	if i.album.Year != 0 {
		return fmt.Sprintf("%s • %d", i.album.Artist, i.album.Year)
	}
	return i.album.Artist
}

// artistItem wraps [catalog.Artist] to implement [list.Item].
type artistItem struct {
	artist catalog.Artist
}

func (i artistItem) FilterValue() string { return i.artist.Name }
func (i artistItem) Title() string       { return i.artist.Name }
func (i artistItem) Description() string { return i.artist.URI }

// playlistItem wraps [search.PlaylistMatch] to implement [list.Item].
type playlistItem struct {
	playlist search.PlaylistMatch
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string { return i.playlist.URI }
