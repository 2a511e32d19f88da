// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package spotify

import (
	"strconv"
	"strings"

	"github.com/cadencefm/cadence/internal/catalog"
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Artists     []SpotifyArtist `json:"artists"`
	ReleaseDate string          `json:"release_date"`
	Images      []SpotifyImage  `json:"images"`
	URI         string          `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	URI        string          `json:"uri"`
}

// SpotifyPlaylist represents a simplified playlist object from search results.
type SpotifyPlaylist struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
	URI    string         `json:"uri"`
}

// SpotifyPage represents one paginated category of search matches.
type SpotifyPage[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// SpotifySearchResponse represents the /search endpoint response. Only the
// requested category is populated per request.
type SpotifySearchResponse struct {
	Tracks    *SpotifyPage[SpotifyTrack]    `json:"tracks"`
	Albums    *SpotifyPage[SpotifyAlbum]    `json:"albums"`
	Artists   *SpotifyPage[SpotifyArtist]   `json:"artists"`
	Playlists *SpotifyPage[SpotifyPlaylist] `json:"playlists"`
}

func joinArtists(artists []SpotifyArtist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func mapTrack(t SpotifyTrack) catalog.Track {
	return catalog.Track{
		ID:         t.ID,
		Name:       t.Name,
		Artist:     joinArtists(t.Artists),
		Album:      t.Album.Name,
		DurationMS: t.DurationMS,
		URI:        t.URI,
	}
}

func mapAlbum(a SpotifyAlbum) catalog.Album {
	return catalog.Album{
		ID:     a.ID,
		Name:   a.Name,
		Artist: joinArtists(a.Artists),
		Year:   releaseYear(a.ReleaseDate),
		URI:    a.URI,
	}
}

func mapArtist(a SpotifyArtist) catalog.Artist {
	return catalog.Artist{ID: a.ID, Name: a.Name, URI: a.URI}
}

func mapPlaylist(p SpotifyPlaylist) playlistMatch {
	match := playlistMatch{name: p.Name, uri: p.URI}
	if len(p.Images) > 0 {
		match.imageURI = p.Images[0].URL
	}
	return match
}
