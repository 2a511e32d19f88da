// package formatter renders loaded search results to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/cadencefm/cadence/internal/catalog"
	"github.com/cadencefm/cadence/internal/search"
	"github.com/cadencefm/cadence/internal/shared"
)

// Results is a detached snapshot of one loaded search page, safe to render
// after the originating handle and its resource are released.
type Results struct {
	Query      string                 `json:"query"`
	DidYouMean string                 `json:"did_you_mean,omitempty"`
	Kind       string                 `json:"kind"`
	Tracks     []catalog.Track        `json:"tracks,omitempty"`
	Albums     []catalog.Album        `json:"albums,omitempty"`
	Artists    []catalog.Artist       `json:"artists,omitempty"`
	Playlists  []search.PlaylistMatch `json:"playlists,omitempty"`

	TrackTotal    int `json:"track_total"`
	AlbumTotal    int `json:"album_total"`
	ArtistTotal   int `json:"artist_total"`
	PlaylistTotal int `json:"playlist_total"`
}

// Collect materializes every category of a loaded search into a Results
// snapshot, releasing the page references it takes along the way.
func Collect(s *search.Search) (*Results, error) {
	query, err := s.Query()
	if err != nil {
		return nil, err
	}
	didYouMean, err := s.DidYouMean()
	if err != nil {
		return nil, err
	}

	r := &Results{Query: query, DidYouMean: didYouMean, Kind: s.Kind().String()}

	tracks, err := s.Tracks()
	if err != nil {
		return nil, err
	}
	r.Tracks = tracks.Items()
	tracks.Close()

	albums, err := s.Albums()
	if err != nil {
		return nil, err
	}
	r.Albums = albums.Items()
	albums.Close()

	artists, err := s.Artists()
	if err != nil {
		return nil, err
	}
	r.Artists = artists.Items()
	artists.Close()

	playlists, err := s.Playlists()
	if err != nil {
		return nil, err
	}
	r.Playlists = playlists.Items()
	playlists.Close()

	if r.TrackTotal, err = s.TrackTotal(); err != nil {
		return nil, err
	}
	if r.AlbumTotal, err = s.AlbumTotal(); err != nil {
		return nil, err
	}
	if r.ArtistTotal, err = s.ArtistTotal(); err != nil {
		return nil, err
	}
	if r.PlaylistTotal, err = s.PlaylistTotal(); err != nil {
		return nil, err
	}

	return r, nil
}

// ExportToCSV converts the track matches to CSV format with columns: ID, Name, Artist, Album, Duration, URI
func ExportToCSV(r *Results) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Artist", "Album", "Duration", "URI"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range r.Tracks {
		record := []string{
			track.ID,
			track.Name,
			track.Artist,
			track.Album,
			strconv.Itoa(track.DurationMS / 1000),
			track.URI,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts the results to Markdown with one section per category
func ExportToMarkdown(r *Results) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Search: %s\n\n", r.Query))
	if r.DidYouMean != "" {
		buf.WriteString(fmt.Sprintf("Did you mean *%s*?\n\n", r.DidYouMean))
	}

	if len(r.Tracks) > 0 {
		buf.WriteString(fmt.Sprintf("## Tracks (%d of %d)\n\n", len(r.Tracks), r.TrackTotal))
		for i, track := range r.Tracks {
			duration := shared.FormatDuration(track.DurationMS)
			albumPart := ""
			if track.Album != "" {
				albumPart = fmt.Sprintf(" (%s)", track.Album)
			}
			buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n", i+1, track.Artist, track.Name, albumPart, duration))
		}
		buf.WriteString("\n")
	}

	if len(r.Albums) > 0 {
		buf.WriteString(fmt.Sprintf("## Albums (%d of %d)\n\n", len(r.Albums), r.AlbumTotal))
		for i, album := range r.Albums {
			yearPart := ""
			if album.Year != 0 {
				yearPart = fmt.Sprintf(" (%d)", album.Year)
			}
			buf.WriteString(fmt.Sprintf("%d. %s - %s%s\n", i+1, album.Artist, album.Name, yearPart))
		}
		buf.WriteString("\n")
	}

	if len(r.Artists) > 0 {
		buf.WriteString(fmt.Sprintf("## Artists (%d of %d)\n\n", len(r.Artists), r.ArtistTotal))
		for i, artist := range r.Artists {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, artist.Name))
		}
		buf.WriteString("\n")
	}

	if len(r.Playlists) > 0 {
		buf.WriteString(fmt.Sprintf("## Playlists (%d of %d)\n\n", len(r.Playlists), r.PlaylistTotal))
		for i, playlist := range r.Playlists {
			buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, playlist.Name, playlist.URI))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts the results to plain text format
func ExportToText(r *Results) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Search: %s\n", r.Query))
	if r.DidYouMean != "" {
		buf.WriteString(fmt.Sprintf("Did you mean: %s\n", r.DidYouMean))
	}
	buf.WriteString(fmt.Sprintf("Matches: %d tracks, %d albums, %d artists, %d playlists\n\n",
		r.TrackTotal, r.AlbumTotal, r.ArtistTotal, r.PlaylistTotal))

	for i, track := range r.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artist, track.Name))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts the results to JSON, optionally pretty-printed
func ExportToJSON(r *Results, pretty bool) ([]byte, error) {
	return shared.MarshalJSON(r, pretty)
}
