package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cadencefm/cadence/internal/catalog"
	"github.com/cadencefm/cadence/internal/search"
	"github.com/cadencefm/cadence/internal/shared"
	tu "github.com/cadencefm/cadence/internal/testing"
)

func loadedSearch(t *testing.T) *search.Search {
	t.Helper()

	logger := shared.NewLogger(nil)
	shared.SetLogLevel(logger, "error")
	reg := search.NewRegistry(logger)

	backend := &tu.FakeBackend{OnCreate: func(call *tu.FakeBackendCall) {
		call.Resource.QueryText = "heart shaped box"
		call.Resource.DidYouMeanText = "heart-shaped box"
		call.Resource.Tracks = []catalog.Track{
			{ID: "t1", Name: "Heart-Shaped Box", Artist: "Nirvana", Album: "In Utero", DurationMS: 281000, URI: "spotify:track:t1"},
			{ID: "t2", Name: "Milk It", Artist: "Nirvana", Album: "In Utero", DurationMS: 225000, URI: "spotify:track:t2"},
		}
		call.Resource.Albums = []catalog.Album{
			{ID: "a1", Name: "In Utero", Artist: "Nirvana", Year: 1993, URI: "spotify:album:a1"},
		}
		call.Resource.Artists = []catalog.Artist{
			{ID: "r1", Name: "Nirvana", URI: "spotify:artist:r1"},
		}
		call.Resource.Playlists = []tu.FakePlaylist{
			{Name: "90s Grunge", URI: "spotify:playlist:p1", ImageURI: "https://img.example/p1"},
		}
		call.Resource.TrackTotalCount = 42
		call.Resource.AlbumTotalCount = 5
		call.Resource.ArtistTotalCount = 1
		call.Resource.PlaylistTotalCount = 9
	}}

	s, err := search.New(reg, backend, search.Options{Query: "heart shaped box"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(s.Close)

	call := backend.LastCall(t)
	call.Resource.SetLoaded(true)
	call.Complete(call.Key, call.Resource)

	return s
}

func TestCollect(t *testing.T) {
	s := loadedSearch(t)

	r, err := Collect(s)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if r.Query != "heart shaped box" {
		t.Errorf("unexpected query: %q", r.Query)
	}
	if r.DidYouMean != "heart-shaped box" {
		t.Errorf("unexpected suggestion: %q", r.DidYouMean)
	}
	if r.Kind != "standard" {
		t.Errorf("unexpected kind: %q", r.Kind)
	}
	if len(r.Tracks) != 2 || len(r.Albums) != 1 || len(r.Artists) != 1 || len(r.Playlists) != 1 {
		t.Errorf("unexpected category sizes: %d %d %d %d", len(r.Tracks), len(r.Albums), len(r.Artists), len(r.Playlists))
	}
	if r.TrackTotal != 42 || r.PlaylistTotal != 9 {
		t.Errorf("totals not captured: %d %d", r.TrackTotal, r.PlaylistTotal)
	}
}

func TestCollectFailedSearch(t *testing.T) {
	logger := shared.NewLogger(nil)
	shared.SetLogLevel(logger, "error")
	reg := search.NewRegistry(logger)

	backend := &tu.FakeBackend{}
	s, err := search.New(reg, backend, search.Options{Query: "nope"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	call := backend.LastCall(t)
	call.Resource.SetErrorCode(catalog.CodeServiceUnavailable)
	call.Complete(call.Key, call.Resource)

	if _, err := Collect(s); err == nil {
		t.Fatal("Collect must surface the remote error")
	}
}

func TestCollectReleasesPageReferences(t *testing.T) {
	logger := shared.NewLogger(nil)
	shared.SetLogLevel(logger, "error")
	reg := search.NewRegistry(logger)

	backend := &tu.FakeBackend{}
	s, err := search.New(reg, backend, search.Options{Query: "drain you"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	call := backend.LastCall(t)
	call.Resource.QueryText = "drain you"
	call.Resource.SetLoaded(true)
	call.Complete(call.Key, call.Resource)

	if _, err := Collect(s); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if refs := call.Resource.Refs(); refs != 1 {
		t.Errorf("Collect must release its page references, got %d refs", refs)
	}
}

func TestExportToCSV(t *testing.T) {
	r, err := Collect(loadedSearch(t))
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	data, err := ExportToCSV(r)
	if err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 records, got %d lines", len(lines))
	}
	if lines[0] != "ID,Name,Artist,Album,Duration,URI" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Heart-Shaped Box") || !strings.Contains(lines[1], "281") {
		t.Errorf("unexpected first record: %q", lines[1])
	}
}

func TestExportToMarkdown(t *testing.T) {
	r, err := Collect(loadedSearch(t))
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	data, err := ExportToMarkdown(r)
	if err != nil {
		t.Fatalf("ExportToMarkdown failed: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"# Search: heart shaped box",
		"Did you mean *heart-shaped box*?",
		"## Tracks (2 of 42)",
		"1. Nirvana - Heart-Shaped Box (In Utero) [4:41]",
		"## Albums (1 of 5)",
		"1. Nirvana - In Utero (1993)",
		"## Artists (1 of 1)",
		"## Playlists (1 of 9)",
		"1. 90s Grunge (spotify:playlist:p1)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
}

func TestExportToText(t *testing.T) {
	r, err := Collect(loadedSearch(t))
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	data, err := ExportToText(r)
	if err != nil {
		t.Fatalf("ExportToText failed: %v", err)
	}
	out := string(data)

	if !strings.Contains(out, "Search: heart shaped box") {
		t.Errorf("text output missing query:\n%s", out)
	}
	if !strings.Contains(out, "Matches: 42 tracks, 5 albums, 1 artists, 9 playlists") {
		t.Errorf("text output missing totals:\n%s", out)
	}
	if !strings.Contains(out, "1. Nirvana - Heart-Shaped Box") {
		t.Errorf("text output missing track line:\n%s", out)
	}
}

func TestExportToJSON(t *testing.T) {
	r, err := Collect(loadedSearch(t))
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	data, err := ExportToJSON(r, false)
	if err != nil {
		t.Fatalf("ExportToJSON failed: %v", err)
	}

	var decoded Results
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Query != "heart shaped box" || decoded.TrackTotal != 42 {
		t.Errorf("JSON round trip lost fields: %q %d", decoded.Query, decoded.TrackTotal)
	}

	pretty, err := ExportToJSON(r, true)
	if err != nil {
		t.Fatalf("ExportToJSON pretty failed: %v", err)
	}
	if !strings.Contains(string(pretty), "\n  ") {
		t.Error("pretty output should be indented")
	}
}
