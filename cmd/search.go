package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cadencefm/cadence/internal/catalog"
	"github.com/cadencefm/cadence/internal/formatter"
	"github.com/cadencefm/cadence/internal/history"
	"github.com/cadencefm/cadence/internal/search"
	"github.com/cadencefm/cadence/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search issues a standard catalog search and renders the results.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	return r.runSearch(ctx, cmd, catalog.KindStandard)
}

// Suggest issues a suggest-mode search for partial queries.
func (r *Runner) Suggest(ctx context.Context, cmd *cli.Command) error {
	return r.runSearch(ctx, cmd, catalog.KindSuggest)
}

// searchOptions builds the first-page request from configuration defaults and
// command-line overrides.
func (r *Runner) searchOptions(cmd *cli.Command, query string, kind catalog.Kind) search.Options {
	count := func(flag string, fallback int) int {
		if v := cmd.Int(flag); v > 0 {
			return int(v)
		}
		return fallback
	}

	offset := int(cmd.Int("offset"))

	return search.Options{
		Query: query,
		Kind:  kind,

		TrackOffset:    offset,
		TrackCount:     count("tracks", r.config.Search.TrackCount),
		AlbumOffset:    offset,
		AlbumCount:     count("albums", r.config.Search.AlbumCount),
		ArtistOffset:   offset,
		ArtistCount:    count("artists", r.config.Search.ArtistCount),
		PlaylistOffset: offset,
		PlaylistCount:  count("playlists", r.config.Search.PlaylistCount),
	}
}

func (r *Runner) runSearch(ctx context.Context, cmd *cli.Command, kind catalog.Kind) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query argument is required", shared.ErrMissingArgument)
	}

	if r.backend == nil {
		return fmt.Errorf("%w: set Spotify credentials in config.toml", shared.ErrMissingCredentials)
	}

	pages := int(cmd.Int("pages"))
	if pages < 1 {
		pages = 1
	}

	r.logger.Info("searching", "query", query, "kind", kind.String(), "pages", pages)

	s, err := search.New(r.registry, r.backend, r.searchOptions(cmd, query, kind))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer func() { s.Close() }()

	var rendered []byte
	for page := 1; ; page++ {
		if _, err := s.Load(r.config.Search.LoadTimeout()); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}

		results, err := formatter.Collect(s)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}

		if cmd.Bool("record") {
			if err := r.recordSearch(s); err != nil {
				r.logger.Warn("failed to record search", "error", err)
			}
		}

		data, err := r.renderResults(cmd, results)
		if err != nil {
			return err
		}
		rendered = append(rendered, data...)

		if page >= pages {
			break
		}

		next, err := s.More(search.MoreOptions{})
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		s.Close()
		s = next
	}

	if outputFile := cmd.String("output"); outputFile != "" {
		if err := os.WriteFile(outputFile, rendered, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		r.writePlain("✓ Results written to %s\n", outputFile)
		return nil
	}

	return r.writePlain("%s", rendered)
}

// renderResults serializes one page of results in the requested format.
func (r *Runner) renderResults(cmd *cli.Command, results *formatter.Results) ([]byte, error) {
	format := cmd.String("format")
	switch format {
	case "json":
		data, err := formatter.ExportToJSON(results, cmd.Bool("pretty"))
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "csv":
		return formatter.ExportToCSV(results)
	case "markdown", "md":
		return formatter.ExportToMarkdown(results)
	case "text", "":
		return formatter.ExportToText(results)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// recordSearch persists a summary of a loaded search to the history database.
func (r *Runner) recordSearch(s *search.Search) error {
	db, repo, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	entry, err := history.Snapshot(s)
	if err != nil {
		return err
	}
	return repo.Create(entry)
}
