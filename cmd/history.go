package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// HistoryList prints recorded searches, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	limit := int(cmd.Int("limit"))

	db, repo, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := repo.List(limit)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		summaries := make([]map[string]any, len(entries))
		for i, e := range entries {
			summaries[i] = map[string]any{
				"id":             e.ID(),
				"query":          e.Query(),
				"kind":           e.Kind(),
				"did_you_mean":   e.DidYouMean(),
				"track_total":    e.TrackTotal(),
				"album_total":    e.AlbumTotal(),
				"artist_total":   e.ArtistTotal(),
				"playlist_total": e.PlaylistTotal(),
				"created_at":     e.CreatedAt(),
			}
		}
		return r.writeJSON(summaries, cmd.Bool("pretty"))
	}

	if len(entries) == 0 {
		return r.writePlain("No recorded searches.\n")
	}

	r.writePlain("Found %d recorded searches:\n\n", len(entries))
	for i, e := range entries {
		r.writePlain("%d. %q (%s)\n", i+1, e.Query(), e.Kind())
		r.writePlain("   Matches: %d tracks, %d albums, %d artists, %d playlists\n",
			e.TrackTotal(), e.AlbumTotal(), e.ArtistTotal(), e.PlaylistTotal())
		r.writePlain("   Recorded: %s\n\n", e.CreatedAt().Local().Format("2006-01-02 15:04"))
	}

	return nil
}

// HistoryClear soft-deletes every recorded search.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	db, repo, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	cleared, err := repo.Clear()
	if err != nil {
		return err
	}

	r.writePlain("✓ Cleared %d recorded searches\n", cleared)
	return nil
}
