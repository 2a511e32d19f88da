// package history persists completed search operations for later recall.
//
// Every loaded search page can be recorded as one row; the repository follows
// the soft-delete and sequence conventions of the schema in
// internal/shared/sql.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cadencefm/cadence/internal/models"
	"github.com/cadencefm/cadence/internal/search"
	"github.com/cadencefm/cadence/internal/shared"
)

// NextSequence atomically increments and returns the next sequence number for the given table.
//
// Sequence numbers provide human-readable ordering for entries and are used
// internally for sorting and debugging.
func NextSequence(db *sql.DB, table string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequenceTable := table + "_sequence"

	_, err = tx.Exec(fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1", sequenceTable))
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	err = tx.QueryRow(fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&sequence)
	if err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sequence transaction: %w", err)
	}

	return sequence, nil
}

// SearchRepository implements models.Repository[*models.PersistedSearch].
type SearchRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.PersistedSearch] = (*SearchRepository)(nil)

// NewSearchRepository creates a new SearchRepository with the given database connection
func NewSearchRepository(db *sql.DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Create inserts a new [models.PersistedSearch] into the database with generated ID and sequence
func (r *SearchRepository) Create(entry *models.PersistedSearch) error {
	sequence, err := NextSequence(r.db, "searches")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	entry.SetID(shared.GenerateID())
	entry.SetSequence(sequence)

	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO searches (id, sequence, query, kind, did_you_mean, track_total, album_total, artist_total, playlist_total, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		entry.ID(),
		entry.Sequence(),
		entry.Query(),
		entry.Kind(),
		entry.DidYouMean(),
		entry.TrackTotal(),
		entry.AlbumTotal(),
		entry.ArtistTotal(),
		entry.PlaylistTotal(),
		entry.CreatedAt(),
		entry.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert search: %w", err)
	}

	return nil
}

const selectColumns = `id, sequence, query, kind, did_you_mean, track_total, album_total, artist_total, playlist_total, created_at, updated_at, deleted_at`

// Get retrieves a history entry by ID, excluding soft-deleted entries
func (r *SearchRepository) Get(id string) (*models.PersistedSearch, error) {
	query := fmt.Sprintf(`SELECT %s FROM searches WHERE id = ? AND deleted_at IS NULL`, selectColumns)
	return r.scanOne(r.db.QueryRow(query, id))
}

// List retrieves the most recent entries, newest first, up to limit.
// A limit <= 0 returns every entry.
func (r *SearchRepository) List(limit int) ([]*models.PersistedSearch, error) {
	query := fmt.Sprintf(`SELECT %s FROM searches WHERE deleted_at IS NULL ORDER BY sequence DESC`, selectColumns)
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	defer rows.Close()

	var entries []*models.PersistedSearch
	for rows.Next() {
		entry, err := scanRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Delete soft-deletes a history entry by ID
func (r *SearchRepository) Delete(id string) error {
	result, err := r.db.Exec("UPDATE searches SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete search: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSearchNotFound, id)
	}
	return nil
}

// Clear soft-deletes every history entry.
func (r *SearchRepository) Clear() (int, error) {
	result, err := r.db.Exec("UPDATE searches SET deleted_at = ? WHERE deleted_at IS NULL", time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check clear result: %w", err)
	}
	return int(affected), nil
}

func (r *SearchRepository) scanOne(row *sql.Row) (*models.PersistedSearch, error) {
	entry, err := scanRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, shared.ErrSearchNotFound
	}
	return entry, err
}

func scanRow(scan func(...any) error) (*models.PersistedSearch, error) {
	var (
		id, query, kind, didYouMean                        string
		sequence                                           int
		trackTotal, albumTotal, artistTotal, playlistTotal int
		createdAt, updatedAt                               time.Time
		deletedAt                                          *time.Time
	)
	err := scan(&id, &sequence, &query, &kind, &didYouMean, &trackTotal, &albumTotal, &artistTotal, &playlistTotal, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}
	return models.RestorePersistedSearch(id, sequence, query, kind, didYouMean, trackTotal, albumTotal, artistTotal, playlistTotal, createdAt, updatedAt, deletedAt), nil
}

// Snapshot builds a history entry from a loaded search handle. Fails if the
// handle carries a remote error or is not loaded yet.
func Snapshot(s *search.Search) (*models.PersistedSearch, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	if !s.IsLoaded() {
		return nil, fmt.Errorf("cannot snapshot a pending search")
	}

	query, err := s.Query()
	if err != nil {
		return nil, err
	}
	didYouMean, err := s.DidYouMean()
	if err != nil {
		return nil, err
	}
	trackTotal, err := s.TrackTotal()
	if err != nil {
		return nil, err
	}
	albumTotal, err := s.AlbumTotal()
	if err != nil {
		return nil, err
	}
	artistTotal, err := s.ArtistTotal()
	if err != nil {
		return nil, err
	}
	playlistTotal, err := s.PlaylistTotal()
	if err != nil {
		return nil, err
	}

	return models.NewPersistedSearch(query, s.Kind().String(), didYouMean, trackTotal, albumTotal, artistTotal, playlistTotal), nil
}
