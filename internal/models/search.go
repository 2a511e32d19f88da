package models

import (
	"fmt"
	"time"
)

// PersistedSearch records one completed search operation: the query, the
// mode it ran in, and the server-reported totals per category. One row per
// issued page.
type PersistedSearch struct {
	id       string
	sequence int

	query      string
	kind       string
	didYouMean string

	trackTotal    int
	albumTotal    int
	artistTotal   int
	playlistTotal int

	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewPersistedSearch creates a history entry for a completed search. The ID
// is assigned by the repository on insert.
func NewPersistedSearch(query, kind, didYouMean string, trackTotal, albumTotal, artistTotal, playlistTotal int) *PersistedSearch {
	now := time.Now().UTC()
	return &PersistedSearch{
		query:         query,
		kind:          kind,
		didYouMean:    didYouMean,
		trackTotal:    trackTotal,
		albumTotal:    albumTotal,
		artistTotal:   artistTotal,
		playlistTotal: playlistTotal,
		createdAt:     now,
		updatedAt:     now,
	}
}

// RestorePersistedSearch rebuilds an entry from its database row.
func RestorePersistedSearch(id string, sequence int, query, kind, didYouMean string, trackTotal, albumTotal, artistTotal, playlistTotal int, createdAt, updatedAt time.Time, deletedAt *time.Time) *PersistedSearch {
	return &PersistedSearch{
		id:            id,
		sequence:      sequence,
		query:         query,
		kind:          kind,
		didYouMean:    didYouMean,
		trackTotal:    trackTotal,
		albumTotal:    albumTotal,
		artistTotal:   artistTotal,
		playlistTotal: playlistTotal,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		deletedAt:     deletedAt,
	}
}

func (s *PersistedSearch) ID() string           { return s.id }
func (s *PersistedSearch) SetID(id string)      { s.id = id }
func (s *PersistedSearch) Sequence() int        { return s.sequence }
func (s *PersistedSearch) SetSequence(seq int)  { s.sequence = seq }
func (s *PersistedSearch) Query() string        { return s.query }
func (s *PersistedSearch) Kind() string         { return s.kind }
func (s *PersistedSearch) DidYouMean() string   { return s.didYouMean }
func (s *PersistedSearch) TrackTotal() int      { return s.trackTotal }
func (s *PersistedSearch) AlbumTotal() int      { return s.albumTotal }
func (s *PersistedSearch) ArtistTotal() int     { return s.artistTotal }
func (s *PersistedSearch) PlaylistTotal() int   { return s.playlistTotal }
func (s *PersistedSearch) CreatedAt() time.Time { return s.createdAt }
func (s *PersistedSearch) UpdatedAt() time.Time { return s.updatedAt }
func (s *PersistedSearch) DeletedAt() *time.Time { return s.deletedAt }

// Validate checks the entry before insert.
func (s *PersistedSearch) Validate() error {
	if s.id == "" {
		return fmt.Errorf("persisted search missing ID")
	}
	if s.query == "" {
		return fmt.Errorf("persisted search missing query")
	}
	if s.kind == "" {
		return fmt.Errorf("persisted search missing kind")
	}
	return nil
}
