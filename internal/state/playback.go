package state

import (
	"database/sql"
	"errors"
	"time"
)

// PlaybackState is what the player restores on the next run.
type PlaybackState struct {
	Source    string
	Loop      bool
	UpdatedAt time.Time
}

// GetPlayback returns the saved playback state, or nil if nothing was saved.
func (m *Manager) GetPlayback() (*PlaybackState, error) {
	var (
		source    string
		loop      bool
		updatedAt int64
	)

	row := m.db.QueryRow(`SELECT source, loop, updated_at FROM playback_state WHERE id = 1`)
	err := row.Scan(&source, &loop, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &PlaybackState{
		Source:    source,
		Loop:      loop,
		UpdatedAt: time.Unix(updatedAt, 0),
	}, nil
}

// SavePlayback persists the source and loop flag.
func (m *Manager) SavePlayback(source string, loop bool) error {
	_, err := m.db.Exec(`
		INSERT INTO playback_state (id, source, loop, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source = excluded.source,
			loop = excluded.loop,
			updated_at = excluded.updated_at
	`, source, loop, time.Now().Unix())
	return err
}
