package state

import (
	"database/sql"
	"time"
)

// GetVolume returns the saved volume level, defaulting to 1.0 on first
// run.
func (m *Manager) GetVolume() (float64, error) {
	var volume float64

	row := m.db.QueryRow(`SELECT volume FROM player_state WHERE id = 1`)
	err := row.Scan(&volume)
	if err == sql.ErrNoRows {
		return 1.0, nil
	}
	if err != nil {
		return 0, err
	}

	return volume, nil
}

// SaveVolume schedules a debounced persist of the volume level. Repeated
// calls within the debounce window collapse into one write; Close
// flushes whatever is still pending.
func (m *Manager) SaveVolume(level float64) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &level

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveVolume(m.db, *pending)
		}
	})
}

func saveVolume(db *sql.DB, level float64) error {
	_, err := db.Exec(`
		INSERT INTO player_state (id, volume)
		VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET volume = excluded.volume
	`, level)
	return err
}
