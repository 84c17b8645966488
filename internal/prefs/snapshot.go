// Package prefs keeps a plain-file backup of the board collection in
// the user config dir. It is a safety net behind the database: the
// snapshot is rewritten after every save and restored on startup when
// the database holds no state.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/labMorim/MavitKanban/internal/board"
)

const snapshotFile = "boards.json"

func snapshotPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "mavitkanban")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, snapshotFile), nil
}

// SaveSnapshot writes the board array atomically.
func SaveSnapshot(boards []board.Board) error {
	path, err := snapshotPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(boards, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadSnapshot returns the backed-up boards, or nil when no snapshot
// exists.
func LoadSnapshot() ([]board.Board, error) {
	path, err := snapshotPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var boards []board.Board
	if err := json.Unmarshal(data, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}
