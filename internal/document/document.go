// Package document reads and writes board snapshots as JSON files.
// The document shape is identical to the persisted board collection: a
// top-level array of boards.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/labMorim/MavitKanban/internal/board"
)

// ErrMalformedDocument marks an import whose payload is not a board
// array. Nothing is imported in that case.
var ErrMalformedDocument = errors.New("document: not a board collection")

// Export writes the boards to w as pretty-printed JSON.
func Export(w io.Writer, boards []board.Board) error {
	if boards == nil {
		boards = []board.Board{}
	}
	data, err := json.MarshalIndent(boards, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal boards: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// Filename returns the dated export name, e.g. mavit-board-2026-08-29.json.
func Filename(now time.Time) string {
	return fmt.Sprintf("mavit-board-%s.json", now.Format("2006-01-02"))
}

// ExportFile writes the boards to a dated file under dir and returns
// the full path. The write goes through a temp file and rename so a
// failed export never leaves a truncated document.
func ExportFile(dir string, boards []board.Board, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir export dir: %w", err)
	}
	path := filepath.Join(dir, Filename(now))
	tmp, err := os.CreateTemp(dir, ".mavit-export-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if err := Export(tmp, boards); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("rename export: %w", err)
	}
	return path, nil
}

// Import parses a board array from r. The document is accepted only
// when the top-level JSON value is an array; any parse failure or
// other shape returns ErrMalformedDocument and no partial result.
func Import(r io.Reader) ([]board.Board, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var probe []json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, ErrMalformedDocument
	}
	var boards []board.Board
	if err := json.Unmarshal(data, &boards); err != nil {
		return nil, ErrMalformedDocument
	}
	return boards, nil
}

// ImportFile parses the board array stored at path.
func ImportFile(path string) ([]board.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Import(f)
}
