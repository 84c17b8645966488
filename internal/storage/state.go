package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/labMorim/MavitKanban/internal/board"
)

// Storage keys. The board collection and the active-board pointer are
// persisted separately so the collection blob keeps the same top-level
// shape as an exported document (an array of boards).
const (
	KeyBoards     = "boards"
	KeyActive     = "active_board"
	KeyBackground = "background"
)

// StateRepo stores opaque string values under fixed keys.
type StateRepo struct {
	db *sql.DB
}

// NewStateRepo wires a repo to db.
func NewStateRepo(db *sql.DB) *StateRepo {
	return &StateRepo{db: db}
}

// Load returns the value under key, with ok=false when the key has
// never been saved.
func (r *StateRepo) Load(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM app_state WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load %s: %w", key, err)
	}
	return value, true, nil
}

const upsertState = `
	INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// execer covers *sql.DB and *sql.Tx so the upsert can run either
// standalone or inside a transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveValue(ctx context.Context, e execer, key, value string) error {
	if _, err := e.ExecContext(ctx, upsertState, key, value, Now()); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Save upserts the value under key. Last write wins.
func (r *StateRepo) Save(ctx context.Context, key, value string) error {
	return saveValue(ctx, r.db, key, value)
}

// SaveCollection mirrors the whole collection to storage: the board
// array under KeyBoards and the active pointer under KeyActive.
func (r *StateRepo) SaveCollection(ctx context.Context, c board.Collection) error {
	boards := c.Boards
	if boards == nil {
		boards = []board.Board{}
	}
	data, err := json.Marshal(boards)
	if err != nil {
		return fmt.Errorf("marshal boards: %w", err)
	}
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, kv := range [][2]string{
			{KeyBoards, string(data)},
			{KeyActive, c.ActiveBoardID},
		} {
			if err := saveValue(ctx, tx, kv[0], kv[1]); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadCollection restores the collection, normalizing a stale active
// pointer. ok is false when no collection has ever been saved.
func (r *StateRepo) LoadCollection(ctx context.Context) (board.Collection, bool, error) {
	blob, ok, err := r.Load(ctx, KeyBoards)
	if err != nil || !ok {
		return board.Collection{}, false, err
	}
	var boards []board.Board
	if err := json.Unmarshal([]byte(blob), &boards); err != nil {
		return board.Collection{}, false, fmt.Errorf("unmarshal boards: %w", err)
	}
	active, _, err := r.Load(ctx, KeyActive)
	if err != nil {
		return board.Collection{}, false, err
	}
	c := board.Collection{Boards: boards, ActiveBoardID: active}
	return c.Normalize(), true, nil
}
