package scoreboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	leaderboardservice "github.com/facematch/leaderboard/app/leaderboard/application"
	leaderboarddomain "github.com/facematch/leaderboard/app/leaderboard/domain"
)

// ScoreboardDBImpl handles database operations for scoreboards.
type ScoreboardDBImpl struct {
	DB *bun.DB
}

var _ leaderboardservice.ScoreStore = (*ScoreboardDBImpl)(nil)

// GetScoreboard retrieves the persisted list for a mode.
func (db *ScoreboardDBImpl) GetScoreboard(ctx context.Context, mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, error) {
	scoreboard := new(Scoreboard)

	err := db.DB.NewSelect().
		Model(scoreboard).
		Column("id", "mode", "entries", "update_id").
		Where("mode = ?", mode).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, leaderboardservice.ErrScoreboardNotFound
		}
		return nil, fmt.Errorf("failed to get scoreboard: %w", err)
	}
	if scoreboard.Entries == nil {
		return leaderboarddomain.RankedList{}, nil
	}
	return scoreboard.Entries, nil
}

// SaveScoreboard replaces the persisted list for a mode, creating the row on
// first write. Each save gets a fresh update ID so snapshots are traceable.
func (db *ScoreboardDBImpl) SaveScoreboard(ctx context.Context, mode leaderboarddomain.Mode, list leaderboarddomain.RankedList) error {
	if list == nil {
		list = leaderboarddomain.RankedList{}
	}
	scoreboard := &Scoreboard{
		Mode:      mode,
		Entries:   list,
		UpdateID:  uuid.New(),
		UpdatedAt: time.Now().UTC(),
	}

	_, err := db.DB.NewInsert().
		Model(scoreboard).
		On("CONFLICT (mode) DO UPDATE").
		Set("entries = EXCLUDED.entries").
		Set("update_id = EXCLUDED.update_id").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save scoreboard for mode %q: %w", mode, err)
	}
	return nil
}

// ClearScoreboard empties the persisted list for a mode. A mode that was
// never written is left alone, keeping the operation idempotent.
func (db *ScoreboardDBImpl) ClearScoreboard(ctx context.Context, mode leaderboarddomain.Mode) error {
	_, err := db.DB.NewUpdate().
		Model((*Scoreboard)(nil)).
		Set("entries = '[]'::jsonb").
		Set("update_id = ?", uuid.New()).
		Set("updated_at = ?", time.Now().UTC()).
		Where("mode = ?", mode).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear scoreboard for mode %q: %w", mode, err)
	}
	return nil
}
