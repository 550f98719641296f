package scoreboarddb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	leaderboarddomain "github.com/facematch/leaderboard/app/leaderboard/domain"
)

// Scoreboard is one mode's ranked list persisted as a single JSONB blob.
// There is exactly one row per mode; writes replace the blob wholesale.
type Scoreboard struct {
	bun.BaseModel `bun:"table:scoreboards,alias:sb"`

	ID        int64                        `bun:"id,pk,autoincrement"`
	Mode      leaderboarddomain.Mode       `bun:"mode,notnull,unique"`
	Entries   leaderboarddomain.RankedList `bun:"entries,type:jsonb,notnull"`
	UpdateID  uuid.UUID                    `bun:"update_id,type:uuid,notnull"`
	UpdatedAt time.Time                    `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

var _ bun.BeforeInsertHook = (*Scoreboard)(nil)

func (s *Scoreboard) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if s.UpdateID == uuid.Nil {
		s.UpdateID = uuid.New()
	}
	return nil
}
