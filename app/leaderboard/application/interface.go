package leaderboardservice

import (
	"context"
	"time"

	leaderboarddomain "github.com/facematch/leaderboard/app/leaderboard/domain"
)

// ScoreStore is the persistence boundary for scoreboards. Both backend
// variants (Postgres blob rows and spreadsheet worksheets) implement it; all
// ranking logic stays above this interface so the variants cannot diverge.
type ScoreStore interface {
	// GetScoreboard returns the persisted list for a mode. A mode that has
	// never been written returns ErrScoreboardNotFound.
	GetScoreboard(ctx context.Context, mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, error)

	// SaveScoreboard overwrites the persisted list for a mode.
	SaveScoreboard(ctx context.Context, mode leaderboarddomain.Mode, list leaderboarddomain.RankedList) error

	// ClearScoreboard empties the persisted list for a mode. Clearing a mode
	// that was never written is not an error.
	ClearScoreboard(ctx context.Context, mode leaderboarddomain.Mode) error
}

// Service is the read/mutate surface the HTTP handlers depend on.
type Service interface {
	GetScores(ctx context.Context, mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, error)
	SubmitScore(ctx context.Context, mode leaderboarddomain.Mode, name string, score int) (leaderboarddomain.RankedList, error)
	ClearScores(ctx context.Context, mode leaderboarddomain.Mode) error
}

// Metrics records service-side operation outcomes. A no-op implementation is
// available for tests.
type Metrics interface {
	RecordGetAttempt(mode leaderboarddomain.Mode)
	RecordGetFailure(mode leaderboarddomain.Mode)
	RecordSubmitAttempt(mode leaderboarddomain.Mode)
	RecordSubmitFailure(mode leaderboarddomain.Mode)
	RecordSubmitDuration(mode leaderboarddomain.Mode, d time.Duration)
	RecordClearAttempt(mode leaderboarddomain.Mode)
	RecordClearFailure(mode leaderboarddomain.Mode)
}

// NoopMetrics discards every observation.
type NoopMetrics struct{}

func (NoopMetrics) RecordGetAttempt(leaderboarddomain.Mode) {}

func (NoopMetrics) RecordGetFailure(leaderboarddomain.Mode) {}

func (NoopMetrics) RecordSubmitAttempt(leaderboarddomain.Mode) {}

func (NoopMetrics) RecordSubmitFailure(leaderboarddomain.Mode) {}

func (NoopMetrics) RecordSubmitDuration(leaderboarddomain.Mode, time.Duration) {}

func (NoopMetrics) RecordClearAttempt(leaderboarddomain.Mode) {}

func (NoopMetrics) RecordClearFailure(leaderboarddomain.Mode) {}
