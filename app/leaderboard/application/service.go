package leaderboardservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	leaderboarddomain "github.com/facematch/leaderboard/app/leaderboard/domain"
)

// ScoreboardService owns the ranking rules: it stamps submission times,
// re-sorts, and truncates, then hands the whole list to the store. Backends
// only persist and retrieve.
type ScoreboardService struct {
	store   ScoreStore
	logger  *slog.Logger
	metrics Metrics

	// now is swappable so tests can pin timestamps.
	now func() time.Time
}

var _ Service = (*ScoreboardService)(nil)

// NewScoreboardService creates a new ScoreboardService.
func NewScoreboardService(store ScoreStore, logger *slog.Logger, metrics Metrics) *ScoreboardService {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &ScoreboardService{
		store:   store,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// GetScores returns the current top list for a mode. A mode that has never
// been written yields an empty list, not an error.
func (s *ScoreboardService) GetScores(ctx context.Context, mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, error) {
	s.metrics.RecordGetAttempt(mode)

	list, err := s.store.GetScoreboard(ctx, mode)
	if err != nil {
		if errors.Is(err, ErrScoreboardNotFound) {
			return leaderboarddomain.RankedList{}, nil
		}
		s.metrics.RecordGetFailure(mode)
		s.logger.Error("failed to load scoreboard", "mode", mode, "error", err)
		return nil, fmt.Errorf("failed to load scoreboard for mode %q: %w", mode, err)
	}
	return list, nil
}

// SubmitScore appends a new entry with a server-assigned timestamp, re-ranks,
// truncates, persists, and returns the resulting list.
func (s *ScoreboardService) SubmitScore(ctx context.Context, mode leaderboarddomain.Mode, name string, score int) (leaderboarddomain.RankedList, error) {
	s.metrics.RecordSubmitAttempt(mode)
	start := s.now()
	defer func() { s.metrics.RecordSubmitDuration(mode, time.Since(start)) }()

	list, err := s.store.GetScoreboard(ctx, mode)
	if err != nil && !errors.Is(err, ErrScoreboardNotFound) {
		s.metrics.RecordSubmitFailure(mode)
		s.logger.Error("failed to load scoreboard before submit", "mode", mode, "error", err)
		return nil, fmt.Errorf("failed to load scoreboard for mode %q: %w", mode, err)
	}

	entry := leaderboarddomain.ScoreEntry{
		Name:  name,
		Score: score,
		Date:  s.now().UTC(),
	}
	updated := list.Insert(entry)

	if err := s.store.SaveScoreboard(ctx, mode, updated); err != nil {
		s.metrics.RecordSubmitFailure(mode)
		s.logger.Error("failed to save scoreboard", "mode", mode, "error", err)
		return nil, fmt.Errorf("failed to save scoreboard for mode %q: %w", mode, err)
	}

	s.logger.Info("score submitted", "mode", mode, "name", name, "score", score, "entries", len(updated))
	return updated, nil
}

// ClearScores empties the persisted list for a mode. Idempotent.
func (s *ScoreboardService) ClearScores(ctx context.Context, mode leaderboarddomain.Mode) error {
	s.metrics.RecordClearAttempt(mode)

	if err := s.store.ClearScoreboard(ctx, mode); err != nil {
		s.metrics.RecordClearFailure(mode)
		s.logger.Error("failed to clear scoreboard", "mode", mode, "error", err)
		return fmt.Errorf("failed to clear scoreboard for mode %q: %w", mode, err)
	}

	s.logger.Info("scoreboard cleared", "mode", mode)
	return nil
}
