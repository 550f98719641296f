package leaderboardclient

import (
	"context"

	leaderboarddomain "github.com/facematch/leaderboard/app/leaderboard/domain"
)

// Remote is the ranking service as seen from the client. HTTPRemote is the
// production implementation; tests substitute fakes.
type Remote interface {
	FetchScores(ctx context.Context, mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, error)
	SubmitScore(ctx context.Context, mode leaderboarddomain.Mode, name string, score int) (leaderboarddomain.RankedList, error)
	ClearScores(ctx context.Context, mode leaderboarddomain.Mode) error
}

// Cache is the durable per-device mirror. Read reports ok=false for a mode
// that was never written or whose stored payload is corrupt.
type Cache interface {
	Write(mode leaderboarddomain.Mode, list leaderboarddomain.RankedList) error
	Read(mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, bool, error)
}

// Metrics captures which path served each manager operation and failures of
// the detached remote clear.
type Metrics interface {
	RecordServed(operation, source string)
	RecordRemoteClearFailure()
}

// NoopMetrics discards every observation.
type NoopMetrics struct{}

func (NoopMetrics) RecordServed(string, string) {}

func (NoopMetrics) RecordRemoteClearFailure() {}
