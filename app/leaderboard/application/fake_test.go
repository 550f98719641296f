package leaderboardservice

import (
	"context"

	leaderboarddomain "github.com/facematch/leaderboard/app/leaderboard/domain"
)

// ------------------------
// Fake Score Store
// ------------------------

type FakeScoreStore struct {
	trace []string

	GetScoreboardFunc   func(ctx context.Context, mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, error)
	SaveScoreboardFunc  func(ctx context.Context, mode leaderboarddomain.Mode, list leaderboarddomain.RankedList) error
	ClearScoreboardFunc func(ctx context.Context, mode leaderboarddomain.Mode) error

	saved map[leaderboarddomain.Mode]leaderboarddomain.RankedList
}

func NewFakeScoreStore() *FakeScoreStore {
	return &FakeScoreStore{
		trace: []string{},
		saved: make(map[leaderboarddomain.Mode]leaderboarddomain.RankedList),
	}
}

func (f *FakeScoreStore) record(step string) {
	f.trace = append(f.trace, step)
}

// --- ScoreStore implementation ---

func (f *FakeScoreStore) GetScoreboard(ctx context.Context, mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, error) {
	f.record("GetScoreboard")
	if f.GetScoreboardFunc != nil {
		return f.GetScoreboardFunc(ctx, mode)
	}
	list, ok := f.saved[mode]
	if !ok {
		return nil, ErrScoreboardNotFound
	}
	return list, nil
}

func (f *FakeScoreStore) SaveScoreboard(ctx context.Context, mode leaderboarddomain.Mode, list leaderboarddomain.RankedList) error {
	f.record("SaveScoreboard")
	if f.SaveScoreboardFunc != nil {
		return f.SaveScoreboardFunc(ctx, mode, list)
	}
	f.saved[mode] = list
	return nil
}

func (f *FakeScoreStore) ClearScoreboard(ctx context.Context, mode leaderboarddomain.Mode) error {
	f.record("ClearScoreboard")
	if f.ClearScoreboardFunc != nil {
		return f.ClearScoreboardFunc(ctx, mode)
	}
	f.saved[mode] = leaderboarddomain.RankedList{}
	return nil
}
