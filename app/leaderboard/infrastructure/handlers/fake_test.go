package scoreboardhandlers

import (
	"context"

	leaderboardservice "github.com/facematch/leaderboard/app/leaderboard/application"
	leaderboarddomain "github.com/facematch/leaderboard/app/leaderboard/domain"
)

// ------------------------
// Fake Scoreboard Service
// ------------------------

type FakeService struct {
	trace []string

	GetScoresFunc   func(ctx context.Context, mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, error)
	SubmitScoreFunc func(ctx context.Context, mode leaderboarddomain.Mode, name string, score int) (leaderboarddomain.RankedList, error)
	ClearScoresFunc func(ctx context.Context, mode leaderboarddomain.Mode) error
}

var _ leaderboardservice.Service = (*FakeService)(nil)

func NewFakeService() *FakeService {
	return &FakeService{trace: []string{}}
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) GetScores(ctx context.Context, mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, error) {
	f.record("GetScores:" + string(mode))
	if f.GetScoresFunc != nil {
		return f.GetScoresFunc(ctx, mode)
	}
	return leaderboarddomain.RankedList{}, nil
}

func (f *FakeService) SubmitScore(ctx context.Context, mode leaderboarddomain.Mode, name string, score int) (leaderboarddomain.RankedList, error) {
	f.record("SubmitScore:" + string(mode))
	if f.SubmitScoreFunc != nil {
		return f.SubmitScoreFunc(ctx, mode, name, score)
	}
	return leaderboarddomain.RankedList{}, nil
}

func (f *FakeService) ClearScores(ctx context.Context, mode leaderboarddomain.Mode) error {
	f.record("ClearScores:" + string(mode))
	if f.ClearScoresFunc != nil {
		return f.ClearScoresFunc(ctx, mode)
	}
	return nil
}
