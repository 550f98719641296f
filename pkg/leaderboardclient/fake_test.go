package leaderboardclient

import (
	"context"
	"sync/atomic"

	leaderboarddomain "github.com/facematch/leaderboard/app/leaderboard/domain"
)

// countingMetrics is a Metrics that only counts, safe across goroutines.
type countingMetrics struct {
	served        atomic.Int64
	clearFailures atomic.Int64
}

func (m *countingMetrics) RecordServed(string, string) { m.served.Add(1) }

func (m *countingMetrics) RecordRemoteClearFailure() { m.clearFailures.Add(1) }

// ------------------------
// Fake Remote
// ------------------------

type FakeRemote struct {
	trace []string

	FetchScoresFunc func(ctx context.Context, mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, error)
	SubmitScoreFunc func(ctx context.Context, mode leaderboarddomain.Mode, name string, score int) (leaderboarddomain.RankedList, error)
	ClearScoresFunc func(ctx context.Context, mode leaderboarddomain.Mode) error
}

var _ Remote = (*FakeRemote)(nil)

func NewFakeRemote() *FakeRemote {
	return &FakeRemote{trace: []string{}}
}

func (f *FakeRemote) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRemote) FetchScores(ctx context.Context, mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, error) {
	f.record("FetchScores:" + string(mode))
	if f.FetchScoresFunc != nil {
		return f.FetchScoresFunc(ctx, mode)
	}
	return leaderboarddomain.RankedList{}, nil
}

func (f *FakeRemote) SubmitScore(ctx context.Context, mode leaderboarddomain.Mode, name string, score int) (leaderboarddomain.RankedList, error) {
	f.record("SubmitScore:" + string(mode))
	if f.SubmitScoreFunc != nil {
		return f.SubmitScoreFunc(ctx, mode, name, score)
	}
	return leaderboarddomain.RankedList{}, nil
}

func (f *FakeRemote) ClearScores(ctx context.Context, mode leaderboarddomain.Mode) error {
	f.record("ClearScores:" + string(mode))
	if f.ClearScoresFunc != nil {
		return f.ClearScoresFunc(ctx, mode)
	}
	return nil
}

// ------------------------
// Fake Cache
// ------------------------

type FakeCache struct {
	trace []string

	WriteFunc func(mode leaderboarddomain.Mode, list leaderboarddomain.RankedList) error
	ReadFunc  func(mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, bool, error)

	stored map[leaderboarddomain.Mode]leaderboarddomain.RankedList
}

var _ Cache = (*FakeCache)(nil)

func NewFakeCache() *FakeCache {
	return &FakeCache{
		trace:  []string{},
		stored: make(map[leaderboarddomain.Mode]leaderboarddomain.RankedList),
	}
}

func (f *FakeCache) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeCache) Write(mode leaderboarddomain.Mode, list leaderboarddomain.RankedList) error {
	f.record("Write:" + string(mode))
	if f.WriteFunc != nil {
		return f.WriteFunc(mode, list)
	}
	f.stored[mode] = list.Clone()
	return nil
}

func (f *FakeCache) Read(mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, bool, error) {
	f.record("Read:" + string(mode))
	if f.ReadFunc != nil {
		return f.ReadFunc(mode)
	}
	list, ok := f.stored[mode]
	if !ok {
		return nil, false, nil
	}
	return list.Clone(), true, nil
}
