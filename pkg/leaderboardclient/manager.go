// Package leaderboardclient holds the game-side half of the leaderboard:
// a Manager that keeps one in-memory ranked list per mode, mirrors it to a
// durable local cache, and degrades to local ranking whenever the remote
// service is unreachable. The remote always wins when it answers.
package leaderboardclient

import (
	"context"
	"log/slog"
	"sync"
	"time"

	leaderboarddomain "github.com/facematch/leaderboard/app/leaderboard/domain"
)

// Source identifies which path produced a manager operation's result.
type Source string

const (
	// SourceRemote means the authoritative service answered.
	SourceRemote Source = "remote"
	// SourceCache means the cached mirror was adopted after a remote failure.
	SourceCache Source = "cache"
	// SourceComputed means the ranking was done locally after a remote failure.
	SourceComputed Source = "computed"
)

// Result reports the list a mutation settled on and the path that produced it.
type Result struct {
	List   leaderboarddomain.RankedList
	Source Source
}

// Manager mediates between the in-memory lists, the local cache, and the
// remote ranking service. Construct one at application start and share it by
// reference; all methods are safe for concurrent use.
//
// Failures never escape to callers: reads fall back to the cache, writes fall
// back to local ranking, and the only trace is logging, metrics, and the
// Source on the returned Result.
type Manager struct {
	remote  Remote
	cache   Cache
	logger  *slog.Logger
	metrics Metrics

	mu    sync.RWMutex
	lists map[leaderboarddomain.Mode]leaderboarddomain.RankedList

	// now is swappable so tests can pin the fallback timestamps.
	now func() time.Time
}

// NewManager creates a Manager with empty lists. Call Initialize to hydrate
// them.
func NewManager(remote Remote, cache Cache, logger *slog.Logger, metrics Metrics) *Manager {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	lists := make(map[leaderboarddomain.Mode]leaderboarddomain.RankedList, len(leaderboarddomain.Modes()))
	for _, mode := range leaderboarddomain.Modes() {
		lists[mode] = leaderboarddomain.RankedList{}
	}
	return &Manager{
		remote:  remote,
		cache:   cache,
		logger:  logger,
		metrics: metrics,
		lists:   lists,
		now:     time.Now,
	}
}

// Initialize hydrates every mode's list: remote first, cache on remote
// failure, empty when both come up dry. It never fails; the returned map
// reports which source each mode was served from.
func (m *Manager) Initialize(ctx context.Context) map[leaderboarddomain.Mode]Source {
	sources := make(map[leaderboarddomain.Mode]Source, len(leaderboarddomain.Modes()))
	for _, mode := range leaderboarddomain.Modes() {
		sources[mode] = m.initializeMode(ctx, mode)
	}
	return sources
}

func (m *Manager) initializeMode(ctx context.Context, mode leaderboarddomain.Mode) Source {
	list, err := m.remote.FetchScores(ctx, mode)
	if err == nil {
		m.adopt(mode, list)
		m.mirror(mode, list)
		m.metrics.RecordServed("initialize", string(SourceRemote))
		return SourceRemote
	}
	m.logger.Warn("remote fetch failed, falling back to cache", "mode", mode, "error", err)

	cached, ok, cacheErr := m.cache.Read(mode)
	if cacheErr != nil {
		m.logger.Warn("cache read failed", "mode", mode, "error", cacheErr)
	}
	if !ok {
		cached = leaderboarddomain.RankedList{}
	}
	m.adopt(mode, cached)
	m.metrics.RecordServed("initialize", string(SourceCache))
	return SourceCache
}

// AddScore submits a score. When the remote answers, its re-ranked list is
// adopted verbatim; otherwise the same insert/sort/truncate runs locally with
// the current time as the tie-breaker date. Either way the cache is rewritten
// and the in-memory list replaced as a whole.
func (m *Manager) AddScore(ctx context.Context, mode leaderboarddomain.Mode, name string, score int) Result {
	list, err := m.remote.SubmitScore(ctx, mode, name, score)
	if err == nil {
		m.adopt(mode, list)
		m.mirror(mode, list)
		m.metrics.RecordServed("add_score", string(SourceRemote))
		return Result{List: list.Clone(), Source: SourceRemote}
	}
	m.logger.Warn("remote submit failed, ranking locally", "mode", mode, "name", name, "error", err)

	entry := leaderboarddomain.ScoreEntry{Name: name, Score: score, Date: m.now().UTC()}

	m.mu.Lock()
	updated := m.lists[mode].Insert(entry)
	m.lists[mode] = updated
	m.mu.Unlock()

	m.mirror(mode, updated)
	m.metrics.RecordServed("add_score", string(SourceComputed))
	return Result{List: updated.Clone(), Source: SourceComputed}
}

// GetScores returns a copy of the current in-memory list for a mode. No I/O.
func (m *Manager) GetScores(mode leaderboarddomain.Mode) leaderboarddomain.RankedList {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lists[mode].Clone()
}

// IsHighScore reports whether score would earn a spot on the mode's current
// in-memory list. No I/O.
func (m *Manager) IsHighScore(mode leaderboarddomain.Mode, score int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lists[mode].IsHighScore(score)
}

// ClearScores empties the mode's in-memory list and cache entry before
// returning; the remote clear runs detached and its failure is only counted
// and logged. Other modes are untouched.
func (m *Manager) ClearScores(ctx context.Context, mode leaderboarddomain.Mode) {
	empty := leaderboarddomain.RankedList{}
	m.adopt(mode, empty)
	m.mirror(mode, empty)

	// The operation is complete once local state is cleared; the remote is
	// only told about it.
	go func(ctx context.Context) {
		if err := m.remote.ClearScores(ctx, mode); err != nil {
			m.metrics.RecordRemoteClearFailure()
			m.logger.Warn("remote clear failed", "mode", mode, "error", err)
		}
	}(context.WithoutCancel(ctx))
}

// adopt replaces the mode's in-memory list wholesale.
func (m *Manager) adopt(mode leaderboarddomain.Mode, list leaderboarddomain.RankedList) {
	if list == nil {
		list = leaderboarddomain.RankedList{}
	}
	m.mu.Lock()
	m.lists[mode] = list
	m.mu.Unlock()
}

// mirror best-effort writes the list to the local cache.
func (m *Manager) mirror(mode leaderboarddomain.Mode, list leaderboarddomain.RankedList) {
	if err := m.cache.Write(mode, list); err != nil {
		m.logger.Warn("cache write failed", "mode", mode, "error", err)
	}
}
