package cache

import (
	"sync"

	leaderboarddomain "github.com/facematch/leaderboard/app/leaderboard/domain"
)

// MemoryCache is a non-durable Cache for tests and callers that do not want a
// file on disk.
type MemoryCache struct {
	mu    sync.Mutex
	lists map[leaderboarddomain.Mode]leaderboarddomain.RankedList
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{lists: make(map[leaderboarddomain.Mode]leaderboarddomain.RankedList)}
}

func (c *MemoryCache) Write(mode leaderboarddomain.Mode, list leaderboarddomain.RankedList) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[mode] = list.Clone()
	return nil
}

func (c *MemoryCache) Read(mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.lists[mode]
	if !ok {
		return nil, false, nil
	}
	return list.Clone(), true, nil
}
