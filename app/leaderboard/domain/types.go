package leaderboarddomain

import (
	"sort"
	"time"
)

// MaxEntries is the number of entries a ranked list is truncated to after
// every mutation.
const MaxEntries = 10

// Mode identifies one of the game's difficulty variants. Each mode owns an
// independent ranked list.
type Mode string

const (
	ModeEasy Mode = "easy"
	ModeHard Mode = "hard"
)

// Modes returns every known mode, in a stable order.
func Modes() []Mode {
	return []Mode{ModeEasy, ModeHard}
}

// ParseMode maps a raw string to a Mode. Unknown or empty values default to
// easy, matching the service's GET behavior.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeEasy, ModeHard:
		return Mode(s)
	default:
		return ModeEasy
	}
}

// IsValid reports whether m is one of the known modes.
func (m Mode) IsValid() bool {
	return m == ModeEasy || m == ModeHard
}

// ScoreEntry is a single leaderboard row. Name is player-supplied and
// unvalidated; Date is the submission timestamp and breaks score ties.
type ScoreEntry struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Date  time.Time `json:"date"`
}

// RankedList is the top-N scoreboard for one mode, sorted by score descending
// with ties broken by date descending (most recent first). Length never
// exceeds MaxEntries after any mutation.
type RankedList []ScoreEntry

// Insert returns a new list with e added, re-sorted, and truncated to
// MaxEntries. The receiver is never mutated, so callers can swap whole list
// references atomically.
func (l RankedList) Insert(e ScoreEntry) RankedList {
	out := make(RankedList, 0, len(l)+1)
	out = append(out, l...)
	out = append(out, e)
	sortEntries(out)
	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}
	return out
}

func sortEntries(entries RankedList) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Date.After(entries[j].Date)
	})
}

// LowestScore returns the score of the last entry, or 0 for an empty list.
func (l RankedList) LowestScore() int {
	if len(l) == 0 {
		return 0
	}
	return l[len(l)-1].Score
}

// IsHighScore reports whether score would earn a place on the list: always
// true while the list is short of MaxEntries, otherwise only when score
// strictly beats the current lowest entry.
func (l RankedList) IsHighScore(score int) bool {
	if len(l) < MaxEntries {
		return true
	}
	return score > l.LowestScore()
}

// Clone returns an independent copy of the list.
func (l RankedList) Clone() RankedList {
	if l == nil {
		return nil
	}
	out := make(RankedList, len(l))
	copy(out, l)
	return out
}
