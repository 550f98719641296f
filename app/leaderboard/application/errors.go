package leaderboardservice

import "errors"

// ErrScoreboardNotFound is returned by a ScoreStore when a mode has never
// been written. The service maps it to an empty list; it never reaches HTTP
// clients.
var ErrScoreboardNotFound = errors.New("scoreboard not found")
