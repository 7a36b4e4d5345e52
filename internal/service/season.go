package service

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// SeasonFunc yields the season string ("2024-25") to query.
type SeasonFunc func() string

// FixedSeason always returns season.
func FixedSeason(season string) SeasonFunc {
	return func() string { return season }
}

// ClockSeason derives the season from the clock on every call, so a
// long-running process rolls over when a new season tips off.
func ClockSeason(clock clockwork.Clock) SeasonFunc {
	return func() string { return SeasonFor(clock.Now()) }
}

// SeasonFor maps a date to the NBA season containing it. Seasons start in
// October; anything before that belongs to the season that began the
// previous autumn.
func SeasonFor(t time.Time) string {
	start := t.Year()
	if t.Month() < time.October {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}
