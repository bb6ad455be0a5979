package entities

import "time"

// StreakUpdate is the outcome of evaluating the daily streak.
type StreakUpdate struct {
	Streak         int
	LongestStreak  int
	LastActiveDate time.Time
	Changed        bool // false when the user was already active today
}

// UpdateStreak derives the consecutive-day streak from the last active date.
//
// Days are compared as calendar dates in now's location, so two events one
// minute apart across midnight fall on different days:
//  1. No previous activity starts a streak of 1.
//  2. Activity earlier today changes nothing.
//  3. Activity yesterday extends the streak by one.
//  4. Anything older resets the streak to 1 and keeps the longest streak.
func UpdateStreak(lastActive *time.Time, current, longest int, now time.Time) StreakUpdate {
	if lastActive == nil {
		return StreakUpdate{
			Streak:         1,
			LongestStreak:  max(longest, 1),
			LastActiveDate: now,
			Changed:        true,
		}
	}

	days := daysBetween(lastActive.In(now.Location()), now)

	switch {
	case days <= 0:
		// Same day, or a timestamp from the future after a clock change.
		return StreakUpdate{
			Streak:         current,
			LongestStreak:  longest,
			LastActiveDate: *lastActive,
			Changed:        false,
		}

	case days == 1:
		streak := current + 1
		return StreakUpdate{
			Streak:         streak,
			LongestStreak:  max(longest, streak),
			LastActiveDate: now,
			Changed:        true,
		}

	default:
		return StreakUpdate{
			Streak:         1,
			LongestStreak:  max(longest, 1),
			LastActiveDate: now,
			Changed:        true,
		}
	}
}

// daysBetween counts calendar days from a to b, ignoring time of day.
// Dates are rebuilt in UTC so DST transitions do not shorten a day.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)

	return int(db.Sub(da).Hours() / 24)
}
