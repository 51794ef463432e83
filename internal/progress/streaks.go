package progress

import (
	"sort"
	"strings"
)

// Stats is the input to the badge rules and the streaks response.
type Stats struct {
	Current         int    `json:"current"`
	Longest         int    `json:"longest"`
	LastDate        string `json:"last_date"`
	Hydration7      bool   `json:"hydration7"`
	GluteSets2wk    int    `json:"glute_sets_2wk"`
	MorningWorkouts int    `json:"morning_workouts"`
}

// ComputeStreaks derives streak stats from the user's progress and the
// completed exercise keys from the workout tracker.
//
// The streak values are a deliberate approximation: current caps at the
// entry count up to 7, longest up to 21. Day-gap aware streaks would award
// and revoke badges differently, so the approximation stays until the badge
// rules are revisited together with it.
func ComputeStreaks(userProgress *UserProgress, completedExercises []string) Stats {
	var dates []string
	for _, e := range userProgress.ProgressEntries {
		dates = append(dates, e.Date())
	}
	for _, e := range userProgress.WeightEntries {
		dates = append(dates, e.Date)
	}

	stats := Stats{}
	if len(dates) > 0 {
		sort.Strings(dates)
		stats.Current = min(len(dates), 7)
		stats.Longest = min(len(dates), 21)
		stats.LastDate = dates[len(dates)-1]
	}

	// all of the last 7 check-ins at >= 2 liters; fewer than 7 never counts
	if recent := lastN(userProgress.WeightEntries, 7); len(recent) >= 7 {
		stats.Hydration7 = true
		for _, e := range recent {
			if e.Water < 2 {
				stats.Hydration7 = false
				break
			}
		}
	}

	for _, key := range completedExercises {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "hip") || strings.Contains(lower, "thrust") {
			stats.GluteSets2wk++
		}
	}

	return stats
}

func lastN(entries []WeightEntry, n int) []WeightEntry {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
