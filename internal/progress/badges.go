package progress

// Badge with its earn rule. A rule that panics simply does not award
// the badge.
type Badge struct {
	Key   string           `json:"key"`
	Label string           `json:"label"`
	Rule  func(Stats) bool `json:"-"`
}

var Badges = []Badge{
	{Key: "first_week", Label: "✅ 7-Day Starter", Rule: func(s Stats) bool { return s.Longest >= 7 }},
	{Key: "hydration_pro", Label: "💧 Hydration Pro", Rule: func(s Stats) bool { return s.Hydration7 }},
	{Key: "glute_grind", Label: "🍑 Glute Grind", Rule: func(s Stats) bool { return s.GluteSets2wk >= 12 }},
	{Key: "consistency", Label: "🔥 21-Day Habit", Rule: func(s Stats) bool { return s.Longest >= 21 }},
	{Key: "early_bird", Label: "🌅 Early Bird", Rule: func(s Stats) bool { return s.MorningWorkouts >= 5 }},
}

// CheckBadges evaluates every badge rule against the stats and returns the
// keys of the earned ones. The result REPLACES any previously stored earned
// set, so badges can regress when the underlying stats do.
func CheckBadges(stats Stats) []string {
	earned := []string{}
	for _, badge := range Badges {
		if badgeEarned(badge, stats) {
			earned = append(earned, badge.Key)
		}
	}
	return earned
}

func badgeEarned(badge Badge, stats Stats) (earned bool) {
	defer func() {
		if r := recover(); r != nil {
			earned = false
		}
	}()
	if badge.Rule == nil {
		return false
	}
	return badge.Rule(stats)
}
