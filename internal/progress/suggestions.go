package progress

const maxSuggestions = 5

// Suggestions picks up to five personalized tips from the user's recent
// check-ins and preferences.
func Suggestions(userProgress *UserProgress) []string {
	var suggestions []string

	if len(userProgress.WeightEntries) > 0 {
		recent := lastN(userProgress.WeightEntries, 7)
		var totalWater float64
		for _, e := range recent {
			totalWater += e.Water
		}
		if totalWater/float64(len(recent)) < 2 {
			suggestions = append(suggestions, "💧 Increase water intake to 2-3L daily for better recovery")
		}
	}

	switch userProgress.Prefs.Experience {
	case "beginner":
		suggestions = append(suggestions, "📚 Focus on form over weight - film yourself to check technique")
	case "intermediate":
		suggestions = append(suggestions, "🔥 Try adding drop sets to your last exercise for extra burn")
	}

	if focusOn(userProgress.Prefs.Focus, "glutes") {
		suggestions = append(suggestions, "🍑 Add pause reps to hip thrusts (3 sec at top)")
	}
	if focusOn(userProgress.Prefs.Focus, "core") {
		suggestions = append(suggestions, "💪 Try hollow body holds between sets for extra core work")
	}

	if userProgress.AITuning.AvailableDays < 3 {
		suggestions = append(suggestions, "⚡ Combine upper/lower on same day to maximize your 2 sessions")
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func focusOn(focus []string, area string) bool {
	for _, f := range focus {
		if f == area {
			return true
		}
	}
	return false
}
