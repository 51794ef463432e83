package progress

// Prefs is what the user tells us about themselves in the preferences editor.
type Prefs struct {
	Experience string   `json:"experience"`
	Focus      []string `json:"focus"`
	Equipment  []string `json:"equipment"`
}

// AITuning feeds the coach chatbot and the suggestions engine.
type AITuning struct {
	InjuryNotes    string `json:"injury_notes"`
	AvailableDays  int    `json:"available_days"`
	Diet           string `json:"diet"`
	ProteinTargetG int    `json:"protein_target_g"`
}

type ReminderPrefs struct {
	Enabled bool     `json:"enabled"`
	Days    []string `json:"days"`
	Time    string   `json:"time"`
}

// WeightEntry is one daily check-in row. NetCalories is always recomputed
// from CaloriesIn - CaloriesOut when the entry is accepted.
type WeightEntry struct {
	Date        string  `json:"date"`
	Weight      float64 `json:"weight"`
	Waist       float64 `json:"waist"`
	Hips        float64 `json:"hips"`
	Water       float64 `json:"water"`
	CaloriesIn  int     `json:"calories_in"`
	CaloriesOut int     `json:"calories_out"`
	NetCalories int     `json:"net_calories"`
	Energy      int     `json:"energy"`
	Sleep       float64 `json:"sleep"`
	Notes       string  `json:"notes"`
}

// ProgressEntry has no fixed shape upstream, only the date is relied upon.
// Kept as a raw map so unknown fields survive a load/save round trip.
type ProgressEntry map[string]any

func (e ProgressEntry) Date() string {
	date, _ := e["date"].(string)
	return date
}

// UserProgress is everything persisted in the user progress JSON file.
type UserProgress struct {
	Prefs           Prefs           `json:"prefs"`
	AITuning        AITuning        `json:"ai_tuning"`
	BadgesEarned    []string        `json:"badges_earned"`
	ReminderPrefs   ReminderPrefs   `json:"reminder_prefs"`
	DisplayName     string          `json:"display_name"`
	WeightEntries   []WeightEntry   `json:"weight_entries"`
	ProgressEntries []ProgressEntry `json:"progress_entries"`
}

func DefaultProgress() *UserProgress {
	return &UserProgress{
		Prefs: Prefs{
			Experience: "beginner",
			Focus:      []string{"glutes", "core"},
			Equipment:  []string{"dumbbells", "machines", "bodyweight"},
		},
		AITuning: AITuning{
			InjuryNotes:    "",
			AvailableDays:  4,
			Diet:           "omnivore",
			ProteinTargetG: 120,
		},
		BadgesEarned: []string{},
		ReminderPrefs: ReminderPrefs{
			Enabled: false,
			Days:    []string{},
			Time:    "08:00",
		},
		DisplayName:     "",
		WeightEntries:   []WeightEntry{},
		ProgressEntries: []ProgressEntry{},
	}
}
