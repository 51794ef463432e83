package dailylog

// Profile holds a user's fixed goal-setting answers.
type Profile struct {
	UserID        string  `json:"user_id"`
	Age           int     `json:"age"`
	Sex           string  `json:"sex"`
	HeightCm      float64 `json:"height_cm"`
	StartWeightKg float64 `json:"start_weight_kg"`
	ActivityLevel string  `json:"activity_level"`
	WeeklyPaceLb  float64 `json:"weekly_pace_lb"`
	GoalWeightKg  float64 `json:"goal_weight_kg"`
	GoalDate      string  `json:"goal_date"`
}

// DailyLog is one day's body metrics check-in. NetKcal is always computed
// as CalIn - CalOut when the row is written, never taken from the client.
type DailyLog struct {
	ID           int     `json:"id"`
	UserID       string  `json:"user_id"`
	Date         string  `json:"date"`
	WeightKg     float64 `json:"weight_kg"`
	WaterL       float64 `json:"water_l"`
	CalIn        int     `json:"cal_in"`
	CalOut       int     `json:"cal_out"`
	NetKcal      int     `json:"net_kcal"`
	WaistIn      float64 `json:"waist_in"`
	HipsIn       float64 `json:"hips_in"`
	Energy1To10  int     `json:"energy_1_10"`
	Notes        string  `json:"notes"`
	PhotoPath    string  `json:"photo_path"`
	OnTargetFlag string  `json:"on_target_flag"`
}

// Settings is the free-form macro split blob, persisted as JSON.
type Settings map[string]any
