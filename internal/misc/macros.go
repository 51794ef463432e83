package misc

import "fmt"

const (
	ActivitySedentary        = "Sedentary"
	ActivityLightlyActive    = "Lightly Active"
	ActivityModeratelyActive = "Moderately Active"
	ActivityVeryActive       = "Very Active"

	GoalLoseFat     = "Lose Fat"
	GoalMaintain    = "Maintain"
	GoalBuildMuscle = "Build Muscle"
)

var activityMultipliers = map[string]float64{
	ActivitySedentary:        1.2,
	ActivityLightlyActive:    1.375,
	ActivityModeratelyActive: 1.55,
	ActivityVeryActive:       1.725,
}

// MacroTargets are daily targets from the Mifflin-St Jeor estimate with a
// fixed 300 kcal cut or surplus depending on the goal.
type MacroTargets struct {
	BMR      int `json:"bmr"`
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

func CalculateMacros(
	weightLb float64,
	heightIn float64,
	age int,
	activityLevel string,
	goal string,
) (MacroTargets, error) {
	if weightLb <= 0 || heightIn <= 0 || age <= 0 {
		return MacroTargets{}, fmt.Errorf("invalid stats: weight %.1f, height %.1f, age %d", weightLb, heightIn, age)
	}

	multiplier, ok := activityMultipliers[activityLevel]
	if !ok {
		return MacroTargets{}, fmt.Errorf("unknown activity level: %s", activityLevel)
	}

	bmr := (10 * weightLb * 0.453592) + (6.25 * heightIn * 2.54) - (5 * float64(age)) - 161
	tdee := bmr * multiplier

	var calories float64
	switch goal {
	case GoalLoseFat:
		calories = tdee - 300
	case GoalMaintain:
		calories = tdee
	case GoalBuildMuscle:
		calories = tdee + 300
	default:
		return MacroTargets{}, fmt.Errorf("unknown goal: %s", goal)
	}

	proteinG := int(weightLb * 0.8)
	fatG := int(calories * 0.25 / 9)
	carbsG := int((calories - float64(proteinG*4) - float64(fatG*9)) / 4)

	return MacroTargets{
		BMR:      int(bmr),
		Calories: int(calories),
		ProteinG: proteinG,
		CarbsG:   carbsG,
		FatG:     fatG,
	}, nil
}
