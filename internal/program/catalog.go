package program

import (
	"sort"
	"strings"
)

// Level labels per weekday. "REST" days carry no plan.
var ProgramSplit = map[string]map[string]string{
	"Level 1": {
		"Monday":    "BOOTY",
		"Tuesday":   "LIGHT SHOULDERS & BACK",
		"Wednesday": "CARDIO",
		"Thursday":  "LEGS & BOOTY",
		"Friday":    "SHOULDERS & ABS/CORE",
		"Saturday":  "LIGHT SHOULDERS & BACK",
		"Sunday":    "REST",
	},
	"Level 2": {
		"Monday":    "BOOTY A",
		"Tuesday":   "LIGHT SHOULDERS & BACK",
		"Wednesday": "CARDIO",
		"Thursday":  "BOOTY B",
		"Friday":    "SHOULDERS & ABS/CORE",
		"Saturday":  "LEGS & BOOTY",
		"Sunday":    "REST",
	},
}

var WeekDays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var bootyWarmup = []Exercise{
	{Name: "🦘 Squat Jump", Sets: "2", Reps: "30 seconds each", Category: "Warm-up"},
	{Name: "🏃 High Knees", Sets: "1", Reps: "60 seconds", Category: "Warm-up"},
	{Name: "⭐ Jumping Jack", Sets: "1", Reps: "60 seconds", Category: "Warm-up"},
	{Name: "🦵 High Kicks", Sets: "1", Reps: "60 seconds", Category: "Warm-up"},
	{Name: "🔄 Forward Leg Swings", Sets: "1 left + 1 right", Reps: "30 seconds each leg", Category: "Warm-up"},
}

var bootyMain = []Exercise{
	{Name: "Kickbacks", Sets: "1 warm up + 3 each side", Reps: "10-12; 12-15 last set", Category: "Booty"},
	{Name: "Hip Thrust", Sets: "1 warm up + 3 + 1 AMRAP", Reps: "10-12; 8 last set; AMRAP ~20%", Category: "Booty"},
	{Name: "Hyperextensions", Sets: "1 warm up + 3 + 1 AMRAP", Reps: "10-12; 10s hold last rep", Category: "Booty"},
	{Name: "RDLs (Romanian Deadlifts)", Sets: "1 warm up + 3", Reps: "10-12; 8 last set", Category: "Booty"},
}

var bootyFinish = []Exercise{
	{Name: "Stairmaster", Sets: "—", Reps: "30 min fat loss levels 8-10", Category: "Cardio"},
	{Name: "Stretching", Sets: "—", Reps: "5 min", Category: "Recovery"},
}

// Monday plans, Level 1 BOOTY and Level 2 BOOTY A share the same exercises.
var (
	BootyL1Monday = concat(bootyWarmup, bootyMain, bootyFinish)
	BootyL2Monday = concat(bootyWarmup, bootyMain, bootyFinish)
)

// Tuesday, both levels.
var ShouldersBackLight = []Exercise{
	{Name: "Lat Pulldown Wide Grip", Sets: "1 warm up + 3", Reps: "10-12", Category: "Back"},
	{Name: "Seated Row Close Grip", Sets: "1 warm up + 3", Reps: "10-12", Category: "Back"},
	{Name: "Overhead Press", Sets: "1 warm up + 3", Reps: "10-12", Category: "Shoulders"},
	{Name: "Lateral Raises", Sets: "3", Reps: "12-15", Category: "Shoulders"},
	{Name: "Face Pulls", Sets: "3", Reps: "15-20", Category: "Shoulders"},
}

// Wednesday, both levels.
var CardioWednesday = []Exercise{
	{Name: "Stairmaster", Sets: "—", Reps: "30-45 min intervals", Category: "Cardio"},
	{Name: "Treadmill Incline Walk", Sets: "—", Reps: "Alternative: 30 min", Category: "Cardio"},
}

var legsWarmup = []Exercise{
	{Name: "🔄 Reverse Lunge to Knee Drive", Sets: "1", Reps: "12-15 reps each leg (60 sec)", Category: "Warm-up"},
	{Name: "🦵 Side-to-Side Squat Walk (with band)", Sets: "2", Reps: "30 seconds each", Category: "Warm-up"},
	{Name: "🌉 Banded Glute Bridge March", Sets: "2", Reps: "30 seconds each", Category: "Warm-up"},
}

var LegsBootyL1Thursday = concat(legsWarmup, []Exercise{
	{Name: "Leg Press", Sets: "1 warm up + 3", Reps: "10-12", Category: "Legs"},
	{Name: "Bulgarian Split Squats", Sets: "3 each leg", Reps: "10-12", Category: "Legs"},
	{Name: "Leg Curls", Sets: "3", Reps: "10-12", Category: "Legs"},
	{Name: "Cable Kickbacks", Sets: "3 each leg", Reps: "12-15", Category: "Booty"},
	{Name: "Walking Lunges", Sets: "3", Reps: "20 total", Category: "Legs"},
})

var BootyL2Thursday = concat(legsWarmup, bootyMain, []Exercise{
	{Name: "Abductors", Sets: "1 warm up + 3", Reps: "10-12; 8 last set", Category: "Booty"},
	{Name: "Leg Finisher: Single Leg Hip Thrust, Sumo Squats, Squat Jump", Sets: "1 set (each side) + 3", Reps: "8-10; 1 set", Category: "Booty"},
	{Name: "Stretching", Sets: "—", Reps: "5 min", Category: "Recovery"},
})

// Friday, both levels.
var ShouldersAbsFriday = []Exercise{
	{Name: "Shoulder Press", Sets: "1 warm up + 3", Reps: "10-12", Category: "Shoulders"},
	{Name: "Lateral Raises", Sets: "3", Reps: "12-15", Category: "Shoulders"},
	{Name: "Rear Delt Flyes", Sets: "3", Reps: "12-15", Category: "Shoulders"},
	{Name: "Plank", Sets: "3", Reps: "60 sec", Category: "Core"},
	{Name: "Russian Twists", Sets: "3", Reps: "30", Category: "Core"},
	{Name: "Leg Raises", Sets: "3", Reps: "15", Category: "Core"},
}

// Saturday Level 2. Level 1 repeats the Tuesday workout on Saturday.
var LegsBootyL2Saturday = []Exercise{
	{Name: "Squat", Sets: "1 warm up + 3", Reps: "10-12", Category: "Legs"},
	{Name: "Leg Press", Sets: "3", Reps: "12-15", Category: "Legs"},
	{Name: "Bulgarian Split Squats", Sets: "3 each leg", Reps: "10-12", Category: "Legs"},
	{Name: "Leg Curls", Sets: "3", Reps: "10-12", Category: "Legs"},
	{Name: "Cable Kickbacks", Sets: "3 each leg", Reps: "12-15", Category: "Booty"},
	{Name: "Walking Lunges", Sets: "3", Reps: "20 total", Category: "Legs"},
}

// Home friendly core circuit, runs twice through.
var AbsCoreOnly = []Exercise{
	{Name: "Plank", Sets: "1", Reps: "1 min", Category: "Core"},
	{Name: "Plank Knee Taps", Sets: "1", Reps: "30 sec", Category: "Core"},
	{Name: "Reverse Plank", Sets: "1", Reps: "1 min", Category: "Core"},
	{Name: "Butterfly Kicks", Sets: "1", Reps: "30 sec", Category: "Core"},
	{Name: "Half Leg Raises", Sets: "1", Reps: "30 sec", Category: "Core"},
	{Name: "Dead Bugs", Sets: "1", Reps: "30 sec", Category: "Core"},
	{Name: "Repeat 2x total", Sets: "—", Reps: "Complete entire circuit twice", Category: "Core"},
}

var restDay = []Exercise{
	{Name: "Rest Day", Sets: "—", Reps: "Recovery", Category: "Rest"},
}

var defaultWorkout = []Exercise{
	{Name: "Exercise 1", Sets: "3", Reps: "10-12", Category: "Main"},
	{Name: "Exercise 2", Sets: "3", Reps: "10-12", Category: "Main"},
	{Name: "Exercise 3", Sets: "3", Reps: "10-12", Category: "Accessory"},
}

// Weekly meal plans: diet option → weekday → [breakfast, lunch, dinner].
var WeeklyMeals = map[string]map[string][]string{
	"Option A: Omnivore": {
		"Monday":    {"Greek yogurt + berries + oats", "Chicken, rice & broccoli", "Salmon, sweet potato, asparagus"},
		"Tuesday":   {"Omelet + toast + fruit", "Turkey wrap + mixed greens", "Beef stir-fry + jasmine rice"},
		"Wednesday": {"Protein smoothie + banana + PB", "Chicken fajita bowl", "Shrimp tacos + slaw"},
		"Thursday":  {"Overnight oats + chia + berries", "Sushi bowl (salmon, rice, edamame)", "Lean beef chili + quinoa"},
		"Friday":    {"Eggs + avocado toast", "Grilled chicken Caesar", "Baked cod + potatoes + green beans"},
		"Saturday":  {"Protein pancakes + fruit", "Turkey burger + salad", "Steak + rice + vegetables"},
		"Sunday":    {"Cottage cheese + pineapple + granola", "Chicken pesto pasta + veggies", "Roast chicken + couscous + salad"},
	},
	"Option B: Pescatarian": {
		"Monday":    {"Greek yogurt + berries + oats", "Tuna salad wrap + greens", "Salmon, sweet potato, asparagus"},
		"Tuesday":   {"Tofu scramble + toast", "Shrimp quinoa bowl", "Baked cod + potatoes + broccoli"},
		"Wednesday": {"Protein smoothie + banana", "Sushi bowl", "Garlic shrimp pasta + salad"},
		"Thursday":  {"Overnight oats + chia", "Miso salmon + rice + bok choy", "Veggie chili + avocado toast"},
		"Friday":    {"Eggs + avocado toast", "Mediterranean tuna pasta", "Seared tuna + rice + edamame"},
		"Saturday":  {"Protein pancakes + fruit", "Grilled shrimp tacos + slaw", "Baked halibut + quinoa + veg"},
		"Sunday":    {"Cottage cheese + fruit", "Smoked salmon bagel", "Shrimp stir-fry + brown rice"},
	},
	"Option C: Vegan": {
		"Monday":    {"Tofu scramble + toast + fruit", "Lentil quinoa bowl + veggies", "Tempeh stir-fry + rice"},
		"Tuesday":   {"Overnight oats + chia + berries", "Chickpea wrap + greens", "Black bean pasta + broccoli"},
		"Wednesday": {"Pea-protein smoothie + banana + PB", "Buddha bowl", "Lentil curry + basmati rice"},
		"Thursday":  {"Buckwheat pancakes + fruit", "Hummus + falafel bowl", "Tofu poke bowl"},
		"Friday":    {"Tofu scramble burrito", "Pea-protein pasta + marinara", "Tempeh fajitas + tortillas"},
		"Saturday":  {"Oatmeal + seeds + berries", "Chickpea quinoa bowl", "Tofu steak + potatoes + veg"},
		"Sunday":    {"Soy yogurt + granola + fruit", "Vegan sushi + edamame", "Lentil bolognese + pasta"},
	},
}

// Joint friendly / no gym swaps per exercise id.
var ExerciseAlternatives = map[string]map[string][]string{
	"bulgarian_split_squats": {
		"low_impact": {"Goblet Squats", "Wall Sits", "Leg Press"},
		"at_home":    {"Static Lunges", "Step-ups", "Single-leg Glute Bridges"},
	},
	"hip_thrust": {
		"low_impact": {"Glute Bridges", "Clamshells", "Donkey Kicks"},
		"at_home":    {"Single-leg Glute Bridges", "Frog Pumps", "Elevated Glute Bridges"},
	},
	"rdls_romanian_deadlifts": {
		"low_impact": {"Good Mornings", "Cable Pull-throughs", "Seated Hamstring Curls"},
		"at_home":    {"Single-leg RDLs", "Nordic Curls", "Hamstring Walkouts"},
	},
}

// WorkoutForDay resolves the plan for a given level, weekday and schedule
// label, mirroring how the weekly schedule is navigated.
func WorkoutForDay(level int, dayName, workoutLabel string) []Exercise {
	if workoutLabel == "REST" {
		return restDay
	}

	switch level {
	case 1:
		switch {
		case dayName == "Monday" && strings.Contains(workoutLabel, "BOOTY"):
			return BootyL1Monday
		case dayName == "Tuesday" && strings.Contains(workoutLabel, "SHOULDERS"):
			return ShouldersBackLight
		case dayName == "Wednesday" && strings.Contains(workoutLabel, "CARDIO"):
			return CardioWednesday
		case dayName == "Thursday" && strings.Contains(workoutLabel, "LEGS"):
			return LegsBootyL1Thursday
		case dayName == "Friday" && strings.Contains(workoutLabel, "SHOULDERS"):
			return ShouldersAbsFriday
		case dayName == "Saturday" && strings.Contains(workoutLabel, "SHOULDERS"):
			// saturday repeats tuesday for level 1
			return ShouldersBackLight
		case strings.Contains(workoutLabel, "ABS/CORE"):
			return AbsCoreOnly
		}
	case 2:
		switch {
		case dayName == "Monday" && strings.Contains(workoutLabel, "BOOTY"):
			return BootyL2Monday
		case dayName == "Tuesday" && strings.Contains(workoutLabel, "SHOULDERS"):
			return ShouldersBackLight
		case dayName == "Wednesday" && strings.Contains(workoutLabel, "CARDIO"):
			return CardioWednesday
		case dayName == "Thursday" && strings.Contains(workoutLabel, "BOOTY"):
			return BootyL2Thursday
		case dayName == "Friday" && strings.Contains(workoutLabel, "SHOULDERS"):
			return ShouldersAbsFriday
		case dayName == "Saturday" && strings.Contains(workoutLabel, "LEGS"):
			return LegsBootyL2Saturday
		case strings.Contains(workoutLabel, "ABS/CORE"):
			return AbsCoreOnly
		}
	}

	return defaultWorkout
}

// AllExercises returns the unique exercise names across every day plan,
// sorted, for the admin video assignment list.
func AllExercises() []Exercise {
	plans := [][]Exercise{
		BootyL1Monday, ShouldersBackLight, CardioWednesday,
		LegsBootyL1Thursday, ShouldersAbsFriday,
		BootyL2Monday, BootyL2Thursday, LegsBootyL2Saturday,
		AbsCoreOnly,
	}

	seen := make(map[string]bool)
	var all []Exercise
	for _, plan := range plans {
		for _, ex := range plan {
			id := ExerciseID(ex.Name)
			if seen[id] {
				continue
			}
			seen[id] = true
			all = append(all, ex)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all
}

func concat(plans ...[]Exercise) []Exercise {
	var out []Exercise
	for _, plan := range plans {
		out = append(out, plan...)
	}
	return out
}
