package program

import (
	"regexp"
	"strconv"
	"strings"
)

// Exercise is a single item of a day plan. Sets and Reps are coach-authored
// free text, e.g. "1 warm up set + 3 + 1 AMRAP" / "10-12 reps; 8 reps (last set)".
type Exercise struct {
	Name     string `json:"name"`
	Sets     string `json:"sets"`
	Reps     string `json:"reps"`
	Category string `json:"category"`
}

var (
	slugRegex       = regexp.MustCompile(`[^a-z0-9]+`)
	warmupSetsRegex = regexp.MustCompile(`\d+\s*warm[- ]*up.*?(\+|$)`)
	numberRegex     = regexp.MustCompile(`\d+`)
)

// ExerciseID derives a stable identifier from an exercise display name.
// It is used as the join key between the program catalog, the workout log,
// the video mapping and the video library, so it must never change.
func ExerciseID(exerciseName string) string {
	slug := slugRegex.ReplaceAllString(strings.ToLower(exerciseName), "_")
	return strings.Trim(slug, "_")
}

// MaxSetCount caps how many set input rows a single exercise can produce.
const MaxSetCount = 15

// ParseSetCount turns a coach-authored sets string into the number of
// trackable sets. Warm up prefixes like "1 warm up set +" are not counted.
func ParseSetCount(setsString string) int {
	if strings.TrimSpace(setsString) == "" || strings.TrimSpace(setsString) == "—" {
		return 0
	}

	if num, err := strconv.Atoi(strings.TrimSpace(setsString)); err == nil {
		if num > MaxSetCount {
			return MaxSetCount
		}
		return num
	}

	s := strings.ToLower(setsString)
	s = warmupSetsRegex.ReplaceAllString(s, "")

	nums := numberRegex.FindAllString(s, -1)
	if len(nums) == 0 {
		if strings.Contains(s, "set") {
			return 1
		}
		return 0
	}

	total := 0
	for _, n := range nums {
		num, err := strconv.Atoi(n)
		if err != nil {
			continue
		}
		total += num
	}
	if total > MaxSetCount {
		return MaxSetCount
	}
	return total
}

// IsTimeBased reports whether an exercise is tracked in seconds instead of
// reps. Only timed warm-ups qualify, e.g. "30 seconds each".
func IsTimeBased(category, reps string) bool {
	return category == "Warm-up" && strings.Contains(strings.ToLower(reps), "second")
}
