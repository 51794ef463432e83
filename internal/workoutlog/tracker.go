package workoutlog

import (
	"github.com/hourglassfit/hourglass/internal/program"
)

const maxWarmupSeconds = 120

// BuildSets expands an exercise into its empty trackable set rows for a
// given date. Exercises whose sets string parses to zero get no rows.
func BuildSets(exercise program.Exercise, date string) []SetRecord {
	numSets := program.ParseSetCount(exercise.Sets)
	exerciseID := program.ExerciseID(exercise.Name)

	records := make([]SetRecord, 0, numSets)
	for setNum := 1; setNum <= numSets; setNum++ {
		records = append(records, SetRecord{
			Date:       date,
			ExerciseID: exerciseID,
			Exercise:   exercise.Name,
			Set:        setNum,
		})
	}
	return records
}

// NormalizeRecord applies the time-based warm-up rule before a record is
// accepted: seconds clamp to 0-120 in place of reps and the weight is
// forced to zero. Other exercises are stored as sent.
func NormalizeRecord(record SetRecord, catalog map[string]program.Exercise) SetRecord {
	exercise, ok := catalog[record.ExerciseID]
	if !ok {
		return record
	}
	if !program.IsTimeBased(exercise.Category, exercise.Reps) {
		return record
	}

	if record.Reps < 0 {
		record.Reps = 0
	}
	if record.Reps > maxWarmupSeconds {
		record.Reps = maxWarmupSeconds
	}
	record.Weight = 0
	return record
}

// CatalogByID indexes every known exercise by its id.
func CatalogByID() map[string]program.Exercise {
	catalog := make(map[string]program.Exercise)
	for _, ex := range program.AllExercises() {
		catalog[program.ExerciseID(ex.Name)] = ex
	}
	return catalog
}
