package workoutlog

import (
	"testing"

	"github.com/hourglassfit/hourglass/internal/program"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSets(t *testing.T) {
	hipThrust := program.Exercise{
		Name: "Hip Thrust", Sets: "1 warm up + 3 + 1 AMRAP",
		Reps: "10-12; 8 last set; AMRAP ~20%", Category: "Booty",
	}

	records := BuildSets(hipThrust, "2025-03-01")
	require.Len(t, records, 4)
	for i, record := range records {
		assert.Equal(t, "2025-03-01", record.Date)
		assert.Equal(t, "hip_thrust", record.ExerciseID)
		assert.Equal(t, "Hip Thrust", record.Exercise)
		assert.Equal(t, i+1, record.Set)
		assert.False(t, record.Completed)
	}

	stairmaster := program.Exercise{Name: "Stairmaster", Sets: "—", Reps: "30 min", Category: "Cardio"}
	assert.Empty(t, BuildSets(stairmaster, "2025-03-01"))
}

func TestNormalizeRecord_timeBasedWarmup(t *testing.T) {
	catalog := CatalogByID()
	require.Contains(t, catalog, "squat_jump")

	record := SetRecord{
		Date: "2025-03-01", ExerciseID: "squat_jump",
		Set: 1, Reps: 300, Weight: 45,
	}
	normalized := NormalizeRecord(record, catalog)
	// seconds clamp to 120 and weight is dropped
	assert.Equal(t, 120, normalized.Reps)
	assert.Equal(t, float64(0), normalized.Weight)

	record.Reps = -5
	assert.Equal(t, 0, NormalizeRecord(record, catalog).Reps)

	record.Reps = 45
	assert.Equal(t, 45, NormalizeRecord(record, catalog).Reps)
}

func TestNormalizeRecord_regularExerciseUntouched(t *testing.T) {
	catalog := CatalogByID()

	record := SetRecord{
		Date: "2025-03-01", ExerciseID: "hip_thrust",
		Set: 1, Reps: 12, Weight: 80,
	}
	assert.Equal(t, record, NormalizeRecord(record, catalog))

	// unknown exercises pass through as well
	unknown := SetRecord{Date: "2025-03-01", ExerciseID: "mystery_move", Reps: 500, Weight: 10}
	assert.Equal(t, unknown, NormalizeRecord(unknown, catalog))
}
