package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hourglassfit/hourglass/internal/program"
	"github.com/hourglassfit/hourglass/internal/workoutlog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestWorkoutLog_BuildSets() {
	exerciseID := program.ExerciseID("Kickbacks")

	var records []workoutlog.SetRecord
	s.getJSON(fmt.Sprintf("/workouts/sets/%s/2026-08-28", exerciseID), &records)

	require.NotEmpty(s.T(), records)
	for i, record := range records {
		assert.Equal(s.T(), "2026-08-28", record.Date)
		assert.Equal(s.T(), exerciseID, record.ExerciseID)
		assert.Equal(s.T(), i+1, record.Set)
		assert.False(s.T(), record.Completed)
	}
}

func (s *IntegrationTestSuite) TestWorkoutLog_BuildSetsUnknownExercise() {
	req, err := http.NewRequest(
		http.MethodGet,
		fmt.Sprintf("%s/workouts/sets/no-such-exercise/2026-08-28", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)
	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestWorkoutLog_SaveAndGet() {
	exerciseID := program.ExerciseID("Kickbacks")
	date := "2026-08-29"

	reqBody, err := json.Marshal(map[string]any{
		"sets": []workoutlog.SetRecord{
			{
				Date:       date,
				ExerciseID: exerciseID,
				Exercise:   "Kickbacks",
				Set:        1,
				Reps:       12,
				Weight:     15,
				Completed:  true,
			},
			{
				Date:       date,
				ExerciseID: exerciseID,
				Exercise:   "Kickbacks",
				Set:        2,
				Reps:       10,
				Weight:     17.5,
				Completed:  true,
			},
		},
	})
	require.NoError(s.T(), err)

	req, err := http.NewRequest(
		http.MethodPost,
		fmt.Sprintf("%s/workouts/log", serverEndpoint),
		bytes.NewReader(reqBody),
	)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())

	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)
	assert.JSONEq(s.T(), `{"saved": 2}`, string(respBody))

	var records []workoutlog.SetRecord
	s.getJSON(fmt.Sprintf("/workouts/log/%s/exercise/%s", date, exerciseID), &records)

	require.Len(s.T(), records, 2)
	assert.Equal(s.T(), 12, records[0].Reps)
	assert.InDelta(s.T(), 17.5, records[1].Weight, 0.001)
	assert.True(s.T(), records[1].Completed)
}

func (s *IntegrationTestSuite) TestWorkoutLog_SaveRejectsEmptyAndIncomplete() {
	for name, body := range map[string]string{
		"no sets":      `{"sets": []}`,
		"missing date": `{"sets": [{"exerciseId": "kickbacks"}]}`,
	} {
		req, err := http.NewRequest(
			http.MethodPost,
			fmt.Sprintf("%s/workouts/log", serverEndpoint),
			bytes.NewReader([]byte(body)),
		)
		require.NoError(s.T(), err)

		resp, err := s.httpClient.Do(req)
		require.NoError(s.T(), err)
		require.NoError(s.T(), resp.Body.Close())
		assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode, name)
	}
}
