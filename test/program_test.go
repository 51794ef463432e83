package test

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/hourglassfit/hourglass/internal/program"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) getJSON(path string, target any) {
	req, err := http.NewRequest(http.MethodGet, serverEndpoint+path, nil)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	require.Equal(s.T(), http.StatusOK, resp.StatusCode, "GET %s: %s", path, string(respBody))

	require.NoError(s.T(), json.Unmarshal(respBody, target))
}

func (s *IntegrationTestSuite) TestProgram_GetSplit() {
	var split map[string]map[string]string
	s.getJSON("/program/split", &split)

	require.Contains(s.T(), split, "Level 1")
	require.Contains(s.T(), split, "Level 2")
	assert.Equal(s.T(), "REST", split["Level 1"]["Sunday"])
}

func (s *IntegrationTestSuite) TestProgram_GetWorkoutDay() {
	var workout struct {
		Level     int                `json:"level"`
		Day       string             `json:"day"`
		Label     string             `json:"label"`
		Exercises []program.Exercise `json:"exercises"`
	}
	s.getJSON("/program/level/1/day/Monday", &workout)

	assert.Equal(s.T(), 1, workout.Level)
	assert.Equal(s.T(), "Monday", workout.Day)
	assert.Equal(s.T(), "BOOTY", workout.Label)
	assert.NotEmpty(s.T(), workout.Exercises)
}

func (s *IntegrationTestSuite) TestProgram_InvalidLevelAndDay() {
	for _, path := range []string{
		"/program/level/3/day/Monday",
		"/program/level/1/day/Funday",
	} {
		req, err := http.NewRequest(http.MethodGet, serverEndpoint+path, nil)
		require.NoError(s.T(), err)
		resp, err := s.httpClient.Do(req)
		require.NoError(s.T(), err)
		require.NoError(s.T(), resp.Body.Close())
		assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode, path)
	}
}

func (s *IntegrationTestSuite) TestProgram_GetExercises() {
	var exercises []struct {
		program.Exercise
		ID string `json:"id"`
	}
	s.getJSON("/program/exercises", &exercises)

	require.NotEmpty(s.T(), exercises)
	for _, ex := range exercises {
		assert.NotEmpty(s.T(), ex.ID)
		assert.NotEmpty(s.T(), ex.Name)
	}
}

func (s *IntegrationTestSuite) TestProgram_GetMeals() {
	var meals map[string]any
	s.getJSON("/program/meals", &meals)
	assert.NotEmpty(s.T(), meals)
}

func (s *IntegrationTestSuite) TestProgram_GetAlternatives() {
	var alternatives map[string][]string
	s.getJSON("/program/alternatives/hip_thrust", &alternatives)
	assert.Contains(s.T(), alternatives, "low_impact")
	assert.NotEmpty(s.T(), alternatives)

	var noAlternatives map[string][]string
	s.getJSON("/program/alternatives/no-such-exercise", &noAlternatives)
	assert.Empty(s.T(), noAlternatives)
}
