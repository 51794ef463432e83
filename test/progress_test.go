package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hourglassfit/hourglass/internal/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestProgress_GetDefaults() {
	var userProgress progress.UserProgress
	s.getJSON("/progress", &userProgress)

	assert.Equal(s.T(), "beginner", userProgress.Prefs.Experience)
	assert.NotNil(s.T(), userProgress.WeightEntries)
}

func (s *IntegrationTestSuite) TestProgress_AddWeightEntryComputesNet() {
	entry := progress.WeightEntry{
		Date:        "2026-08-27",
		Weight:      67.2,
		Water:       2.2,
		CaloriesIn:  1950,
		CaloriesOut: 350,
		NetCalories: 999999, // must be ignored and recomputed
		Energy:      8,
	}
	entryJson, err := json.Marshal(entry)
	require.NoError(s.T(), err)

	req, err := http.NewRequest(
		http.MethodPost,
		fmt.Sprintf("%s/progress/weight", serverEndpoint),
		bytes.NewReader(entryJson),
	)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)

	var savedEntry progress.WeightEntry
	require.NoError(s.T(), json.Unmarshal(respBody, &savedEntry))
	assert.Equal(s.T(), 1950-350, savedEntry.NetCalories)

	var userProgress progress.UserProgress
	s.getJSON("/progress", &userProgress)
	require.NotEmpty(s.T(), userProgress.WeightEntries)
	lastEntry := userProgress.WeightEntries[len(userProgress.WeightEntries)-1]
	assert.Equal(s.T(), "2026-08-27", lastEntry.Date)
	assert.Equal(s.T(), 1950-350, lastEntry.NetCalories)
}

func (s *IntegrationTestSuite) TestProgress_UpdatePrefs() {
	reqBody := []byte(`{
		"prefs": {
			"experience": "intermediate",
			"focus": ["glutes"],
			"equipment": ["dumbbells"]
		},
		"ai_tuning": {
			"injury_notes": "left knee",
			"available_days": 5,
			"diet": "pescatarian",
			"protein_target_g": 130
		}
	}`)

	req, err := http.NewRequest(
		http.MethodPut,
		fmt.Sprintf("%s/progress/prefs", serverEndpoint),
		bytes.NewReader(reqBody),
	)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var userProgress progress.UserProgress
	require.NoError(s.T(), json.Unmarshal(respBody, &userProgress))
	assert.Equal(s.T(), "intermediate", userProgress.Prefs.Experience)
	assert.Equal(s.T(), "left knee", userProgress.AITuning.InjuryNotes)
	assert.Equal(s.T(), 130, userProgress.AITuning.ProteinTargetG)
}

func (s *IntegrationTestSuite) TestProgress_StreaksAndBadges() {
	var stats progress.Stats
	s.getJSON("/progress/streaks", &stats)
	assert.GreaterOrEqual(s.T(), stats.Longest, stats.Current)

	var badges []struct {
		Key    string `json:"key"`
		Label  string `json:"label"`
		Earned bool   `json:"earned"`
	}
	s.getJSON("/progress/badges", &badges)
	require.NotEmpty(s.T(), badges)
	for _, badge := range badges {
		assert.NotEmpty(s.T(), badge.Key)
		assert.NotEmpty(s.T(), badge.Label)
	}
}

func (s *IntegrationTestSuite) TestProgress_Suggestions() {
	var suggestions []string
	s.getJSON("/progress/suggestions", &suggestions)
	assert.NotEmpty(s.T(), suggestions)
}
