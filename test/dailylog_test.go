package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hourglassfit/hourglass/internal/dailylog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestDailyLog_ProfileRoundtrip() {
	profile := dailylog.Profile{
		UserID:        "roundtrip-user",
		Age:           25,
		Sex:           "F",
		HeightCm:      165,
		StartWeightKg: 68,
		ActivityLevel: "Moderately Active",
		WeeklyPaceLb:  1,
		GoalWeightKg:  62,
		GoalDate:      "2026-12-31",
	}

	profileJson, err := json.Marshal(profile)
	require.NoError(s.T(), err)

	req, err := http.NewRequest(
		http.MethodPut,
		fmt.Sprintf("%s/metrics/profile", serverEndpoint),
		bytes.NewReader(profileJson),
	)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(s.T(), "saved", string(respBody))

	req, err = http.NewRequest(
		http.MethodGet,
		fmt.Sprintf("%s/metrics/profile?user=roundtrip-user", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)

	resp, err = s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err = io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var gotProfile dailylog.Profile
	require.NoError(s.T(), json.Unmarshal(respBody, &gotProfile))
	assert.Equal(s.T(), profile, gotProfile)
}

func (s *IntegrationTestSuite) TestDailyLog_ProfileNotFound() {
	req, err := http.NewRequest(
		http.MethodGet,
		fmt.Sprintf("%s/metrics/profile?user=ghost-user", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestDailyLog_SaveAndUpsertSameDate() {
	user := "upsert-user"
	logEntry := dailylog.DailyLog{
		UserID:      user,
		Date:        "2026-08-30",
		WeightKg:    67.5,
		WaterL:      2.5,
		CalIn:       1900,
		CalOut:      400,
		WaistIn:     28.5,
		HipsIn:      38,
		Energy1To10: 7,
		Notes:       "felt good",
	}
	s.saveDailyLog(logEntry)

	// second write for the same date must overwrite, not duplicate
	logEntry.CalIn = 2100
	logEntry.Notes = "late snack"
	s.saveDailyLog(logEntry)

	logs := s.getDailyLogs(user, "2026-08-01", "2026-08-31")
	require.Len(s.T(), logs, 1)
	assert.Equal(s.T(), 2100, logs[0].CalIn)
	assert.Equal(s.T(), "late snack", logs[0].Notes)
	// net is always recomputed server side
	assert.Equal(s.T(), 2100-400, logs[0].NetKcal)
}

func (s *IntegrationTestSuite) TestDailyLog_LogsRange() {
	user := "range-user"
	for _, date := range []string{"2026-07-01", "2026-07-02", "2026-08-15"} {
		s.saveDailyLog(dailylog.DailyLog{
			UserID:   user,
			Date:     date,
			WeightKg: 70,
			CalIn:    2000,
			CalOut:   300,
		})
	}

	julyLogs := s.getDailyLogs(user, "2026-07-01", "2026-07-31")
	assert.Len(s.T(), julyLogs, 2)

	allLogs := s.getDailyLogs(user, "", "")
	assert.Len(s.T(), allLogs, 3)

	emptyLogs := s.getDailyLogs("nobody-logged", "", "")
	assert.Empty(s.T(), emptyLogs)
	assert.NotNil(s.T(), emptyLogs)
}

func (s *IntegrationTestSuite) TestDailyLog_ExportCSV() {
	user := "export-user"
	s.saveDailyLog(dailylog.DailyLog{
		UserID:   user,
		Date:     "2026-08-20",
		WeightKg: 66,
		CalIn:    1800,
		CalOut:   250,
	})

	req, err := http.NewRequest(
		http.MethodGet,
		fmt.Sprintf("%s/metrics/export?user=%s", serverEndpoint, user),
		nil,
	)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())

	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(s.T(),
		fmt.Sprintf("attachment; filename=%s_logs.csv", user),
		resp.Header.Get("Content-Disposition"),
	)
	assert.Contains(s.T(), string(respBody), "2026-08-20")
}

func (s *IntegrationTestSuite) TestDailyLog_WipeIsAdminGated() {
	user := "wipe-user"
	s.saveDailyLog(dailylog.DailyLog{
		UserID:   user,
		Date:     "2026-08-25",
		WeightKg: 65,
		CalIn:    1700,
		CalOut:   200,
	})

	wipeURL := fmt.Sprintf("%s/user/data/wipe?user=%s", serverEndpoint, user)

	// no token, no wipe
	req, err := http.NewRequest(http.MethodPost, wipeURL, nil)
	require.NoError(s.T(), err)
	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)

	require.Len(s.T(), s.getDailyLogs(user, "", ""), 1)

	token := s.doLogin()
	defer s.doLogout(token)

	req, err = http.NewRequest(http.MethodPost, wipeURL, nil)
	require.NoError(s.T(), err)
	req.Header.Set("X-HOURGLASS-TOKEN", token)
	resp, err = s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())

	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(s.T(), "wiped", string(respBody))
	assert.Empty(s.T(), s.getDailyLogs(user, "", ""))
}

func (s *IntegrationTestSuite) saveDailyLog(logEntry dailylog.DailyLog) {
	logJson, err := json.Marshal(logEntry)
	require.NoError(s.T(), err)

	req, err := http.NewRequest(
		http.MethodPost,
		fmt.Sprintf("%s/metrics/log", serverEndpoint),
		bytes.NewReader(logJson),
	)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())

	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)
	require.Equal(s.T(), "saved", string(respBody))
}

func (s *IntegrationTestSuite) getDailyLogs(user, start, end string) []dailylog.DailyLog {
	url := fmt.Sprintf("%s/metrics/logs?user=%s", serverEndpoint, user)
	if start != "" {
		url += "&start=" + start
	}
	if end != "" {
		url += "&end=" + end
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var logs []dailylog.DailyLog
	require.NoError(s.T(), json.Unmarshal(respBody, &logs))
	return logs
}
