package test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestMisc_Root() {
	req, err := http.NewRequest(http.MethodGet, serverEndpoint+"/", nil)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())

	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(s.T(), "I'm OK, thanks ;)", string(respBody))
}

func (s *IntegrationTestSuite) TestMisc_Version() {
	req, err := http.NewRequest(http.MethodGet, serverEndpoint+"/version", nil)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())

	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(s.T(), "test-version-info", string(respBody))
}

func (s *IntegrationTestSuite) TestMisc_RandomTip() {
	var tip struct {
		Text  string `json:"text"`
		Topic string `json:"topic"`
	}
	s.getJSON("/tips/random", &tip)
	assert.NotEmpty(s.T(), tip.Text)
	assert.NotEmpty(s.T(), tip.Topic)

	s.getJSON("/tips/random?topic=nutrition", &tip)
	assert.Equal(s.T(), "nutrition", tip.Topic)
}

func (s *IntegrationTestSuite) TestMisc_CalculateMacros() {
	reqBody := []byte(`{
		"weight_lb": 150,
		"height_in": 65,
		"age": 25,
		"activity_level": "Moderately Active",
		"goal": "Maintain"
	}`)

	req, err := http.NewRequest(
		http.MethodPost,
		fmt.Sprintf("%s/macros/calculate", serverEndpoint),
		bytes.NewReader(reqBody),
	)
	require.NoError(s.T(), err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())

	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.JSONEq(s.T(),
		`{"bmr": 1426, "calories": 2210, "protein_g": 120, "carbs_g": 295, "fat_g": 61}`,
		string(respBody),
	)
}

func (s *IntegrationTestSuite) TestMisc_UnknownPath() {
	req, err := http.NewRequest(http.MethodGet, serverEndpoint+"/nope", nil)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusNotFound, resp.StatusCode)
}
