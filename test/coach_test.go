package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hourglassfit/hourglass/internal/coach"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestCoach_Starters() {
	var starters []string
	s.getJSON("/coach/starters", &starters)
	assert.Equal(s.T(), coach.Starters, starters)
}

func (s *IntegrationTestSuite) TestCoach_ChatWithoutProvider() {
	// no API key is set in the suite, the chat replies with the
	// not-configured message instead of erroring out
	reqBody := []byte(`{"messages": [{"role": "user", "content": "how do I progress hip thrusts?"}]}`)
	req, err := http.NewRequest(
		http.MethodPost,
		fmt.Sprintf("%s/coach/chat", serverEndpoint),
		bytes.NewReader(reqBody),
	)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var chatResp struct {
		Reply string `json:"reply"`
	}
	require.NoError(s.T(), json.Unmarshal(respBody, &chatResp))
	assert.Equal(s.T(), coach.NotConfiguredReply, chatResp.Reply)
}

func (s *IntegrationTestSuite) TestCoach_ChatEmptyMessages() {
	req, err := http.NewRequest(
		http.MethodPost,
		fmt.Sprintf("%s/coach/chat", serverEndpoint),
		bytes.NewReader([]byte(`{"messages": []}`)),
	)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
}
