package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hourglassfit/hourglass/internal/community"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestCommunity_ChallengesAndJoin() {
	var challenges struct {
		Challenges []string             `json:"challenges"`
		Joined     community.Membership `json:"joined"`
	}
	s.getJSON("/community/challenges", &challenges)
	require.NotEmpty(s.T(), challenges.Challenges)

	reqBody, err := json.Marshal(map[string]string{
		"challenge":    challenges.Challenges[0],
		"display_name": "GluteGoddess",
	})
	require.NoError(s.T(), err)

	req, err := http.NewRequest(
		http.MethodPost,
		fmt.Sprintf("%s/community/join", serverEndpoint),
		bytes.NewReader(reqBody),
	)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(s.T(), "joined", string(respBody))

	s.getJSON("/community/challenges", &challenges)
	assert.Equal(s.T(), challenges.Challenges[0], challenges.Joined.Challenge)
	assert.Equal(s.T(), "GluteGoddess", challenges.Joined.DisplayName)
}

func (s *IntegrationTestSuite) TestCommunity_JoinUnknownChallenge() {
	reqBody := []byte(`{"challenge": "couch-to-couch", "display_name": "Somebody"}`)
	req, err := http.NewRequest(
		http.MethodPost,
		fmt.Sprintf("%s/community/join", serverEndpoint),
		bytes.NewReader(reqBody),
	)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestCommunity_Chat() {
	content := fmt.Sprintf("first booty day done 🎉 %s", gofakeit.Sentence(4))
	reqBody, err := json.Marshal(map[string]string{
		"content": content,
		"name":    "GluteGoddess",
	})
	require.NoError(s.T(), err)

	req, err := http.NewRequest(
		http.MethodPost,
		fmt.Sprintf("%s/community/chat", serverEndpoint),
		bytes.NewReader(reqBody),
	)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)

	var posted community.ChatMessage
	require.NoError(s.T(), json.Unmarshal(respBody, &posted))
	assert.Equal(s.T(), "GluteGoddess", posted.Name)

	var messages []community.ChatMessage
	s.getJSON("/community/chat", &messages)
	require.NotEmpty(s.T(), messages)
	assert.Equal(s.T(), content, messages[len(messages)-1].Content)
}

func (s *IntegrationTestSuite) TestCommunity_Leaderboard() {
	var leaderboard []community.LeaderboardRow
	s.getJSON("/community/leaderboard", &leaderboard)
	assert.NotEmpty(s.T(), leaderboard)
}
