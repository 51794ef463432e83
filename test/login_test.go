package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestLogin_LoginLogout() {
	token := s.doLogin()
	s.doLogout(token)

	// token is gone now, logout again must fail
	req, err := http.NewRequest(
		http.MethodGet,
		fmt.Sprintf("%s/a/logout", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)
	req.Header.Set("X-HOURGLASS-TOKEN", token)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer func() {
		require.NoError(s.T(), resp.Body.Close())
	}()
	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestLogin_WrongCredentials() {
	for _, creds := range []loginRequest{
		{Username: testUsername, Password: "wrong-password"},
		{Username: "who-dis", Password: testPassword},
	} {
		reqBody, err := json.Marshal(creds)
		require.NoError(s.T(), err)

		req, err := http.NewRequest(
			http.MethodPost,
			fmt.Sprintf("%s/a/login", serverEndpoint),
			bytes.NewReader(reqBody),
		)
		require.NoError(s.T(), err)
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		require.NoError(s.T(), err)

		respBody, err := io.ReadAll(resp.Body)
		require.NoError(s.T(), err)
		require.NoError(s.T(), resp.Body.Close())

		assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
		assert.Contains(s.T(), string(respBody), "wrong credentials")
	}
}

func (s *IntegrationTestSuite) TestLogin_BruteForceGetsRateLimited() {
	ctx := context.Background()

	// start from a clean rate limit quota
	require.NoError(s.T(), s.redisDataCleanup(ctx))
	defer func() {
		require.NoError(s.T(), s.redisDataCleanup(ctx))
	}()

	reqBody, err := json.Marshal(loginRequest{
		Username: testUsername,
		Password: "spray-and-pray",
	})
	require.NoError(s.T(), err)

	var limitedCount int
	for i := 0; i < 25; i++ {
		req, err := http.NewRequest(
			http.MethodPost,
			fmt.Sprintf("%s/a/login", serverEndpoint),
			bytes.NewReader(reqBody),
		)
		require.NoError(s.T(), err)
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		require.NoError(s.T(), err)

		respBody, err := io.ReadAll(resp.Body)
		require.NoError(s.T(), err)
		require.NoError(s.T(), resp.Body.Close())

		switch resp.StatusCode {
		case http.StatusBadRequest:
			assert.Contains(s.T(), string(respBody), "wrong credentials")
		case http.StatusTooManyRequests:
			limitedCount++
			assert.True(s.T(), strings.HasPrefix(string(respBody), "retry after"))
		default:
			s.T().Fatalf("unexpected status code: %d", resp.StatusCode)
		}
	}

	assert.Positive(s.T(), limitedCount, "expected some of the 25 attempts to hit the limit")
}
