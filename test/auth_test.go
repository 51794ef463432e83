package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/stretchr/testify/require"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// doLogin logs in with the suite test admin credentials and
// returns the session token
func (s *IntegrationTestSuite) doLogin() string {
	reqBody, err := json.Marshal(loginRequest{
		Username: testUsername,
		Password: testPassword,
	})
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
	defer func() {
		require.NoError(s.T(), resp.Body.Close())
	}()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var loginResp loginResponse
	require.NoError(s.T(), json.Unmarshal(respBody, &loginResp))
	require.NotEmpty(s.T(), loginResp.Token)

	return loginResp.Token
}

func (s *IntegrationTestSuite) doLogout(token string) {
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
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.Equal(s.T(), "logged-out", string(respBody))
}
