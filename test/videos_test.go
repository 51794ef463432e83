package test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestVideos_MappingIsAdminGated() {
	mappingURL := fmt.Sprintf("%s/videos/mapping/hip_thrust", serverEndpoint)
	reqBody := []byte(`{"url": "https://www.youtube.com/watch?v=xyz"}`)

	// writes to the mapping need a session token
	req, err := http.NewRequest(http.MethodPut, mappingURL, bytes.NewReader(reqBody))
	require.NoError(s.T(), err)
	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)

	token := s.doLogin()
	defer s.doLogout(token)

	req, err = http.NewRequest(http.MethodPut, mappingURL, bytes.NewReader(reqBody))
	require.NoError(s.T(), err)
	req.Header.Set("X-HOURGLASS-TOKEN", token)
	resp, err = s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(s.T(), "saved:hip_thrust", string(respBody))

	// reading the mapping stays public
	var mapping map[string]string
	s.getJSON("/videos/mapping", &mapping)
	assert.Equal(s.T(), "https://www.youtube.com/watch?v=xyz", mapping["hip_thrust"])

	// so does the per exercise library
	var library []map[string]any
	s.getJSON("/videos/library/hip_thrust", &library)
	assert.Empty(s.T(), library)

	req, err = http.NewRequest(http.MethodDelete, mappingURL, nil)
	require.NoError(s.T(), err)
	req.Header.Set("X-HOURGLASS-TOKEN", token)
	resp, err = s.httpClient.Do(req)
	require.NoError(s.T(), err)
	respBody, err = io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(s.T(), "deleted:hip_thrust", string(respBody))
}

func (s *IntegrationTestSuite) TestVideos_UploadIsAdminGated() {
	req, err := http.NewRequest(
		http.MethodPost,
		fmt.Sprintf("%s/videos/upload/hip_thrust", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)
	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
}
