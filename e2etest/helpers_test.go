package e2etest

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// apiResponse is a decoded HTTP response
type apiResponse struct {
	StatusCode  int
	CacheStatus string
	Body        []byte
}

func doRequest(t *testing.T, method, url string) apiResponse {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "Should be able to make a request to %s", url)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Should be able to read response body")

	return apiResponse{
		StatusCode:  resp.StatusCode,
		CacheStatus: resp.Header.Get("Cache-Status"),
		Body:        body,
	}
}

func decode[T any](t *testing.T, resp apiResponse) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Body, &v), "Response should be valid JSON: %s", resp.Body)
	return v
}
