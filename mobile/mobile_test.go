package mobile

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartStopServer(t *testing.T) {
	url, err := StartServer(t.TempDir(), filepath.Join(t.TempDir(), "scores.db"), "0")
	require.NoError(t, err)
	defer StopServer()

	_, err = StartServer("", "", "0")
	require.Error(t, err, "only one server at a time")

	resp, err := http.Get(url + "/api/profiles")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Profiles []struct {
			ID string `json:"id"`
		} `json:"profiles"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Profiles, 8)

	StopServer()
	StopServer()

	// 停掉之后可以再启动
	url, err = StartServer("", "", "0")
	require.NoError(t, err)
	require.NotEmpty(t, url)
}
