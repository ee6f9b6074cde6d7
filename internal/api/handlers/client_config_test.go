package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xylexgaming/xgi-website/internal/api/handlers"
	"github.com/xylexgaming/xgi-website/internal/config"
	"github.com/xylexgaming/xgi-website/internal/testutil"
)

func TestClientConfigHandler_Get(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.WithConfig(func(c *config.Config) {
		c.SearchDebounce = 250 * time.Millisecond
	}))

	resp, err := http.Get(ts.APIURL("/config"))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var body handlers.ClientConfigResponse
	testutil.AssertJSONResponse(t, resp, &body)
	assert.Equal(t, int64(250), body.SearchDebounceMs)
}
